package cache

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/pmurley/ulb-trade-engine/internal/models"
	"github.com/pmurley/ulb-trade-engine/internal/trade"
)

const (
	playersKey       = "players"
	counterKeyPrefix = "counter:"

	// CounterTTL is how long a counter-offer stays open for a Discord user.
	CounterTTL = 30 * time.Minute
)

type Cache struct {
	cache    *gocache.Cache
	duration time.Duration
}

func New(duration time.Duration) *Cache {
	return &Cache{
		cache:    gocache.New(duration, duration*2),
		duration: duration,
	}
}

func (c *Cache) SetPlayers(players []models.Player) {
	c.cache.Set(playersKey, players, c.duration)
}

func (c *Cache) GetPlayers() (models.PlayerList, bool) {
	if players, found := c.cache.Get(playersKey); found {
		return models.PlayerList(players.([]models.Player)), true
	}
	return nil, false
}

// SetPendingCounter remembers the counter-offer a user may accept. A newer
// counter replaces an older one.
func (c *Cache) SetPendingCounter(user string, counter *trade.Proposal) {
	c.cache.Set(counterKey(user), counter, CounterTTL)
}

// PendingCounter returns the user's open counter-offer without consuming it.
func (c *Cache) PendingCounter(user string) (*trade.Proposal, bool) {
	if v, found := c.cache.Get(counterKey(user)); found {
		return v.(*trade.Proposal), true
	}
	return nil, false
}

// TakePendingCounter returns and forgets the user's open counter-offer.
func (c *Cache) TakePendingCounter(user string) (*trade.Proposal, bool) {
	counter, ok := c.PendingCounter(user)
	if ok {
		c.cache.Delete(counterKey(user))
	}
	return counter, ok
}

func (c *Cache) Flush() {
	c.cache.Flush()
}

func counterKey(user string) string {
	return counterKeyPrefix + strings.ToLower(user)
}
