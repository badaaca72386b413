package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/pmurley/ulb-trade-engine/internal/cache"
	"github.com/pmurley/ulb-trade-engine/internal/config"
	"github.com/pmurley/ulb-trade-engine/internal/models"
	"github.com/pmurley/ulb-trade-engine/internal/negotiation"
	"github.com/pmurley/ulb-trade-engine/internal/sheets"
	"github.com/pmurley/ulb-trade-engine/internal/storage"
	"github.com/pmurley/ulb-trade-engine/internal/trade"
	"github.com/pmurley/ulb-trade-engine/pkg/logger"
)

// TradeAnnouncer is told about every trade the AI executes.
type TradeAnnouncer func(t *models.CompletedTrade)

type HandlerManager struct {
	session    *discordgo.Session
	config     *config.Config
	logger     *logger.Logger
	cache      *cache.Cache
	players    sheets.PlayerSource
	negotiator *negotiation.Negotiator
	history    storage.TradeHistoryStore
	value      trade.MarketValueFunc
	announcer  TradeAnnouncer
	commands   map[string]CommandHandler
}

type CommandHandler func(s *discordgo.Session, m *discordgo.MessageCreate, args []string)

func NewHandlerManager(
	session *discordgo.Session,
	config *config.Config,
	logger *logger.Logger,
	cache *cache.Cache,
	players sheets.PlayerSource,
	negotiator *negotiation.Negotiator,
	history storage.TradeHistoryStore,
	value trade.MarketValueFunc,
) *HandlerManager {
	hm := &HandlerManager{
		session:    session,
		config:     config,
		logger:     logger,
		cache:      cache,
		players:    players,
		negotiator: negotiator,
		history:    history,
		value:      value,
		commands:   make(map[string]CommandHandler),
	}

	hm.registerCommands()

	return hm
}

func (hm *HandlerManager) RegisterHandlers() {
	hm.session.AddHandler(hm.messageCreate)
}

// SetAnnouncer routes executed trades to the bot's trades channel.
func (hm *HandlerManager) SetAnnouncer(a TradeAnnouncer) {
	hm.announcer = a
}

func (hm *HandlerManager) registerCommands() {
	hm.commands["help"] = hm.handleHelp
	hm.commands["reload"] = hm.handleReload
	hm.commands["player"] = hm.handlePlayer
	hm.commands["players"] = hm.handlePlayers
	hm.commands["team"] = hm.handleTeam
	hm.commands["needs"] = hm.handleNeeds
	hm.commands["picks"] = hm.handlePicks
	hm.commands["propose"] = hm.handlePropose
	hm.commands["accept"] = hm.handleAccept
	hm.commands["history"] = hm.handleHistory
	hm.commands["rumours"] = hm.handleRumours
	hm.commands["rumors"] = hm.handleRumours
}

func (hm *HandlerManager) messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.ID == s.State.User.ID {
		return
	}

	if !strings.HasPrefix(m.Content, hm.config.CommandPrefix) {
		return
	}

	content := strings.TrimPrefix(m.Content, hm.config.CommandPrefix)
	parts := strings.Fields(content)
	if len(parts) == 0 {
		return
	}

	command := strings.ToLower(parts[0])
	args := parts[1:]

	if handler, exists := hm.commands[command]; exists {
		handler(s, m, args)
	}
}

func (hm *HandlerManager) handleHelp(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	helpMessage := `**Ultra League Baseball Trade Desk:**
` + "```" + `
!help            - Show this help message
!reload          - Reload the player pool
!player <name>   - Look up player information
!players <name1>, <name2>, ... - Look up multiple players
!team <name>     - Show team roster, needs and picks
!needs <team>    - Positions a team is thin at
!picks <team>    - Draft picks a team holds
!propose <team>: <players/picks> for <players/picks>
  Examples:
    !propose Seattle Weiners: Soto for Witt
    !propose Seattle Weiners: Soto (retain 25%), 2026 R2 for Witt
!accept          - Accept the AI's latest counter-offer
!history <team>  - Recent trades with value grades
!rumours         - Who is shopping for what
` + "```"

	s.ChannelMessageSend(m.ChannelID, helpMessage)
}

func (hm *HandlerManager) handleReload(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if _, err := hm.reloadLeague(); err != nil {
		s.ChannelMessageSend(m.ChannelID, "Failed to reload data: "+err.Error())
		return
	}
	s.ChannelMessageSend(m.ChannelID, "Data reloaded successfully!")
}

// reloadLeague fetches the player pool again and rebuilds the league around
// it. Picks stay where trades left them.
func (hm *HandlerManager) reloadLeague() (*trade.League, error) {
	players, err := sheets.LoadInto(hm.players, hm.cache)
	if err != nil {
		return nil, err
	}
	league := hm.negotiator.Rebase(players)
	hm.logger.Info("Reloaded ", len(players), " players for ", len(league.Teams), " teams")
	return league, nil
}

// ensurePlayersLoaded returns the live league's players. An empty league is
// rebuilt from the cached pool, or from a fresh fetch once the cache expires
func (hm *HandlerManager) ensurePlayersLoaded() (models.PlayerList, error) {
	league := hm.negotiator.League()
	if len(league.Players) == 0 {
		if cached, ok := hm.cache.GetPlayers(); ok && len(cached) > 0 {
			league = hm.negotiator.Rebase(cached)
			return models.PlayerListFromMap(league.Players), nil
		}

		hm.logger.Info("League has no players, loading player data...")
		var err error
		if league, err = hm.reloadLeague(); err != nil {
			return nil, err
		}
		if len(league.Players) == 0 {
			return nil, fmt.Errorf("failed to load player data after reload")
		}
	}
	return models.PlayerListFromMap(league.Players), nil
}

func (hm *HandlerManager) announce(t *models.CompletedTrade) {
	if hm.announcer != nil && t != nil {
		hm.announcer(t)
	}
}
