package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/pmurley/ulb-trade-engine/internal/discord"
	"github.com/pmurley/ulb-trade-engine/internal/fantrax"
	"github.com/pmurley/ulb-trade-engine/internal/models"
	"github.com/pmurley/ulb-trade-engine/internal/observability"
	"github.com/pmurley/ulb-trade-engine/internal/storage"
	"github.com/pmurley/ulb-trade-engine/pkg/logger"
)

const (
	defaultHistoryPollInterval = 5 * time.Minute
	importTimeout              = 2 * time.Minute
)

// startHistoryMonitor starts the background Fantrax trade import
func (b *Bot) startHistoryMonitor() {
	go b.historyMonitorLoop()
}

// historyMonitorLoop imports new Fantrax trades on every tick
func (b *Bot) historyMonitorLoop() {
	b.logger.Info("Starting trade history monitor")

	interval := b.config.HistoryPollInterval
	if interval <= 0 {
		interval = defaultHistoryPollInterval
	}

	// Initial check on startup
	b.checkNewTrades()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			b.checkNewTrades()
		case <-b.stopChan:
			b.logger.Info("Stopping trade history monitor")
			return
		}
	}
}

// checkNewTrades records trades made on Fantrax and posts the new ones
func (b *Bot) checkNewTrades() {
	ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
	defer cancel()

	result, err := importTrades(ctx, b.transactions, b.history, b.metrics, b.logger)
	if err != nil {
		b.logger.Error("Failed to import Fantrax trades:", err)
		return
	}
	if result.FirstRun {
		return
	}
	for _, t := range result.Imported {
		b.postTrade(t)
	}
}

// importResult is what one pass of the importer stored.
type importResult struct {
	Imported []*models.CompletedTrade
	Skipped  []string
	FirstRun bool
}

// importTrades appends Fantrax trades the history has not seen. When the
// history holds no Fantrax trades at all the backlog is stored and marked as
// a first run so the caller can stay quiet about old trades.
func importTrades(ctx context.Context, src fantrax.TransactionSource, history storage.TradeHistoryStore,
	metrics *observability.Metrics, log *logger.Logger) (*importResult, error) {
	existing, err := history.IDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get existing trade IDs: %w", err)
	}

	firstRun := true
	prefix := fantrax.TradeID("")
	for id := range existing {
		if strings.HasPrefix(id, prefix) {
			firstRun = false
			break
		}
	}

	transactions, err := src.GetTransactionsFromFantrax()
	if err != nil {
		return nil, err
	}

	trades, skipped := fantrax.TradesFromTransactions(transactions)
	result := &importResult{Skipped: skipped, FirstRun: firstRun}
	if len(skipped) > 0 {
		log.Warn("Skipped ", len(skipped), " Fantrax trades involving more than two teams: ", skipped)
	}

	for i := range trades {
		t := &trades[i]
		if existing[t.ID] {
			continue
		}
		if err := history.Append(ctx, t); err != nil {
			metrics.HistoryWriteErrors.Inc()
			log.Error("Failed to store Fantrax trade ", t.ID, ": ", err)
			continue
		}
		metrics.TradesImported.Inc()
		result.Imported = append(result.Imported, t)
	}

	if firstRun {
		log.Info("First run detected - stored ", len(result.Imported), " historical Fantrax trades without Discord notifications")
	} else if len(result.Imported) > 0 {
		log.Info("Imported ", len(result.Imported), " new Fantrax trades")
	}
	return result, nil
}

// postTrade posts a completed trade to the trades channel
func (b *Bot) postTrade(t *models.CompletedTrade) {
	channelID := b.findChannelByName(b.config.TradesChannel)
	if channelID == "" {
		b.logger.Error("Could not find channel:", b.config.TradesChannel)
		return
	}

	embed := discord.BuildTradeEmbed(b.negotiator.League(), t)
	if _, err := b.session.ChannelMessageSendEmbed(channelID, embed); err != nil {
		b.logger.Error("Failed to send trade message to Discord:", err)
	}
}

// findChannelByName finds a channel ID by name
func (b *Bot) findChannelByName(channelName string) string {
	for _, guild := range b.session.State.Guilds {
		channels, err := b.session.GuildChannels(guild.ID)
		if err != nil {
			continue
		}

		for _, channel := range channels {
			if channel.Name == channelName && channel.Type == discordgo.ChannelTypeGuildText {
				return channel.ID
			}
		}
	}
	return ""
}
