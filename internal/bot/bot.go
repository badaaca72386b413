package bot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pmurley/ulb-trade-engine/internal/cache"
	"github.com/pmurley/ulb-trade-engine/internal/config"
	"github.com/pmurley/ulb-trade-engine/internal/discord"
	"github.com/pmurley/ulb-trade-engine/internal/fantrax"
	"github.com/pmurley/ulb-trade-engine/internal/negotiation"
	"github.com/pmurley/ulb-trade-engine/internal/observability"
	"github.com/pmurley/ulb-trade-engine/internal/sheets"
	"github.com/pmurley/ulb-trade-engine/internal/storage"
	"github.com/pmurley/ulb-trade-engine/internal/trade"
	"github.com/pmurley/ulb-trade-engine/pkg/logger"
)

type Bot struct {
	session       *discordgo.Session
	config        *config.Config
	logger        *logger.Logger
	dataCache     *cache.Cache
	players       sheets.PlayerSource
	negotiator    *negotiation.Negotiator
	history       storage.TradeHistoryStore
	transactions  fantrax.TransactionSource
	metrics       *observability.Metrics
	metricsServer *http.Server
	handlers      *discord.HandlerManager
	stopChan      chan struct{}
}

func New(cfg *config.Config, log *logger.Logger, history storage.TradeHistoryStore) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	// Set intents - we need these for DMs and message content
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsDirectMessageReactions |
		discordgo.IntentsMessageContent

	players, err := newPlayerSource(cfg)
	if err != nil {
		return nil, err
	}

	leagueFile, err := config.LoadLeague(cfg.LeagueFile)
	if err != nil {
		return nil, err
	}
	if cfg.Season != 0 {
		leagueFile.Season = cfg.Season
	}
	// players arrive in Start once the pool has been fetched
	league, err := leagueFile.League(nil)
	if err != nil {
		return nil, err
	}

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	value := trade.PointsMarketValue(cfg.PointRate)
	evaluator := trade.NewEvaluator(value, trade.Options{
		SalaryDumpTradesEnabled: cfg.SalaryDumpTradesEnabled,
		TradeRequestsEnabled:    cfg.TradeRequestsEnabled,
	})
	negotiator := negotiation.New(league, negotiation.Config{
		Evaluator: evaluator,
		Random:    trade.NewSeededRandom(cfg.RandomSeed),
		History:   history,
		Metrics:   metrics,
		Logger:    log.With("component", "negotiation"),
		MaxRounds: cfg.MaxNegotiationRounds,
	})

	b := &Bot{
		session:    session,
		config:     cfg,
		logger:     log,
		dataCache:  cache.New(cfg.CacheDuration),
		players:    players,
		negotiator: negotiator,
		history:    history,
		metrics:    metrics,
		stopChan:   make(chan struct{}),
	}

	if cfg.FantraxLeagueID != "" {
		client, err := fantrax.NewFantraxClient(cfg.FantraxLeagueID, false)
		if err != nil {
			return nil, err
		}
		b.transactions = client
	} else {
		log.Warn("FANTRAX_LEAGUE_ID not set, Fantrax trades will not be imported")
	}

	b.handlers = discord.NewHandlerManager(b.session, cfg, log, b.dataCache, players, negotiator, history, value)
	b.handlers.SetAnnouncer(b.postTrade)

	return b, nil
}

func newPlayerSource(cfg *config.Config) (sheets.PlayerSource, error) {
	if cfg.PlayersFile != "" {
		return sheets.FileSource{Path: cfg.PlayersFile}, nil
	}
	client, err := sheets.NewClient(cfg.GoogleSheetsID)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	return client, nil
}

func (b *Bot) Start() error {
	b.handlers.RegisterHandlers()

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	if players, err := sheets.LoadInto(b.players, b.dataCache); err != nil {
		b.logger.Error("Failed to load initial player data:", err)
	} else {
		league := b.negotiator.Rebase(players)
		b.logger.Info("Loaded ", len(league.Players), " players for ", len(league.Teams), " teams")
	}

	if b.config.MetricsAddr != "" {
		b.startMetricsServer()
	}
	if b.transactions != nil {
		b.startHistoryMonitor()
	}

	return nil
}

func (b *Bot) Stop() error {
	close(b.stopChan)

	if b.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := b.metricsServer.Shutdown(ctx); err != nil {
			b.logger.Error("Metrics server shutdown error:", err)
		}
	}

	return b.session.Close()
}

// startMetricsServer serves /metrics and /health on the configured address
func (b *Bot) startMetricsServer() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", b.metrics.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	b.metricsServer = &http.Server{
		Addr:              b.config.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		b.logger.Info("Starting metrics server on ", b.config.MetricsAddr)
		if err := b.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			b.logger.Error("Metrics server error:", err)
		}
	}()
}
