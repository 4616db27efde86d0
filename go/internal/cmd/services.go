package main

import (
	"database/sql"
	"log/slog"
	"os"

	"github.com/rosepool/rosepool/go/internal/contestant"
	"github.com/rosepool/rosepool/go/internal/dbconfig"
	"github.com/rosepool/rosepool/go/internal/draft"
	"github.com/rosepool/rosepool/go/internal/draft/gateway"
	"github.com/rosepool/rosepool/go/internal/draft/outbox"
	"github.com/rosepool/rosepool/go/internal/fantasyteam"
	"github.com/rosepool/rosepool/go/internal/leagues"
	"github.com/rosepool/rosepool/go/internal/roster"
)

type Services struct {
	League      *leagues.Service
	FantasyTeam *fantasyteam.Service
	Contestant  *contestant.Service
	Roster      *roster.Service
	Draft       *draft.Service

	DraftApp          *draft.App
	Orchestrator      *draft.Orchestrator
	OutboxWorker      *outbox.Worker
	OutboxListener    *outbox.Listener
	ConnectionManager *gateway.ConnectionManager
	WebSocket         *gateway.WebSocketHandler
}

func setupServices(database *sql.DB, cfg *Config) *Services {
	// Wire up dependency injection chain
	// Database layer → Repository layer → App layer → Service layer

	// Leagues
	leagueRepo := leagues.NewRepository(database)
	leagueApp := leagues.NewApp(leagueRepo)
	leagueService := leagues.NewService(leagueApp)

	// FantasyTeam
	fantasyTeamRepo := fantasyteam.NewRepository(database)
	fantasyTeamApp := fantasyteam.NewApp(fantasyTeamRepo, leagueRepo)
	fantasyTeamService := fantasyteam.NewService(fantasyTeamApp)

	// Contestants
	contestantRepo := contestant.NewRepository(database)
	contestantApp := contestant.NewApp(contestantRepo)
	contestantService := contestant.NewService(contestantApp)

	// Rosters
	rosterRepo := roster.NewRepository(database)
	rosterApp := roster.NewApp(rosterRepo, fantasyTeamRepo, contestantRepo)
	rosterService := roster.NewService(rosterApp)

	// Draft engine: events flow through the outbox to the event bus
	outboxRepo := outbox.NewRepository(database)
	dispatcher := draft.NewOutboxDispatcher(outboxRepo)

	draftRepo := draft.NewRepository(database)
	draftApp := draft.NewApp(draftRepo, fantasyTeamApp, contestantApp, rosterApp, dispatcher)
	draftService := draft.NewService(draftApp)

	strat := draft.NewRandomStrategy(contestantApp)
	orchestrator := draft.NewOrchestrator(draftApp, strat, cfg.Draft.OrchestratorBatchSize)

	// Outbox worker ships events to NATS JetStream, or logs them when no
	// broker is configured.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	var publisher outbox.EventPublisher
	if cfg.NATS.URL != "" {
		jsCfg := outbox.DefaultJetStreamConfig()
		jsCfg.URL = cfg.NATS.URL
		js, err := outbox.NewJetStreamPublisher(jsCfg)
		if err != nil {
			logger.Error("failed to connect JetStream publisher, falling back to mock", slog.String("error", err.Error()))
			publisher = outbox.NewMockPublisher(logger)
		} else {
			publisher = js
		}
	} else {
		publisher = outbox.NewMockPublisher(logger)
	}

	var (
		outboxWorker   *outbox.Worker
		outboxListener *outbox.Listener
	)
	if cfg.Outbox.Mode == "listen" {
		listenerCfg := outbox.DefaultListenerConfig()
		listenerCfg.DatabaseURL = dbconfig.NewConfigFromEnv().DSN()
		listenerCfg.BatchSize = cfg.Outbox.BatchSize
		l, err := outbox.NewListener(database, publisher, listenerCfg)
		if err != nil {
			logger.Error("failed to start outbox listener, falling back to polling", slog.String("error", err.Error()))
		} else {
			outboxListener = l
		}
	}
	if outboxListener == nil {
		outboxCfg := outbox.DefaultConfig()
		outboxCfg.PollInterval = cfg.outboxPollInterval()
		outboxCfg.BatchSize = cfg.Outbox.BatchSize
		outboxWorker = outbox.NewWorker(database, publisher, outboxCfg, logger)
	}

	// WebSocket gateway
	cm := gateway.NewConnectionManager(gateway.DefaultConnectionConfig())
	wsHandler := gateway.NewWebSocketHandler(cm)

	return &Services{
		League:      leagueService,
		FantasyTeam: fantasyTeamService,
		Contestant:  contestantService,
		Roster:      rosterService,
		Draft:       draftService,

		DraftApp:          draftApp,
		Orchestrator:      orchestrator,
		OutboxWorker:      outboxWorker,
		OutboxListener:    outboxListener,
		ConnectionManager: cm,
		WebSocket:         wsHandler,
	}
}
