package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"

	config "github.com/geoclub/geodaily-services/configs"
	"github.com/geoclub/geodaily-services/internal/geosvc/broker"
	svcconfig "github.com/geoclub/geodaily-services/internal/geosvc/config"
	"github.com/geoclub/geodaily-services/internal/geosvc/db"
	"github.com/geoclub/geodaily-services/internal/geosvc/fetcher"
	"github.com/geoclub/geodaily-services/internal/geosvc/handlers"
	"github.com/geoclub/geodaily-services/internal/geosvc/provider"
	"github.com/geoclub/geodaily-services/internal/geosvc/scheduler"
	"github.com/geoclub/geodaily-services/internal/geosvc/service"
	"github.com/geoclub/geodaily-services/internal/geosvc/store"
	nats "github.com/geoclub/geodaily-services/internal/nats"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "geo"

var instanceId string

func init() {
	instanceId = config.CreateUniqueInstance(SERVICE_NAME)
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {
	cfg := svcconfig.Load()
	loc := cfg.Location()

	// embedded sqlite store
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer db.Close()
	log.Printf("sqlite store opened at %s", cfg.DBPath)

	gameStore := store.NewGameStore(database)
	gameService := service.NewGameService(gameStore)

	playerStore := store.NewPlayerStore(database)
	scoreStore := store.NewScoreStore(database)
	scoreService := service.NewScoreService(playerStore, scoreStore)

	lbStore := store.NewLeaderboardStore(database)
	leaderboardService := service.NewLeaderboardService(lbStore, gameStore, loc)

	client := provider.New(cfg.ProviderToken)
	fetchPipeline := fetcher.New(client, gameService, scoreService, cfg.FetchDelay)

	// Connect to NATS
	n, err := nats.Connect(SERVICE_NAME)
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(0)
	}

	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	// init chat gateway broker
	b := broker.NewBroker(n.Conn, client, gameService, leaderboardService)

	sub, err := b.SubscribeChatGateway()
	if err != nil {
		log.Errorf("Error: unable to subscribe to chat commands %v", err)
		os.Exit(0)
	}

	// daily tasks in the configured timezone
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.New(loc)
	sched.Add("create-game", cfg.CreateHour, cfg.CreateMin, func(ctx context.Context) {
		gameID, link, err := client.CreateChallenge(ctx)
		if err != nil {
			log.Errorf("Error [Provider.CreateChallenge] %s", err)
			return
		}
		if err := gameService.Register(ctx, gameID); err != nil {
			log.Errorf("Error [GameService.Register] %s", err)
			return
		}
		b.PublishReply(link, "")
	})
	sched.Add("fetch-scores", cfg.FetchHour, cfg.FetchMin, func(ctx context.Context) {
		if err := fetchPipeline.FetchMissing(ctx); err != nil {
			log.Errorf("Error [Fetcher.FetchMissing] %s", err)
		}
	})
	sched.Add("post-scores", cfg.PostHour, cfg.PostMin, func(ctx context.Context) {
		text, err := leaderboardService.FormattedToday(ctx)
		if err != nil {
			log.Errorf("Error [LeaderboardService.FormattedToday] %s", err)
			return
		}
		if text == "" {
			text = "No scores available for today's game."
		}
		b.PublishReply(text, "")
	})
	sched.Start(ctx)

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	rateLimitStr := os.Getenv("RATE_LIMIT")
	rateLimit, err := strconv.Atoi(rateLimitStr)
	if err != nil {
		rateLimit = 60
	}
	r.Use(httprate.LimitByIP(rateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(gameService, leaderboardService)
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + os.Getenv("GEO_SERVICE_PORT"),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	sub.Unsubscribe()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
