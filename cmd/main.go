package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/asaskevich/EventBus"
	"github.com/careerdesk/jobboard/internal/clients/boards"
	"github.com/careerdesk/jobboard/internal/config"
	"github.com/careerdesk/jobboard/internal/logger"
	"github.com/careerdesk/jobboard/internal/metrics"
	"github.com/careerdesk/jobboard/internal/repositories"
	"github.com/careerdesk/jobboard/internal/services"
	"github.com/careerdesk/jobboard/internal/store"
	log "github.com/sirupsen/logrus"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer()

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	blobs := repositories.NewDataRepository(dbContext.DB)
	bus := EventBus.New()

	boardStore := store.New(bus, store.NewPersistence(blobs), cfg.Board.ItemsPerPage)

	client := boards.NewClient(cfg.Boards.BaseURL)
	client.SetRateLimit(cfg.Boards.MaxRequestsPerSecond)

	fetcher := services.NewFetcher(client, boardStore, cfg.Boards.CacheTTL)
	fetcher.Refresh()
	go fetcher.Run(ctx, cfg.Boards.CacheTTL)

	cleaner, err := services.NewListingsCleaner(boardStore)
	if err != nil {
		log.Fatalf("can't create listings cleaner: %v", err)
	}
	defer cleaner.Stop()

	<-ctx.Done()

	log.Info("Shutting down services...")
}
