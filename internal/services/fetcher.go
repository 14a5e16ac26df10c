package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/careerdesk/jobboard/internal/clients/boards"
	"github.com/careerdesk/jobboard/internal/domain/models"
	"github.com/careerdesk/jobboard/internal/logger"
	"github.com/careerdesk/jobboard/internal/metrics"
	gocache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
)

type jobsStore interface {
	SetAllJobs(jobs []models.Job)
}

type listingsClient interface {
	GetJobs(parameters boards.SearchParameters) ([]json.RawMessage, error)
}

const (
	listingsCacheKey = "listings"
	// lastGoodBatchKey never expires; it backs the fetch-failure fallback.
	lastGoodBatchKey = "listings_last_good"
)

// Fetcher feeds the store with upstream listings. The store itself never
// fetches; SetAllJobs is its only ingestion point.
type Fetcher struct {
	client     listingsClient
	store      jobsStore
	normalizer *Normalizer
	cache      *gocache.Cache
}

func NewFetcher(client listingsClient, store jobsStore, cacheTTL time.Duration) *Fetcher {
	return &Fetcher{
		client:     client,
		store:      store,
		normalizer: NewNormalizer(),
		cache:      gocache.New(cacheTTL, 2*cacheTTL),
	}
}

// Refresh pushes a listings batch into the store. Inside the freshness
// window the cached batch is reused without hitting the API. A failed fetch
// falls back to the last successful batch, then to the built-in samples so
// the board is never empty.
func (f *Fetcher) Refresh() {

	if cached, found := f.cache.Get(listingsCacheKey); found {
		f.store.SetAllJobs(cached.([]models.Job))
		return
	}

	start := time.Now()
	raws, err := f.client.GetJobs(boards.SearchParameters{})
	metrics.FetchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeBoardsApi).
			Errorf("failed to fetch listings: %v", err)
		if last, found := f.cache.Get(lastGoodBatchKey); found {
			f.store.SetAllJobs(last.([]models.Job))
			return
		}
		f.store.SetAllJobs(sampleJobs())
		return
	}

	jobs := f.normalizer.NormalizeBatch(raws)
	log.Infof("fetched %v listings (%v dropped)", len(jobs), len(raws)-len(jobs))

	if err := f.cache.Add(listingsCacheKey, jobs, gocache.DefaultExpiration); err != nil {
		log.Errorf("failed to cache listings: %v", err)
	}
	f.cache.Set(lastGoodBatchKey, jobs, gocache.NoExpiration)
	f.store.SetAllJobs(jobs)
}

// Run refreshes on the given interval until ctx is canceled.
func (f *Fetcher) Run(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.Refresh()
		}
	}
}
