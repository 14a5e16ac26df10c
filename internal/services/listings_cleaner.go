package services

import (
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type expiredListingsRemover interface {
	RemoveExpiredListings(now time.Time) int
}

// ListingsCleaner prunes fetched listings whose application deadline has
// passed, once an hour.
type ListingsCleaner struct {
	store expiredListingsRemover
	cron  *cron.Cron
}

func NewListingsCleaner(store expiredListingsRemover) (*ListingsCleaner, error) {

	lc := &ListingsCleaner{
		store: store,
		cron:  cron.New(),
	}

	_, err := lc.cron.AddFunc("0 * * * *", lc.removeExpired)
	if err != nil {
		return nil, err
	}

	lc.cron.Start()
	log.Info("listings cleaner started")
	return lc, nil
}

func (lc *ListingsCleaner) Stop() {
	lc.cron.Stop()
}

func (lc *ListingsCleaner) removeExpired() {
	removed := lc.store.RemoveExpiredListings(time.Now())
	if removed > 0 {
		log.Infof("removed %v expired listings", removed)
	}
}
