package store

import (
	"context"
	"encoding/json"
	"reflect"

	"github.com/careerdesk/jobboard/internal/logger"
	log "github.com/sirupsen/logrus"
)

const (
	keyUserRole     = "user_role"
	keyApplications = "applications"
	keyUserJobs     = "user_jobs"
	keySavedJobs    = "saved_jobs"
	keyTheme        = "theme"
	keyFilters      = "filters"
)

type BlobRepository interface {
	Save(ctx context.Context, id string, data []byte) error
	Load(ctx context.Context, id string) ([]byte, error)
	Remove(ctx context.Context, id string) error
}

// Persistence is a typed, best-effort layer over the durable byte store.
// Failed writes are logged and dropped, failed or corrupt reads report
// "absent" so callers fall back to defaults. In-memory state remains the
// source of truth for the session either way.
type Persistence struct {
	blobs BlobRepository
}

func NewPersistence(blobs BlobRepository) *Persistence {
	return &Persistence{blobs: blobs}
}

func (p *Persistence) write(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStore).
			Errorf("failed to encode %v for persistence: %v", key, err)
		return
	}

	if err := p.blobs.Save(context.Background(), key, data); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to persist %v: %v", key, err)
	}
}

// read reports whether dst was populated from the durable store. Decoding
// goes through a scratch value; a type error partway through an entry must
// not leave dst half-written.
func (p *Persistence) read(key string, dst any) bool {
	data, err := p.blobs.Load(context.Background(), key)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to load %v: %v", key, err)
		return false
	}
	if data == nil {
		return false
	}

	scratch := reflect.New(reflect.TypeOf(dst).Elem())
	if err := json.Unmarshal(data, scratch.Interface()); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStore).
			Errorf("corrupt entry for %v, using default: %v", key, err)
		return false
	}
	reflect.ValueOf(dst).Elem().Set(scratch.Elem())
	return true
}

func (p *Persistence) remove(key string) {
	if err := p.blobs.Remove(context.Background(), key); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to remove %v: %v", key, err)
	}
}
