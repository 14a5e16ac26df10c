package repositories

import (
	"context"

	"github.com/careerdesk/jobboard/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Data is a durable key-value byte store. Each board collection (role,
// applications, user jobs, saved jobs, theme, filters) lives under its own
// key and is read and written independently.
type Data struct {
	db *gorm.DB
}

func NewDataRepository(db *gorm.DB) *Data {
	return &Data{db: db}
}

func (repo *Data) Save(ctx context.Context, id string, data []byte) error {
	return repo.db.WithContext(ctx).Save(models.DataBlob{
		ID:    id,
		Value: data,
	}).Error
}

// Load returns (nil, nil) when the key is absent.
func (repo *Data) Load(ctx context.Context, id string) ([]byte, error) {
	data := &models.DataBlob{}
	err := repo.db.WithContext(ctx).First(data, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return data.Value, nil
}

func (repo *Data) Remove(ctx context.Context, id string) error {
	return repo.db.WithContext(ctx).Delete(&models.DataBlob{}, "id = ?", id).Error
}
