package deadletterrepo

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeadLetterRepository implements DeadLetterRepository using GORM.
type GormDeadLetterRepository struct {
	db *gorm.DB
}

// NewGormDeadLetterRepository creates a new GORM dead letter repository.
// Pass the main connection here, not a transaction handle.
func NewGormDeadLetterRepository(db *gorm.DB) *GormDeadLetterRepository {
	return &GormDeadLetterRepository{db: db}
}

// Add persists a new dead letter.
func (r *GormDeadLetterRepository) Add(ctx context.Context, letter *ports.DeadLetter) error {
	if err := letter.ID.Validate(); err != nil {
		return err
	}

	dto := fromDomain(letter)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetUnresolved returns dead letters that still need a retry, oldest first.
func (r *GormDeadLetterRepository) GetUnresolved(ctx context.Context, limit int) ([]*ports.DeadLetter, error) {
	var dtos []DeadLetterDTO
	err := r.db.WithContext(ctx).
		Where("resolved_at IS NULL").
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	letters := make([]*ports.DeadLetter, 0, len(dtos))
	for _, dto := range dtos {
		letter, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		letters = append(letters, letter)
	}

	return letters, nil
}

// MarkResolved stamps the dead letter as successfully retried.
func (r *GormDeadLetterRepository) MarkResolved(ctx context.Context, id kernel.UUID, at time.Time) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&DeadLetterDTO{}).
		Where("id = ?", id.Bytes()).
		Update("resolved_at", at)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("deadLetterId", id.String())
	}

	return nil
}
