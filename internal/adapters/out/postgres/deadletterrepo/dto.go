// Package deadletterrepo persists the dead letters written by the workflow
// engine. The repository is constructed with the main database connection,
// never a transaction: a dead letter recorded during a failing workflow must
// survive that workflow's rollback.
package deadletterrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"

	"github.com/google/uuid"
)

// DeadLetterDTO represents a dead letter row.
type DeadLetterDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	PlanLabel  string
	StepLabel  string
	Kind       string `gorm:"index"`
	SourceKey  string
	DestKey    string
	Reason     string
	CreatedAt  time.Time
	ResolvedAt *time.Time `gorm:"index"`
}

// TableName specifies the database table name for dead letters.
func (DeadLetterDTO) TableName() string {
	return "dead_letters"
}

// fromDomain converts a dead letter to its database representation.
func fromDomain(letter *ports.DeadLetter) DeadLetterDTO {
	return DeadLetterDTO{
		ID:         letter.ID.Bytes(),
		PlanLabel:  letter.PlanLabel,
		StepLabel:  letter.StepLabel,
		Kind:       string(letter.Kind),
		SourceKey:  letter.SourceKey,
		DestKey:    letter.DestKey,
		Reason:     letter.Reason,
		CreatedAt:  letter.CreatedAt,
		ResolvedAt: letter.ResolvedAt,
	}
}

// toDomain converts a database DTO to a dead letter.
func toDomain(dto DeadLetterDTO) (*ports.DeadLetter, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return &ports.DeadLetter{
		ID:         id,
		PlanLabel:  dto.PlanLabel,
		StepLabel:  dto.StepLabel,
		Kind:       ports.DeadLetterKind(dto.Kind),
		SourceKey:  dto.SourceKey,
		DestKey:    dto.DestKey,
		Reason:     dto.Reason,
		CreatedAt:  dto.CreatedAt,
		ResolvedAt: dto.ResolvedAt,
	}, nil
}
