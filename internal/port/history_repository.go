package port

import (
	"context"

	"github.com/google/uuid"

	"snaptex/internal/domain"
)

// HistoryRepository defines the contract for recognition-history persistence.
// Append assigns an ID when the record carries none.
type HistoryRepository interface {
	Append(ctx context.Context, record *domain.HistoryRecord) (*domain.HistoryRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.HistoryRecord, error)
	List(ctx context.Context, offset, limit int) ([]domain.HistoryRecord, int, error)
	Remove(ctx context.Context, id uuid.UUID) error
	Clear(ctx context.Context) error
}
