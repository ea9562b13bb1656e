package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"snaptex/internal/domain"
	"snaptex/internal/port"
)

type historyRepo struct {
	db *sqlx.DB
}

// NewHistoryRepo creates a sqlite-backed HistoryRepository.
func NewHistoryRepo(db *sqlx.DB) port.HistoryRepository {
	return &historyRepo{db: db}
}

func (r *historyRepo) Append(ctx context.Context, record *domain.HistoryRecord) (*domain.HistoryRecord, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO history (id, text, timestamp, image_url, debug)
		 VALUES ($1, $2, $3, $4, $5)`,
		record.ID, record.Text, record.Timestamp, record.ImageURL, record.Debug)
	if err != nil {
		return nil, fmt.Errorf("historyRepo.Append: %w", err)
	}
	return record, nil
}

func (r *historyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.HistoryRecord, error) {
	var record domain.HistoryRecord
	err := r.db.GetContext(ctx, &record,
		`SELECT id, text, timestamp, image_url, COALESCE(debug, x'') AS debug
		 FROM history WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("historyRepo.GetByID: %w", err)
	}
	return &record, nil
}

func (r *historyRepo) List(ctx context.Context, offset, limit int) ([]domain.HistoryRecord, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM history"); err != nil {
		return nil, 0, fmt.Errorf("historyRepo.List count: %w", err)
	}

	records := []domain.HistoryRecord{}
	err := r.db.SelectContext(ctx, &records,
		`SELECT id, text, timestamp, image_url, COALESCE(debug, x'') AS debug
		 FROM history
		 ORDER BY timestamp DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("historyRepo.List: %w", err)
	}
	return records, total, nil
}

func (r *historyRepo) Remove(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM history WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("historyRepo.Remove: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *historyRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM history"); err != nil {
		return fmt.Errorf("historyRepo.Clear: %w", err)
	}
	return nil
}
