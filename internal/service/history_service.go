package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"snaptex/internal/domain"
	"snaptex/internal/export"
	"snaptex/internal/port"
)

// exportPageSize is the repository page size used when streaming exports.
const exportPageSize = 500

// HistoryService defines the recognition-history contract.
type HistoryService interface {
	List(ctx context.Context, offset, limit int) ([]domain.HistoryRecord, int, error)
	Remove(ctx context.Context, id uuid.UUID) error
	Clear(ctx context.Context) error
	GetImage(ctx context.Context, id uuid.UUID) ([]byte, string, error)
	ExportCSV(ctx context.Context, w io.Writer) error
	ExportXLSX(ctx context.Context, w io.Writer) error
}

type historyService struct {
	repo    port.HistoryRepository
	storage port.ObjectStorage
	bucket  string
}

// NewHistoryService creates a HistoryService implementation.
func NewHistoryService(repo port.HistoryRepository, storage port.ObjectStorage, bucket string) HistoryService {
	return &historyService{repo: repo, storage: storage, bucket: bucket}
}

func (s *historyService) List(ctx context.Context, offset, limit int) ([]domain.HistoryRecord, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *historyService) Remove(ctx context.Context, id uuid.UUID) error {
	return s.repo.Remove(ctx, id)
}

func (s *historyService) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}

// GetImage returns the stored capture image for a history record.
func (s *historyService) GetImage(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if record.ImageURL == "" || s.storage == nil {
		return nil, "", domain.ErrNotFound
	}

	data, err := s.storage.Download(ctx, s.bucket, record.ImageURL)
	if err != nil {
		return nil, "", err
	}
	return data, contentTypeForKey(record.ImageURL), nil
}

func (s *historyService) ExportCSV(ctx context.Context, w io.Writer) error {
	if _, err := w.Write(export.BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}

	cw := export.NewCSVWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := s.eachPage(ctx, cw.WriteRecords); err != nil {
		return err
	}
	return cw.Flush()
}

func (s *historyService) ExportXLSX(ctx context.Context, w io.Writer) error {
	var all []domain.HistoryRecord
	err := s.eachPage(ctx, func(records []domain.HistoryRecord) error {
		all = append(all, records...)
		return nil
	})
	if err != nil {
		return err
	}
	return export.WriteXLSX(w, all)
}

func (s *historyService) eachPage(ctx context.Context, fn func([]domain.HistoryRecord) error) error {
	for offset := 0; ; offset += exportPageSize {
		records, total, err := s.repo.List(ctx, offset, exportPageSize)
		if err != nil {
			return err
		}
		if err := fn(records); err != nil {
			return err
		}
		if offset+len(records) >= total || len(records) == 0 {
			return nil
		}
	}
}

func contentTypeForKey(key string) string {
	for t, ct := range domain.AllowedImageTypes {
		if strings.HasSuffix(key, "."+string(t)) {
			return ct
		}
	}
	return "application/octet-stream"
}
