package service_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"snaptex/internal/domain"
	"snaptex/internal/service"
	"snaptex/mocks"
)

func TestHistoryService_GetImage(t *testing.T) {
	repo := new(mocks.MockHistoryRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewHistoryService(repo, storage, "captures")

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).
		Return(&domain.HistoryRecord{ID: id, ImageURL: "2026/08/x.png"}, nil)
	storage.On("Download", mock.Anything, "captures", "2026/08/x.png").
		Return([]byte("png-bytes"), nil)

	data, contentType, err := svc.GetImage(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
	assert.Equal(t, "image/png", contentType)
}

func TestHistoryService_GetImageWithoutStoredImage(t *testing.T) {
	repo := new(mocks.MockHistoryRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewHistoryService(repo, storage, "captures")

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).
		Return(&domain.HistoryRecord{ID: id}, nil)

	_, _, err := svc.GetImage(context.Background(), id)
	require.ErrorIs(t, err, domain.ErrNotFound)
	storage.AssertNotCalled(t, "Download", mock.Anything, mock.Anything, mock.Anything)
}

func TestHistoryService_ExportCSV(t *testing.T) {
	repo := new(mocks.MockHistoryRepo)
	svc := service.NewHistoryService(repo, nil, "captures")

	records := []domain.HistoryRecord{
		{ID: uuid.New(), Text: "a", Timestamp: 1},
		{ID: uuid.New(), Text: "b", Timestamp: 2},
	}
	repo.On("List", mock.Anything, 0, mock.Anything).Return(records, 2, nil)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), &buf))

	out := buf.Bytes()
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, out[:3])
	assert.Contains(t, buf.String(), "ID,Text,Timestamp")
	assert.Equal(t, 3, bytes.Count(out, []byte("\n")))
}
