package handler_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"snaptex/internal/domain"
)

func TestHistoryList_ReturnsPaginatedRecords(t *testing.T) {
	f := newHandlerFixture(t)
	records := []domain.HistoryRecord{
		{ID: uuid.New(), Text: "a", Timestamp: 2},
		{ID: uuid.New(), Text: "b", Timestamp: 1},
	}
	f.history.On("List", mock.Anything, 0, 20).Return(records, 2, nil)

	w := f.do(t, http.MethodGet, "/api/v1/history", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":2`)
}

func TestHistoryList_ClampsLimit(t *testing.T) {
	f := newHandlerFixture(t)
	f.history.On("List", mock.Anything, 0, 20).Return([]domain.HistoryRecord{}, 0, nil)

	w := f.do(t, http.MethodGet, "/api/v1/history?limit=5000", nil)

	require.Equal(t, http.StatusOK, w.Code)
	f.history.AssertCalled(t, "List", mock.Anything, 0, 20)
}

func TestHistoryRemove_InvalidID(t *testing.T) {
	f := newHandlerFixture(t)

	w := f.do(t, http.MethodDelete, "/api/v1/history/not-a-uuid", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_ID")
}

func TestHistoryRemove_MissingRecordIs404(t *testing.T) {
	f := newHandlerFixture(t)
	id := uuid.New()
	f.history.On("Remove", mock.Anything, id).Return(domain.ErrNotFound)

	w := f.do(t, http.MethodDelete, "/api/v1/history/"+id.String(), nil)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestHistoryRemove_Success(t *testing.T) {
	f := newHandlerFixture(t)
	id := uuid.New()
	f.history.On("Remove", mock.Anything, id).Return(nil)

	w := f.do(t, http.MethodDelete, "/api/v1/history/"+id.String(), nil)

	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestHistoryExport_CSVHeaders(t *testing.T) {
	f := newHandlerFixture(t)
	f.history.On("ExportCSV", mock.Anything, mock.Anything).Return(nil)

	w := f.do(t, http.MethodGet, "/api/v1/history/export?format=csv", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
}

func TestHistoryExport_UnknownFormatRejected(t *testing.T) {
	f := newHandlerFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/history/export?format=pdf", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	f.history.AssertNotCalled(t, "ExportCSV", mock.Anything, mock.Anything)
	f.history.AssertNotCalled(t, "ExportXLSX", mock.Anything, mock.Anything)
}
