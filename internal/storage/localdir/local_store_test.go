package localdir

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snaptex/internal/domain"
	"snaptex/internal/port"
)

func TestLocalStore_UploadDownloadDelete(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	out, err := store.Upload(ctx, port.UploadInput{
		Bucket:      "captures",
		Key:         "2026/abc.png",
		Body:        strings.NewReader("png-bytes"),
		ContentType: "image/png",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Location)

	data, err := store.Download(ctx, "captures", "2026/abc.png")
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Delete(ctx, "captures", "2026/abc.png"))
	_, err = store.Download(ctx, "captures", "2026/abc.png")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocalStore_DeleteMissingIsNoop(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "captures", "nope.png"))
}

func TestLocalStore_RejectsEscapingKeys(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Download(context.Background(), "captures", "../../etc/passwd")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes storage root")
}

func TestLocalStore_PresignedURLIsFileURL(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	url, err := store.GetPresignedURL(context.Background(), "captures", "abc.png", 3600)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "file://"))
	assert.True(t, strings.HasSuffix(url, "captures/abc.png"))
}
