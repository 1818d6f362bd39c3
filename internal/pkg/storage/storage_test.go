package storage_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoteldesk/hotel-booking-backend/internal/pkg/storage"
)

func TestDiskStoreRoundTrip(t *testing.T) {
	store, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	err = store.Save(ctx, "rooms/room-1/photo.jpg", strings.NewReader("jpeg bytes"))
	require.NoError(t, err)

	f, err := store.Open(ctx, "rooms/room-1/photo.jpg")
	require.NoError(t, err)
	defer f.Close()

	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(content))

	require.NoError(t, store.Delete(ctx, "rooms/room-1/photo.jpg"))

	_, err = store.Open(ctx, "rooms/room-1/photo.jpg")
	assert.Error(t, err)

	// Deleting a missing file is not an error.
	assert.NoError(t, store.Delete(ctx, "rooms/room-1/photo.jpg"))
}

func TestThumbnail(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 800, 600))
	for y := 0; y < 600; y++ {
		for x := 0; x < 800; x++ {
			src.Set(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: 64, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	thumb, err := storage.Thumbnail(&buf, 400, 400)
	require.NoError(t, err)

	decoded, err := jpeg.Decode(thumb)
	require.NoError(t, err)

	bounds := decoded.Bounds()
	assert.Equal(t, 400, bounds.Dx(), "width scales down to the limit")
	assert.Equal(t, 300, bounds.Dy(), "aspect ratio is preserved")
}

func TestThumbnailRejectsGarbage(t *testing.T) {
	_, err := storage.Thumbnail(strings.NewReader("not an image"), 400, 400)
	assert.Error(t, err)
}
