package photographer

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fisheye/pkg/assets"
	"fisheye/pkg/gallery"
	"fisheye/pkg/models"
)

type stubAssetStore struct{}

func (stubAssetStore) List(prefix string) ([]assets.Asset, error) {
	return nil, nil
}

func (stubAssetStore) Get(key string) (io.ReadCloser, string, int64, error) {
	return nil, "", 0, assets.ErrAssetNotFound
}

func (stubAssetStore) Put(key string, r io.Reader, contentType string) error {
	return nil
}

func (stubAssetStore) Stat(key string) (*assets.Asset, error) {
	return nil, nil
}

func (stubAssetStore) URL(key string) (string, error) {
	return "/assets/" + key, nil
}

func TestLightboxSurfaceView(t *testing.T) {
	media := models.Media{ID: 342550, PhotographerID: 82, Title: "Arc et ciel", Image: "arc.jpg", Likes: 52, Date: "2011-12-06"}

	t.Run("shows a 1-based position counter", func(t *testing.T) {
		surface := NewLightboxSurface(stubAssetStore{}, time.Millisecond)

		_, err := surface.Replace(media, "Travel", gallery.DirectionNone)
		require.NoError(t, err)
		require.NoError(t, surface.Reveal())

		view := surface.View(0, 3)

		assert.True(t, view.Open)
		assert.Equal(t, 0, view.Index)
		assert.Equal(t, 1, view.Position)
		assert.Equal(t, 3, view.Total)

		require.NotNil(t, view.Media)
		assert.Equal(t, "/assets/Travel/arc.jpg", view.Media.AssetURL)
	})

	t.Run("clear empties the staged media", func(t *testing.T) {
		surface := NewLightboxSurface(stubAssetStore{}, time.Millisecond)

		_, err := surface.Replace(media, "Travel", gallery.DirectionForward)
		require.NoError(t, err)
		require.NoError(t, surface.Clear())

		view := surface.View(0, 3)
		assert.Nil(t, view.Media)
	})
}
