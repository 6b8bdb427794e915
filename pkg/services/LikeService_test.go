package services

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fisheye/pkg/models"
)

type stubLikeStore struct {
	updates map[int]int
	likes   map[int]int
	err     error
}

func (s *stubLikeStore) UpdateLikes(mediaID, likeCount int) error {
	if s.err != nil {
		return s.err
	}

	s.updates[mediaID] = likeCount
	return nil
}

func (s *stubLikeStore) Likes() (map[int]int, error) {
	if s.err != nil {
		return nil, s.err
	}

	return s.likes, nil
}

func TestLikeServiceUpdateLikes(t *testing.T) {
	t.Run("rejects a non-positive media id", func(t *testing.T) {
		service := NewLikeService(LikeServiceConfig{Store: &stubLikeStore{updates: map[int]int{}}})

		assert.ErrorIs(t, service.UpdateLikes(0, 5), models.ErrInvalidMedia)
		assert.ErrorIs(t, service.UpdateLikes(-3, 5), models.ErrInvalidMedia)
	})

	t.Run("rejects a negative like count", func(t *testing.T) {
		service := NewLikeService(LikeServiceConfig{Store: &stubLikeStore{updates: map[int]int{}}})
		assert.ErrorIs(t, service.UpdateLikes(1, -1), models.ErrInvalidLikeCount)
	})

	t.Run("writes through to the store", func(t *testing.T) {
		store := &stubLikeStore{updates: map[int]int{}}
		service := NewLikeService(LikeServiceConfig{Store: store})

		require.NoError(t, service.UpdateLikes(342550, 25))
		assert.Equal(t, 25, store.updates[342550])
	})
}

func TestLikeServiceOverlay(t *testing.T) {
	media := []models.Media{
		{ID: 1, Title: "a", Image: "a.jpg", Likes: 3},
		{ID: 2, Title: "b", Image: "b.jpg", Likes: 9},
	}

	t.Run("applies stored counts", func(t *testing.T) {
		store := &stubLikeStore{likes: map[int]int{1: 100}}
		service := NewLikeService(LikeServiceConfig{Store: store})

		result := service.Overlay(media)

		assert.Equal(t, 100, result[0].Likes)
		assert.Equal(t, 9, result[1].Likes)
		assert.Equal(t, 3, media[0].Likes)
	})

	t.Run("keeps document counts when the store fails", func(t *testing.T) {
		store := &stubLikeStore{err: fmt.Errorf("boom")}
		service := NewLikeService(LikeServiceConfig{Store: store})

		result := service.Overlay(media)
		assert.Equal(t, 3, result[0].Likes)
	})
}

func TestJSONFileLikeStore(t *testing.T) {
	newStore := func(t *testing.T) (JSONFileLikeStore, string) {
		t.Helper()

		path := filepath.Join(t.TempDir(), "photographers.json")
		require.NoError(t, os.WriteFile(path, []byte(sampleDocument), 0644))

		return NewJSONFileLikeStore(JSONFileLikeStoreConfig{Path: path}), path
	}

	t.Run("round trips a like count", func(t *testing.T) {
		store, _ := newStore(t)

		require.NoError(t, store.UpdateLikes(342550, 25))

		likes, err := store.Likes()
		require.NoError(t, err)
		assert.Equal(t, 25, likes[342550])
		assert.Equal(t, 71, likes[342551])
	})

	t.Run("unknown media returns not found", func(t *testing.T) {
		store, _ := newStore(t)
		assert.ErrorIs(t, store.UpdateLikes(999, 1), models.ErrMediaNotFound)
	})

	t.Run("writes survive a re-read of the file", func(t *testing.T) {
		store, path := newStore(t)
		require.NoError(t, store.UpdateLikes(923123, 14))

		b, err := os.ReadFile(path)
		require.NoError(t, err)

		doc, err := models.ParseMediaDocument(b)
		require.NoError(t, err)

		m, err := doc.FindMedia(923123)
		require.NoError(t, err)
		assert.Equal(t, 14, m.Likes)
	})

	t.Run("missing file is reported", func(t *testing.T) {
		store := NewJSONFileLikeStore(JSONFileLikeStoreConfig{Path: "/nonexistent/photographers.json"})

		_, err := store.Likes()
		assert.Error(t, err)
	})
}
