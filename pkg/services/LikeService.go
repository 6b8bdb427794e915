package services

import (
	"fmt"
	"log/slog"

	"fisheye/pkg/models"
)

/*
LikeStorer persists like counts. Persistence is last write wins; there
is no merge or multi-writer coordination.
*/
type LikeStorer interface {
	UpdateLikes(mediaID, likeCount int) error
	Likes() (map[int]int, error)
}

type LikeServiceConfig struct {
	Store LikeStorer
}

type LikeServicer interface {
	UpdateLikes(mediaID, likeCount int) error
	Overlay(media []models.Media) []models.Media
	OverlayDocument(doc models.MediaDocument) models.MediaDocument
}

type LikeService struct {
	store LikeStorer
}

func NewLikeService(config LikeServiceConfig) LikeService {
	return LikeService{
		store: config.Store,
	}
}

func (s LikeService) UpdateLikes(mediaID, likeCount int) error {
	if mediaID <= 0 {
		return fmt.Errorf("media id %d: %w", mediaID, models.ErrInvalidMedia)
	}

	if likeCount < 0 {
		return fmt.Errorf("like count %d for media %d: %w", likeCount, mediaID, models.ErrInvalidLikeCount)
	}

	return s.store.UpdateLikes(mediaID, likeCount)
}

// Overlay returns the media with the stored like counts applied. On a
// store failure the input counts stand as they are.
func (s LikeService) Overlay(media []models.Media) []models.Media {
	var (
		err   error
		likes map[int]int
	)

	if likes, err = s.store.Likes(); err != nil {
		slog.Error("error reading like counts from store, keeping document counts", "error", err)
		return media
	}

	result := make([]models.Media, len(media))
	copy(result, media)

	for index := range result {
		if count, ok := likes[result[index].ID]; ok {
			result[index].Likes = count
		}
	}

	return result
}

func (s LikeService) OverlayDocument(doc models.MediaDocument) models.MediaDocument {
	doc.Media = s.Overlay(doc.Media)
	return doc
}
