package models

import (
	"fmt"
	"path"
)

var (
	ErrMediaNotFound    = fmt.Errorf("media not found")
	ErrInvalidMedia     = fmt.Errorf("invalid media descriptor")
	ErrInvalidLikeCount = fmt.Errorf("invalid like count")
)

const (
	MediaKindImage = "image"
	MediaKindVideo = "video"

	// UntitledMedia is the caption and alt text used when a media entry
	// carries no title.
	UntitledMedia = "Untitled media"
)

/*
Media is a single gallery entry belonging to a photographer. Exactly one
of Image or Video is set; the other stays empty.
*/
type Media struct {
	ID             int    `json:"id"`
	PhotographerID int    `json:"photographerId"`
	Title          string `json:"title"`
	Image          string `json:"image,omitempty"`
	Video          string `json:"video,omitempty"`
	Likes          int    `json:"likes"`
	Date           string `json:"date"`
	Price          int    `json:"price"`
}

func (m Media) Kind() string {
	if m.Video != "" {
		return MediaKindVideo
	}

	return MediaKindImage
}

func (m Media) Source() string {
	if m.Video != "" {
		return m.Video
	}

	return m.Image
}

// AssetPath builds the path of this media's asset relative to the asset
// store root: {folderName}/{sourceFile}.
func (m Media) AssetPath(folderName string) string {
	return path.Join(folderName, m.Source())
}

func (m Media) DisplayTitle() string {
	if m.Title == "" {
		return UntitledMedia
	}

	return m.Title
}

func (m Media) Validate() error {
	if m.ID <= 0 {
		return fmt.Errorf("media id %d: %w", m.ID, ErrInvalidMedia)
	}

	if m.Image == "" && m.Video == "" {
		return fmt.Errorf("media %d has no source file: %w", m.ID, ErrInvalidMedia)
	}

	if m.Image != "" && m.Video != "" {
		return fmt.Errorf("media %d has both image and video sources: %w", m.ID, ErrInvalidMedia)
	}

	if m.Likes < 0 {
		return fmt.Errorf("media %d has negative like count: %w", m.ID, ErrInvalidMedia)
	}

	return nil
}
