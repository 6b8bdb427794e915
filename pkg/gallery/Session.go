package gallery

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fisheye/pkg/models"
)

const (
	KeyEscape     = "Escape"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
)

/*
Session holds one visitor's gallery state for one photographer page:
the sorted media order, the lightbox, and the modal controller. It is
the explicit owner of state the page used to scatter across module
globals, constructed per page session and passed to handlers.
*/
type Session struct {
	ID             string
	PhotographerID int
	Lightbox       *Lightbox
	Modals         *ModalController

	mu          sync.RWMutex
	media       []models.Media
	folderName  string
	sortBy      string
	lastTouched time.Time
}

// SetGallery replaces the session's sorted media order.
func (s *Session) SetGallery(media []models.Media, folderName, sortBy string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.media = make([]models.Media, len(media))
	copy(s.media, media)
	s.folderName = folderName
	s.sortBy = sortBy
}

func (s *Session) Gallery() []models.Media {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Media, len(s.media))
	copy(result, s.media)
	return result
}

func (s *Session) FolderName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.folderName
}

func (s *Session) SortBy() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortBy
}

// UpdateLikes applies a new like count to the session's copy of a media
// entry so a later popularity sort sees the current number.
func (s *Session) UpdateLikes(mediaID, likeCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for index := range s.media {
		if s.media[index].ID == mediaID {
			s.media[index].Likes = likeCount
			return
		}
	}
}

/*
OpenMedia opens the lightbox on the media with the given id, resolved
against the session's current sorted order. Thumbnails identify what
was clicked by media id, so a click after a sort always opens the media
it landed on, not the position it was rendered at.
*/
func (s *Session) OpenMedia(mediaID int) error {
	s.mu.RLock()

	index := -1

	for i := range s.media {
		if s.media[i].ID == mediaID {
			index = i
			break
		}
	}

	media := make([]models.Media, len(s.media))
	copy(media, s.media)
	folderName := s.folderName

	s.mu.RUnlock()

	if index < 0 {
		slog.Error("lightbox open for media not in the gallery", "mediaID", mediaID)
		return fmt.Errorf("open media %d: %w", mediaID, ErrElementMissing)
	}

	return s.Lightbox.OpenWith(index, media, folderName)
}

func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastTouched = time.Now()
}

func (s *Session) LastTouched() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastTouched
}

/*
HandleKey routes the page's keyboard surface. Escape closes an open
modal before an open lightbox; the arrow keys navigate the lightbox
only while it is open. Unknown keys are ignored.
*/
func (s *Session) HandleKey(key string) {
	switch key {
	case KeyEscape:
		if s.Modals.CloseAny() {
			return
		}

		if s.Lightbox.IsOpen() {
			s.Lightbox.Close()
		}

	case KeyArrowRight:
		if s.Lightbox.IsOpen() {
			s.Lightbox.Next()
		}

	case KeyArrowLeft:
		if s.Lightbox.IsOpen() {
			s.Lightbox.Previous()
		}

	default:
		slog.Debug("unhandled key", "key", key)
	}
}
