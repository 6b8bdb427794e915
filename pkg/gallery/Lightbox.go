package gallery

import (
	"fmt"
	"log/slog"
	"sync"

	"fisheye/pkg/models"
)

type LightboxConfig struct {
	Surface Surface
}

/*
Lightbox owns the media store of the currently open gallery viewer: the
ordered media sequence, the active folder name, the current index, the
open flag, and the transition lock. It is constructed once per gallery
session and drives a Surface to do the actual rendering.

Every operation degrades to a logged no-op on failure. Nothing panics
across this boundary, so one bad interaction never freezes the page.
*/
type Lightbox struct {
	mu            sync.Mutex
	surface       Surface
	media         []models.Media
	folderName    string
	index         int
	open          bool
	transitioning bool

	// epoch invalidates in-flight settle waits when the store is reset.
	epoch uint64
}

func NewLightbox(config LightboxConfig) (*Lightbox, error) {
	if config.Surface == nil {
		slog.Error("lightbox created without a surface")
		return nil, ErrSurfaceMissing
	}

	return &Lightbox{
		surface: config.Surface,
	}, nil
}

/*
Initialize replaces the media store with the given ordered sequence and
folder and resets the current index to 0. It performs no rendering.
*/
func (l *Lightbox) Initialize(media []models.Media, folderName string) error {
	var (
		err error
	)

	if media == nil {
		slog.Error("lightbox initialized with nil media sequence")
		return fmt.Errorf("initialize: media sequence: %w", ErrInvalidInput)
	}

	if folderName == "" {
		slog.Error("lightbox initialized with empty folder name")
		return fmt.Errorf("initialize: folder name: %w", ErrInvalidInput)
	}

	for _, m := range media {
		if err = m.Validate(); err != nil {
			slog.Error("lightbox initialized with malformed media", "error", err, "mediaID", m.ID)
			return fmt.Errorf("initialize: %w", ErrInvalidInput)
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.media = make([]models.Media, len(media))
	copy(l.media, media)
	l.folderName = folderName
	l.index = 0
	l.transitioning = false
	l.epoch++

	return nil
}

/*
OpenWith re-initializes the media store when the supplied sequence or
folder differs from the stored one, then opens at the given index.
*/
func (l *Lightbox) OpenWith(index int, media []models.Media, folderName string) error {
	var (
		err error
	)

	if media != nil && !l.holdsStore(media, folderName) {
		if err = l.Initialize(media, folderName); err != nil {
			return err
		}
	}

	return l.Open(index)
}

/*
Open validates the index against the media store, sets it current,
renders the target media, and reveals the container. The first open
inserts with no exit animation; opening while already open animates the
swap toward the new index.
*/
func (l *Lightbox) Open(index int) error {
	var (
		err error
	)

	l.mu.Lock()
	defer l.mu.Unlock()

	if index < 0 || index >= len(l.media) {
		slog.Error("lightbox open with index out of range", "index", index, "length", len(l.media))
		return fmt.Errorf("open %d: %w", index, ErrIndexOutOfRange)
	}

	dir := DirectionNone

	if l.open {
		if index >= l.index {
			dir = DirectionForward
		} else {
			dir = DirectionBackward
		}
	}

	done, err := l.surface.Replace(l.media[index], l.folderName, dir)

	if err != nil {
		slog.Error("lightbox failed to render media on open", "error", err, "index", index)
		return err
	}

	l.index = index

	if dir != DirectionNone {
		l.beginTransition(done)
	}

	if !l.open {
		l.open = true

		if err = l.surface.Reveal(); err != nil {
			slog.Error("lightbox failed to reveal container", "error", err)
		}
	}

	return nil
}

/*
Close removes the displayed media, clears the caption, empties the media
store, resets the index to 0, and conceals the container. Calling it on
an already-closed lightbox is a no-op.
*/
func (l *Lightbox) Close() {
	var (
		err error
	)

	l.mu.Lock()
	defer l.mu.Unlock()

	if err = l.surface.Clear(); err != nil {
		slog.Error("lightbox failed to clear media on close", "error", err)
	}

	if err = l.surface.Conceal(); err != nil {
		slog.Error("lightbox failed to conceal container on close", "error", err)
	}

	l.media = nil
	l.folderName = ""
	l.index = 0
	l.open = false
	l.transitioning = false
	l.epoch++
}

// Next advances to the following media, wrapping past the end of the
// store. Dropped silently while a transition is settling.
func (l *Lightbox) Next() {
	l.navigate(1, DirectionForward)
}

// Previous steps back to the preceding media, wrapping past the start.
func (l *Lightbox) Previous() {
	l.navigate(-1, DirectionBackward)
}

func (l *Lightbox) navigate(step int, dir Direction) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.media) == 0 {
		slog.Debug("lightbox navigation with empty media store")
		return
	}

	if l.transitioning {
		// Rapid repeated input is expected. Drop it, don't queue it.
		slog.Debug("lightbox navigation dropped while transitioning", "direction", dir.String())
		return
	}

	n := len(l.media)
	next := (l.index + step + n) % n

	done, err := l.surface.Replace(l.media[next], l.folderName, dir)

	if err != nil {
		slog.Error("lightbox failed to render media", "error", err, "index", next, "direction", dir.String())
		return
	}

	l.index = next
	l.beginTransition(done)
}

// beginTransition arms the transition lock. The lock releases when the
// surface signals the swap has settled, not on a free-running timer, so
// it can never unlock while the old node is still animating out.
// Callers hold l.mu.
func (l *Lightbox) beginTransition(done <-chan struct{}) {
	l.transitioning = true
	epoch := l.epoch

	go func() {
		<-done

		l.mu.Lock()
		defer l.mu.Unlock()

		if l.epoch == epoch {
			l.transitioning = false
		}
	}()
}

func (l *Lightbox) holdsStore(media []models.Media, folderName string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if folderName != l.folderName || len(media) != len(l.media) {
		return false
	}

	for index, m := range media {
		if m.ID != l.media[index].ID {
			return false
		}
	}

	return true
}

func (l *Lightbox) Index() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.index
}

func (l *Lightbox) IsOpen() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.open
}

func (l *Lightbox) IsTransitioning() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.transitioning
}

func (l *Lightbox) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.media)
}

// Surface exposes the rendering surface so the web layer can read back
// what is currently displayed.
func (l *Lightbox) Surface() Surface {
	return l.surface
}

// Current returns the media under the index, or false when the store is
// empty.
func (l *Lightbox) Current() (models.Media, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.media) == 0 {
		return models.Media{}, false
	}

	return l.media[l.index], true
}
