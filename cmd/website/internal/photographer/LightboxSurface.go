package photographer

import (
	"sync"
	"time"

	"fisheye/cmd/website/internal/viewmodels"
	"fisheye/pkg/assets"
	"fisheye/pkg/gallery"
	"fisheye/pkg/models"
)

/*
LightboxSurface is the htmx rendering side of the lightbox state
machine. Replace stages the fragment the handler sends back; the
browser animates the swap, so the surface signals settle after the
configured animation duration. That duration is what keeps the
transition lock honest: it must exceed the CSS animation time.
*/
type LightboxSurface struct {
	mu        sync.Mutex
	assets    assets.AssetStore
	settle    time.Duration
	visible   bool
	current   *viewmodels.LightboxMedia
	direction gallery.Direction
}

func NewLightboxSurface(assetStore assets.AssetStore, settle time.Duration) *LightboxSurface {
	if settle <= 0 {
		settle = 500 * time.Millisecond
	}

	return &LightboxSurface{
		assets: assetStore,
		settle: settle,
	}
}

func (s *LightboxSurface) Replace(media models.Media, folderName string, dir gallery.Direction) (<-chan struct{}, error) {
	var (
		err error
		u   string
	)

	if u, err = s.assets.URL(media.AssetPath(folderName)); err != nil {
		return nil, err
	}

	s.mu.Lock()

	s.current = &viewmodels.LightboxMedia{
		MediaID:  media.ID,
		Title:    media.DisplayTitle(),
		Kind:     media.Kind(),
		AssetURL: u,
	}
	s.direction = dir

	s.mu.Unlock()

	done := make(chan struct{})
	time.AfterFunc(s.settle, func() {
		close(done)
	})

	return done, nil
}

func (s *LightboxSurface) Reveal() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.visible = true
	return nil
}

func (s *LightboxSurface) Conceal() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.visible = false
	return nil
}

func (s *LightboxSurface) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	s.direction = gallery.DirectionNone
	return nil
}

// View snapshots the surface for the overlays fragment.
func (s *LightboxSurface) View(index, total int) viewmodels.LightboxView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := viewmodels.LightboxView{
		Open:      s.visible,
		Direction: s.direction.String(),
		Index:     index,
		Position:  index + 1,
		Total:     total,
	}

	if s.current != nil {
		mediaCopy := *s.current
		view.Media = &mediaCopy
	}

	return view
}
