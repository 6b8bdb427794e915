package gallery

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fisheye/pkg/models"
)

/*
fakeSurface records every call and lets tests decide when a swap has
settled by holding the done channel open.
*/
type fakeSurface struct {
	mu         sync.Mutex
	replaced   []models.Media
	directions []Direction
	visible    bool
	cleared    int
	done       chan struct{}
	autoSettle bool
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{autoSettle: true}
}

func (f *fakeSurface) Replace(media models.Media, folderName string, dir Direction) (<-chan struct{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.replaced = append(f.replaced, media)
	f.directions = append(f.directions, dir)
	f.done = make(chan struct{})

	if f.autoSettle {
		close(f.done)
	}

	return f.done, nil
}

func (f *fakeSurface) Reveal() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visible = true
	return nil
}

func (f *fakeSurface) Conceal() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visible = false
	return nil
}

func (f *fakeSurface) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleared++
	return nil
}

func (f *fakeSurface) settle() {
	f.mu.Lock()
	defer f.mu.Unlock()
	close(f.done)
}

func (f *fakeSurface) lastDirection() Direction {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.directions[len(f.directions)-1]
}

func (f *fakeSurface) lastMedia() models.Media {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.replaced[len(f.replaced)-1]
}

func (f *fakeSurface) replaceCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.replaced)
}

func (f *fakeSurface) isVisible() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visible
}

func testMedia() []models.Media {
	return []models.Media{
		{ID: 1, PhotographerID: 82, Title: "Arc et ciel", Image: "arc.jpg", Likes: 52, Date: "2011-12-06", Price: 55},
		{ID: 2, PhotographerID: 82, Title: "Le lac", Image: "lac.jpg", Likes: 11, Date: "2012-01-14", Price: 55},
		{ID: 3, PhotographerID: 82, Title: "Montagne", Video: "montagne.mp4", Likes: 70, Date: "2011-11-28", Price: 55},
	}
}

// waitSettled blocks until the transition lock releases. The lock
// clears on a goroutine even when the surface settles instantly.
func waitSettled(t *testing.T, lightbox *Lightbox) {
	t.Helper()

	require.Eventually(t, func() bool {
		return !lightbox.IsTransitioning()
	}, time.Second, time.Millisecond)
}

func newTestLightbox(t *testing.T, surface Surface) *Lightbox {
	t.Helper()

	lightbox, err := NewLightbox(LightboxConfig{Surface: surface})
	require.NoError(t, err)
	require.NoError(t, lightbox.Initialize(testMedia(), "Travel"))

	return lightbox
}

func TestNewLightbox(t *testing.T) {
	t.Run("requires a surface", func(t *testing.T) {
		_, err := NewLightbox(LightboxConfig{})
		assert.ErrorIs(t, err, ErrSurfaceMissing)
	})
}

func TestLightboxInitialize(t *testing.T) {
	surface := newFakeSurface()
	lightbox, err := NewLightbox(LightboxConfig{Surface: surface})
	require.NoError(t, err)

	t.Run("rejects nil media", func(t *testing.T) {
		assert.ErrorIs(t, lightbox.Initialize(nil, "Travel"), ErrInvalidInput)
	})

	t.Run("rejects empty folder name", func(t *testing.T) {
		assert.ErrorIs(t, lightbox.Initialize(testMedia(), ""), ErrInvalidInput)
	})

	t.Run("rejects malformed media", func(t *testing.T) {
		bad := testMedia()
		bad[1].Image = ""
		bad[1].Video = ""

		assert.ErrorIs(t, lightbox.Initialize(bad, "Travel"), ErrInvalidInput)
	})

	t.Run("resets the index", func(t *testing.T) {
		require.NoError(t, lightbox.Initialize(testMedia(), "Travel"))
		require.NoError(t, lightbox.Open(2))
		require.NoError(t, lightbox.Initialize(testMedia(), "Travel"))

		assert.Equal(t, 0, lightbox.Index())
	})
}

func TestLightboxOpen(t *testing.T) {
	t.Run("renders the target and reveals the container", func(t *testing.T) {
		surface := newFakeSurface()
		lightbox := newTestLightbox(t, surface)

		require.NoError(t, lightbox.Open(1))

		assert.True(t, lightbox.IsOpen())
		assert.True(t, surface.isVisible())
		assert.Equal(t, 2, surface.lastMedia().ID)
		assert.Equal(t, DirectionNone, surface.lastDirection())
	})

	t.Run("index out of range leaves state untouched", func(t *testing.T) {
		surface := newFakeSurface()
		lightbox := newTestLightbox(t, surface)

		assert.ErrorIs(t, lightbox.Open(3), ErrIndexOutOfRange)
		assert.ErrorIs(t, lightbox.Open(-1), ErrIndexOutOfRange)
		assert.False(t, lightbox.IsOpen())
		assert.Equal(t, 0, surface.replaceCount())
	})

	t.Run("opening while open animates toward the new index", func(t *testing.T) {
		surface := newFakeSurface()
		lightbox := newTestLightbox(t, surface)

		require.NoError(t, lightbox.Open(0))
		require.NoError(t, lightbox.Open(2))

		assert.Equal(t, DirectionForward, surface.lastDirection())
	})
}

func TestLightboxNavigation(t *testing.T) {
	t.Run("next wraps past the end", func(t *testing.T) {
		surface := newFakeSurface()
		lightbox := newTestLightbox(t, surface)
		require.NoError(t, lightbox.Open(0))

		for range testMedia() {
			lightbox.Next()
			waitSettled(t, lightbox)
		}

		assert.Equal(t, 0, lightbox.Index())
		assert.Equal(t, 1, surface.lastMedia().ID)
	})

	t.Run("previous wraps past the start", func(t *testing.T) {
		surface := newFakeSurface()
		lightbox := newTestLightbox(t, surface)
		require.NoError(t, lightbox.Open(0))

		lightbox.Previous()

		assert.Equal(t, 2, lightbox.Index())
		assert.Equal(t, DirectionBackward, surface.lastDirection())
	})

	t.Run("next then previous returns to the start", func(t *testing.T) {
		surface := newFakeSurface()
		lightbox := newTestLightbox(t, surface)
		require.NoError(t, lightbox.Open(1))

		lightbox.Next()
		waitSettled(t, lightbox)
		lightbox.Previous()

		assert.Equal(t, 1, lightbox.Index())
	})

	t.Run("navigation on an empty store is a no-op", func(t *testing.T) {
		surface := newFakeSurface()
		lightbox, err := NewLightbox(LightboxConfig{Surface: surface})
		require.NoError(t, err)

		lightbox.Next()
		lightbox.Previous()

		assert.Equal(t, 0, surface.replaceCount())
	})
}

func TestLightboxTransitionLock(t *testing.T) {
	t.Run("drops navigation until the swap settles", func(t *testing.T) {
		surface := newFakeSurface()
		surface.autoSettle = false

		lightbox := newTestLightbox(t, surface)
		require.NoError(t, lightbox.Open(0))

		lightbox.Next()
		require.Equal(t, 1, lightbox.Index())
		require.True(t, lightbox.IsTransitioning())

		// Rapid repeats while the previous swap is still animating.
		lightbox.Next()
		lightbox.Next()

		assert.Equal(t, 1, lightbox.Index())
		assert.Equal(t, 2, surface.replaceCount())

		surface.settle()

		require.Eventually(t, func() bool {
			return !lightbox.IsTransitioning()
		}, time.Second, 5*time.Millisecond)

		lightbox.Next()
		assert.Equal(t, 2, lightbox.Index())

		surface.settle()
	})

	t.Run("close releases the lock", func(t *testing.T) {
		surface := newFakeSurface()
		surface.autoSettle = false

		lightbox := newTestLightbox(t, surface)
		require.NoError(t, lightbox.Open(0))

		lightbox.Next()
		require.True(t, lightbox.IsTransitioning())

		lightbox.Close()

		assert.False(t, lightbox.IsTransitioning())
		assert.False(t, lightbox.IsOpen())

		surface.settle()
	})
}

func TestLightboxClose(t *testing.T) {
	t.Run("clears the surface and empties the store", func(t *testing.T) {
		surface := newFakeSurface()
		lightbox := newTestLightbox(t, surface)
		require.NoError(t, lightbox.Open(2))

		lightbox.Close()

		assert.False(t, lightbox.IsOpen())
		assert.False(t, surface.isVisible())
		assert.Equal(t, 0, lightbox.Len())

		_, ok := lightbox.Current()
		assert.False(t, ok)
	})

	t.Run("close then open on the same sequence replays the first open", func(t *testing.T) {
		surface := newFakeSurface()
		lightbox := newTestLightbox(t, surface)

		require.NoError(t, lightbox.Open(0))
		first := surface.lastMedia()

		lightbox.Close()
		require.NoError(t, lightbox.OpenWith(0, testMedia(), "Travel"))

		assert.Equal(t, first.ID, surface.lastMedia().ID)
		assert.Equal(t, DirectionNone, surface.lastDirection())
		assert.True(t, lightbox.IsOpen())
		assert.True(t, surface.isVisible())
		assert.False(t, lightbox.IsTransitioning())
	})

	t.Run("closing a closed lightbox is safe", func(t *testing.T) {
		surface := newFakeSurface()
		lightbox := newTestLightbox(t, surface)

		lightbox.Close()
		lightbox.Close()

		assert.False(t, lightbox.IsOpen())
	})
}

func TestLightboxOpenWith(t *testing.T) {
	t.Run("reuses the store when unchanged", func(t *testing.T) {
		surface := newFakeSurface()
		lightbox := newTestLightbox(t, surface)

		require.NoError(t, lightbox.Open(2))
		require.NoError(t, lightbox.OpenWith(1, testMedia(), "Travel"))

		assert.Equal(t, 1, lightbox.Index())
		assert.Equal(t, DirectionBackward, surface.lastDirection())
	})

	t.Run("re-initializes when the order changes", func(t *testing.T) {
		surface := newFakeSurface()
		lightbox := newTestLightbox(t, surface)
		require.NoError(t, lightbox.Open(2))

		reordered := []models.Media{testMedia()[2], testMedia()[0], testMedia()[1]}
		require.NoError(t, lightbox.OpenWith(0, reordered, "Travel"))

		assert.Equal(t, 0, lightbox.Index())
		assert.Equal(t, 3, surface.lastMedia().ID)
	})
}
