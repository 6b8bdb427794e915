package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"fisheye/pkg/models"
	"github.com/fsnotify/fsnotify"
)

type MediaServicer interface {
	Document() models.MediaDocument
	Photographers() []models.Photographer
	Photographer(photographerID int) (*models.Photographer, error)
	MediaForPhotographer(photographerID int) []models.Media
	Stats(photographerID int) (models.PhotographerStats, error)
	Reload(ctx context.Context) error
}

type MediaServiceConfig struct {
	// Source is a local file path or an http(s) URL for the media
	// document.
	Source string

	// FetchTimeout bounds a single load. Defaults to 8 seconds.
	FetchTimeout time.Duration

	HTTPClient *http.Client
}

/*
MediaService owns the in-memory copy of the media document. It loads
and schema-validates the document with a bounded timeout, serves
filtered views of it, and can watch a file source for writes so like
updates persisted by the API become visible without a restart.

A failed load leaves the previous document in place; callers that find
it empty render their "nothing found" state instead of crashing.
*/
type MediaService struct {
	config MediaServiceConfig

	mu  sync.RWMutex
	doc models.MediaDocument

	watcher   *fsnotify.Watcher
	stopWatch chan struct{}
	wg        *sync.WaitGroup
}

func NewMediaService(config MediaServiceConfig) *MediaService {
	if config.FetchTimeout <= 0 {
		config.FetchTimeout = 8 * time.Second
	}

	if config.HTTPClient == nil {
		config.HTTPClient = http.DefaultClient
	}

	return &MediaService{
		config:    config,
		stopWatch: make(chan struct{}),
		wg:        &sync.WaitGroup{},
	}
}

// Reload fetches, validates, and swaps in the media document. On any
// failure the previous document is kept.
func (s *MediaService) Reload(ctx context.Context) error {
	var (
		err error
		b   []byte
		doc models.MediaDocument
	)

	ctx, cancel := context.WithTimeout(ctx, s.config.FetchTimeout)
	defer cancel()

	if b, err = s.fetch(ctx); err != nil {
		return fmt.Errorf("error fetching media document from %q: %w", s.config.Source, err)
	}

	if doc, err = models.ParseMediaDocument(b); err != nil {
		return err
	}

	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()

	slog.Info("media document loaded", "source", s.config.Source, "photographers", len(doc.Photographers), "media", len(doc.Media))
	return nil
}

func (s *MediaService) fetch(ctx context.Context) ([]byte, error) {
	if strings.HasPrefix(s.config.Source, "http://") || strings.HasPrefix(s.config.Source, "https://") {
		request, err := http.NewRequestWithContext(ctx, http.MethodGet, s.config.Source, nil)

		if err != nil {
			return nil, err
		}

		response, err := s.config.HTTPClient.Do(request)

		if err != nil {
			return nil, err
		}

		defer response.Body.Close()

		if response.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %s", response.Status)
		}

		return io.ReadAll(response.Body)
	}

	// File reads still honor the caller's deadline.
	type readResult struct {
		b   []byte
		err error
	}

	resultChan := make(chan readResult, 1)

	go func() {
		b, err := os.ReadFile(s.config.Source)
		resultChan <- readResult{b: b, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()

	case result := <-resultChan:
		return result.b, result.err
	}
}

func (s *MediaService) Document() models.MediaDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

func (s *MediaService) Photographers() []models.Photographer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Photographers
}

func (s *MediaService) Photographer(photographerID int) (*models.Photographer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.FindPhotographer(photographerID)
}

// MediaForPhotographer returns the photographer's media in document
// order.
func (s *MediaService) MediaForPhotographer(photographerID int) []models.Media {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.MediaFor(photographerID)
}

/*
Stats aggregates the photographer page footer numbers. Unlike the rest
of the service surface this propagates its error to the caller: the
statistics chain has a single top-level catch at the handler.
*/
func (s *MediaService) Stats(photographerID int) (models.PhotographerStats, error) {
	var (
		err          error
		photographer *models.Photographer
	)

	result := models.PhotographerStats{}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if photographer, err = s.doc.FindPhotographer(photographerID); err != nil {
		return result, fmt.Errorf("error gathering stats: %w", err)
	}

	result.Price = photographer.Price

	for _, m := range s.doc.MediaFor(photographerID) {
		result.TotalLikes += m.Likes
	}

	return result, nil
}

// StartWatching reloads the document whenever the file source is
// written, so like counts persisted by the API surface here. No-op for
// URL sources.
func (s *MediaService) StartWatching() error {
	var (
		err error
	)

	if strings.HasPrefix(s.config.Source, "http://") || strings.HasPrefix(s.config.Source, "https://") {
		slog.Debug("media document source is a URL, skipping file watch", "source", s.config.Source)
		return nil
	}

	if s.watcher, err = fsnotify.NewWatcher(); err != nil {
		return fmt.Errorf("error creating media document watcher: %w", err)
	}

	if err = s.watcher.Add(s.config.Source); err != nil {
		_ = s.watcher.Close()
		return fmt.Errorf("error watching media document %q: %w", s.config.Source, err)
	}

	s.stopWatch = make(chan struct{})

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		for {
			select {
			case event, ok := <-s.watcher.Events:
				if !ok {
					return
				}

				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}

				slog.Debug("media document changed on disk, reloading", "event", event.Op.String())

				if err := s.Reload(context.Background()); err != nil {
					slog.Error("error reloading media document after file change", "error", err)
				}

			case watchErr, ok := <-s.watcher.Errors:
				if !ok {
					return
				}

				slog.Error("media document watcher error", "error", watchErr)

			case <-s.stopWatch:
				return
			}
		}
	}()

	slog.Info("watching media document for changes", "source", s.config.Source)
	return nil
}

func (s *MediaService) StopWatching() {
	if s.watcher != nil {
		close(s.stopWatch)
		_ = s.watcher.Close()
		s.wg.Wait()
		slog.Info("media document watch stopped")
	}
}
