package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fisheye/pkg/models"
)

type JSONFileLikeStoreConfig struct {
	// Path is the media document file the counts are written back to.
	Path string
}

/*
JSONFileLikeStore persists like counts straight into the flat media
document file: read, mutate the one entry, write the whole document
back via a temp file and rename. Last write wins.
*/
type JSONFileLikeStore struct {
	path string
	mu   *sync.Mutex
}

func NewJSONFileLikeStore(config JSONFileLikeStoreConfig) JSONFileLikeStore {
	return JSONFileLikeStore{
		path: config.Path,
		mu:   &sync.Mutex{},
	}
}

func (s JSONFileLikeStore) UpdateLikes(mediaID, likeCount int) error {
	var (
		err   error
		doc   models.MediaDocument
		media *models.Media
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	if doc, err = s.readDocument(); err != nil {
		return err
	}

	if media, err = doc.FindMedia(mediaID); err != nil {
		return err
	}

	media.Likes = likeCount
	return s.writeDocument(doc)
}

func (s JSONFileLikeStore) Likes() (map[int]int, error) {
	var (
		err error
		doc models.MediaDocument
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	if doc, err = s.readDocument(); err != nil {
		return nil, err
	}

	result := map[int]int{}

	for _, m := range doc.Media {
		result[m.ID] = m.Likes
	}

	return result, nil
}

func (s JSONFileLikeStore) readDocument() (models.MediaDocument, error) {
	var (
		err error
		b   []byte
		doc models.MediaDocument
	)

	if b, err = os.ReadFile(s.path); err != nil {
		return doc, fmt.Errorf("error reading media document %q: %w", s.path, err)
	}

	if err = json.Unmarshal(b, &doc); err != nil {
		return doc, fmt.Errorf("error parsing media document %q: %w", s.path, err)
	}

	return doc, nil
}

func (s JSONFileLikeStore) writeDocument(doc models.MediaDocument) error {
	var (
		err error
		b   []byte
	)

	if b, err = json.MarshalIndent(doc, "", "    "); err != nil {
		return fmt.Errorf("error encoding media document: %w", err)
	}

	tempPath := filepath.Join(filepath.Dir(s.path), fmt.Sprintf(".%s.tmp", filepath.Base(s.path)))

	if err = os.WriteFile(tempPath, b, 0644); err != nil {
		return fmt.Errorf("error writing media document temp file: %w", err)
	}

	if err = os.Rename(tempPath, s.path); err != nil {
		return fmt.Errorf("error replacing media document %q: %w", s.path, err)
	}

	return nil
}
