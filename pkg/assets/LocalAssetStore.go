package assets

import (
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/charlievieth/fastwalk"
)

type LocalAssetStoreConfig struct {
	// RootDir is the on-disk directory holding all media assets.
	RootDir string

	// URLPrefix is prepended to keys to build browser-facing URLs,
	// e.g. "/assets".
	URLPrefix string
}

type LocalAssetStore struct {
	rootDir   string
	urlPrefix string
}

func NewLocalAssetStore(config LocalAssetStoreConfig) LocalAssetStore {
	return LocalAssetStore{
		rootDir:   config.RootDir,
		urlPrefix: strings.TrimSuffix(config.URLPrefix, "/"),
	}
}

func (s LocalAssetStore) List(prefix string) ([]Asset, error) {
	var (
		err error
	)

	root := filepath.Join(s.rootDir, filepath.FromSlash(prefix))
	result := []Asset{}

	if _, err = os.Stat(root); os.IsNotExist(err) {
		return result, nil
	}

	conf := fastwalk.Config{
		Follow: false,
	}

	err = fastwalk.Walk(&conf, root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() {
			return nil
		}

		info, infoErr := d.Info()

		if infoErr != nil {
			return infoErr
		}

		relative, relErr := filepath.Rel(s.rootDir, p)

		if relErr != nil {
			return relErr
		}

		key := filepath.ToSlash(relative)
		u, _ := s.URL(key)

		result = append(result, Asset{
			Key:          key,
			URL:          u,
			Size:         info.Size(),
			LastModified: info.ModTime(),
		})

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("error walking asset directory %q: %w", root, err)
	}

	return result, nil
}

func (s LocalAssetStore) Get(key string) (io.ReadCloser, string, int64, error) {
	var (
		err  error
		f    *os.File
		info os.FileInfo
	)

	p := s.diskPath(key)

	if f, err = os.Open(p); err != nil {
		if os.IsNotExist(err) {
			return nil, "", 0, fmt.Errorf("asset %q: %w", key, ErrAssetNotFound)
		}

		return nil, "", 0, fmt.Errorf("error opening asset %q: %w", key, err)
	}

	if info, err = f.Stat(); err != nil {
		_ = f.Close()
		return nil, "", 0, fmt.Errorf("error reading asset info for %q: %w", key, err)
	}

	return f, contentTypeFor(key), info.Size(), nil
}

func (s LocalAssetStore) Put(key string, r io.Reader, contentType string) error {
	var (
		err error
		f   *os.File
	)

	p := s.diskPath(key)

	if err = os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return fmt.Errorf("error creating asset directory for %q: %w", key, err)
	}

	tempPath := p + ".tmp"

	if f, err = os.Create(tempPath); err != nil {
		return fmt.Errorf("error creating asset temp file for %q: %w", key, err)
	}

	if _, err = io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("error writing asset %q: %w", key, err)
	}

	if err = f.Close(); err != nil {
		return fmt.Errorf("error closing asset %q: %w", key, err)
	}

	if err = os.Rename(tempPath, p); err != nil {
		return fmt.Errorf("error replacing asset %q: %w", key, err)
	}

	return nil
}

func (s LocalAssetStore) Stat(key string) (*Asset, error) {
	var (
		err  error
		info os.FileInfo
	)

	if info, err = os.Stat(s.diskPath(key)); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("error reading asset info for %q: %w", key, err)
	}

	u, _ := s.URL(key)

	return &Asset{
		Key:          key,
		URL:          u,
		Size:         info.Size(),
		LastModified: info.ModTime(),
	}, nil
}

func (s LocalAssetStore) URL(key string) (string, error) {
	return path.Join(s.urlPrefix, key), nil
}

// diskPath confines keys to the store root. Path traversal segments
// are stripped before joining.
func (s LocalAssetStore) diskPath(key string) string {
	clean := path.Clean("/" + key)
	return filepath.Join(s.rootDir, filepath.FromSlash(strings.TrimPrefix(clean, "/")))
}

func contentTypeFor(key string) string {
	contentType := mime.TypeByExtension(strings.ToLower(path.Ext(key)))

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return contentType
}
