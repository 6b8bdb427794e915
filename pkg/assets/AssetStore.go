package assets

import (
	"fmt"
	"io"
	"time"
)

var (
	ErrAssetNotFound = fmt.Errorf("asset not found")
)

type Asset struct {
	Key          string
	URL          string
	Size         int64
	LastModified time.Time
}

/*
AssetStore abstracts where photographer media lives. Keys are
slash-separated paths relative to the store root:
{folderName}/{sourceFile} for gallery media,
photographers/{portraitFile} for portraits, with generated thumbnails
under a thumbnails/ segment next to their originals.
*/
type AssetStore interface {
	List(prefix string) ([]Asset, error)
	Get(key string) (io.ReadCloser, string, int64, error)
	Put(key string, r io.Reader, contentType string) error
	Stat(key string) (*Asset, error)
	URL(key string) (string, error)
}
