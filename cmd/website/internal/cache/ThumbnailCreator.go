package cache

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"fisheye/pkg/assets"
	"fisheye/pkg/models"
	"fisheye/pkg/services"
	"github.com/adampresley/adamgokit/slices"
	"github.com/alitto/pond/v2"
	"github.com/nfnt/resize"
)

const (
	thumbnailMaxSize     uint = 400
	thumbnailJpegQuality      = 85
	portraitsFolder           = "photographers"
	thumbnailsFolder          = "thumbnails"
)

type ThumbnailCreator interface {
	CreateThumbnails()
}

type ThumbnailCreatorConfig struct {
	Assets       assets.AssetStore
	MaxWorkers   int
	MediaService services.MediaServicer
	ShutdownCtx  context.Context
}

/*
ThumbnailCreatorService builds the gallery thumbnails the pages link
to: a resized copy of every image media under
{folderName}/thumbnails/{sourceFile}, plus resized photographer
portraits under photographers/thumbnails/. Videos are skipped; their
thumbnails are the poster frames the browser extracts.
*/
type ThumbnailCreatorService struct {
	assets       assets.AssetStore
	maxWorkers   int
	mediaService services.MediaServicer
	shutdownCtx  context.Context
}

func NewThumbnailCreatorService(config ThumbnailCreatorConfig) ThumbnailCreatorService {
	return ThumbnailCreatorService{
		assets:       config.Assets,
		maxWorkers:   config.MaxWorkers,
		mediaService: config.MediaService,
		shutdownCtx:  config.ShutdownCtx,
	}
}

func (c ThumbnailCreatorService) CreateThumbnails() {
	var (
		err error
	)

	slog.Info("starting thumbnail creation...")

	pool := pond.NewPool(c.maxWorkers, pond.WithContext(c.shutdownCtx))

	if err = c.updatePortraitThumbnails(pool); err != nil {
		slog.Error("error updating portrait thumbnails", "error", err)
	}

	for _, photographer := range c.mediaService.Photographers() {
		folderName := photographer.FolderName

		for _, m := range c.mediaService.MediaForPhotographer(photographer.ID) {
			if m.Kind() != models.MediaKindImage {
				continue
			}

			originalKey := m.AssetPath(folderName)
			thumbnailKey := path.Join(folderName, thumbnailsFolder, m.Source())

			pool.Submit(func() {
				if !c.isThumbnailFresh(originalKey, thumbnailKey) {
					slog.Info("creating gallery thumbnail...", "key", thumbnailKey)

					if err := c.createThumbnail(originalKey, thumbnailKey); err != nil {
						slog.Error("error creating gallery thumbnail", "key", thumbnailKey, "error", err)
					}
				}
			})
		}
	}

	_ = pool.Stop().Wait()
	slog.Info("thumbnail creation finished")
}

func (c ThumbnailCreatorService) updatePortraitThumbnails(pool pond.Pool) error {
	var (
		err       error
		portraits []assets.Asset
		validExt  = []string{".jpg", ".jpeg", ".png"}
	)

	if portraits, err = c.assets.List(portraitsFolder); err != nil {
		return fmt.Errorf("error listing photographer portraits: %w", err)
	}

	slog.Info("checking for updated portraits...", "numPortraits", len(portraits))

	for _, portrait := range portraits {
		if strings.Contains(portrait.Key, "/"+thumbnailsFolder+"/") {
			continue
		}

		ext := strings.ToLower(filepath.Ext(portrait.Key))

		if !slices.IsInSlice(ext, validExt) {
			continue
		}

		originalKey := portrait.Key
		thumbnailKey := path.Join(portraitsFolder, thumbnailsFolder, path.Base(portrait.Key))

		pool.Submit(func() {
			if !c.isThumbnailFresh(originalKey, thumbnailKey) {
				slog.Info("creating portrait thumbnail...", "key", thumbnailKey)

				if err := c.createThumbnail(originalKey, thumbnailKey); err != nil {
					slog.Error("error creating portrait thumbnail", "key", thumbnailKey, "error", err)
				}
			}
		})
	}

	return nil
}

func (c ThumbnailCreatorService) isThumbnailFresh(originalKey, thumbnailKey string) bool {
	var (
		err           error
		originalStat  *assets.Asset
		thumbnailStat *assets.Asset
	)

	if thumbnailStat, err = c.assets.Stat(thumbnailKey); err != nil {
		slog.Error("error retrieving metadata for thumbnail", "key", thumbnailKey, "error", err)
		return false
	}

	if originalStat, err = c.assets.Stat(originalKey); err != nil {
		slog.Error("error retrieving metadata for original", "key", originalKey, "error", err)
		return false
	}

	if originalStat == nil || thumbnailStat == nil {
		return false
	}

	if thumbnailStat.LastModified.Before(originalStat.LastModified) {
		return false
	}

	return true
}

func (c ThumbnailCreatorService) createThumbnail(originalKey, thumbnailKey string) error {
	var (
		err      error
		img      image.Image
		original io.ReadCloser
		buf      bytes.Buffer
	)

	if original, _, _, err = c.assets.Get(originalKey); err != nil {
		return fmt.Errorf("error retrieving original image %s: %w", originalKey, err)
	}

	defer original.Close()

	if img, err = c.resizeReader(original, thumbnailMaxSize); err != nil {
		return fmt.Errorf("error resizing image: %w", err)
	}

	if err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: thumbnailJpegQuality}); err != nil {
		return fmt.Errorf("error encoding thumbnail: %w", err)
	}

	if err = c.assets.Put(thumbnailKey, &buf, "image/jpeg"); err != nil {
		return fmt.Errorf("error storing thumbnail: %w", err)
	}

	return nil
}

func (c ThumbnailCreatorService) resizeReader(r io.Reader, maxSize uint) (image.Image, error) {
	var (
		err error
		img image.Image
	)

	if img, _, err = image.Decode(r); err != nil {
		return nil, fmt.Errorf("error decoding image: %w", err)
	}

	return c.resize(img, maxSize), nil
}

func (c ThumbnailCreatorService) resize(img image.Image, maxSize uint) image.Image {
	/*
	 * Determine which dimension to resize based on the longest edge
	 */
	bounds := img.Bounds()
	width := uint(bounds.Dx())
	height := uint(bounds.Dy())

	var newWidth, newHeight uint

	if width > height {
		// Landscape orientation
		newWidth = maxSize
		newHeight = uint(float64(height) * (float64(maxSize) / float64(width)))
	} else {
		// Portrait orientation or square
		newHeight = maxSize
		newWidth = uint(float64(width) * (float64(maxSize) / float64(height)))
	}

	return resize.Resize(newWidth, newHeight, img, resize.Lanczos3)
}
