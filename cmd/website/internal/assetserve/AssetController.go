package assetserve

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"fisheye/pkg/assets"
	"github.com/adampresley/adamgokit/httphelpers"
)

type AssetHandlers interface {
	ServeAsset(w http.ResponseWriter, r *http.Request)
}

type AssetControllerConfig struct {
	Assets assets.AssetStore
}

/*
AssetController streams media assets out of the asset store so the
pages can reference one stable /assets/ URL space regardless of which
store backs it.
*/
type AssetController struct {
	assets assets.AssetStore
}

func NewAssetController(config AssetControllerConfig) AssetController {
	return AssetController{
		assets: config.Assets,
	}
}

/*
GET /assets/{key...}
*/
func (c AssetController) ServeAsset(w http.ResponseWriter, r *http.Request) {
	var (
		err         error
		body        io.ReadCloser
		contentType string
		size        int64
	)

	key := httphelpers.GetFromRequest[string](r, "key")

	if body, contentType, size, err = c.assets.Get(key); err != nil {
		if errors.Is(err, assets.ErrAssetNotFound) {
			httphelpers.WriteText(w, http.StatusNotFound, "asset not found")
			return
		}

		slog.Error("error reading asset", "error", err, "key", key)
		httphelpers.TextInternalServerError(w, "Failed to read asset")
		return
	}

	defer body.Close()

	w.Header().Set("Content-Type", contentType)

	if size > 0 {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", size))
	}

	if _, err = io.Copy(w, body); err != nil {
		slog.Error("error streaming asset", "error", err, "key", key)
	}
}
