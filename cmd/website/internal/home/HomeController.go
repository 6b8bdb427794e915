package home

import (
	"log/slog"
	"net/http"
	"path"

	"fisheye/cmd/website/internal/viewmodels"
	"fisheye/pkg/assets"
	"fisheye/pkg/services"
	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/rendering"
)

type HomeHandlers interface {
	HomePage(w http.ResponseWriter, r *http.Request)
}

type HomeControllerConfig struct {
	Assets       assets.AssetStore
	MediaService services.MediaServicer
	Renderer     rendering.TemplateRenderer
}

type HomeController struct {
	assets       assets.AssetStore
	mediaService services.MediaServicer
	renderer     rendering.TemplateRenderer
}

func NewHomeController(config HomeControllerConfig) HomeController {
	return HomeController{
		assets:       config.Assets,
		mediaService: config.MediaService,
		renderer:     config.Renderer,
	}
}

/*
GET /
*/
func (c HomeController) HomePage(w http.ResponseWriter, r *http.Request) {
	pageName := "pages/home"

	viewData := viewmodels.HomePage{
		BaseViewModel: viewmodels.BaseViewModel{
			IsHtmx:             httphelpers.IsHtmx(r),
			JavascriptIncludes: []rendering.JavascriptInclude{},
		},
		Photographers: []viewmodels.PhotographerCard{},
	}

	photographers := c.mediaService.Photographers()

	if len(photographers) == 0 {
		viewData.IsWarning = true
		viewData.Message = "No photographers found."

		c.renderer.Render(pageName, viewData, w)
		return
	}

	for _, photographer := range photographers {
		portraitURL, err := c.assets.URL(path.Join("photographers", "thumbnails", photographer.Portrait))

		if err != nil {
			slog.Error("error building portrait URL", "error", err, "photographerID", photographer.ID)

			// Fall back to the full-size portrait.
			portraitURL, _ = c.assets.URL(path.Join("photographers", photographer.Portrait))
		}

		viewData.Photographers = append(viewData.Photographers, viewmodels.PhotographerCard{
			ID:          photographer.ID,
			Name:        photographer.Name,
			City:        photographer.City,
			Country:     photographer.Country,
			Tagline:     photographer.Tagline,
			Price:       photographer.Price,
			PortraitURL: portraitURL,
		})
	}

	c.renderer.Render(pageName, viewData, w)
}
