package photographer

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"strings"

	"fisheye/cmd/website/internal/viewmodels"
	"fisheye/pkg/assets"
	"fisheye/pkg/gallery"
	"fisheye/pkg/models"
	"fisheye/pkg/services"
	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/rendering"
)

type PhotographerHandlers interface {
	PhotographerPage(w http.ResponseWriter, r *http.Request)
	OpenLightbox(w http.ResponseWriter, r *http.Request)
	NextMedia(w http.ResponseWriter, r *http.Request)
	PreviousMedia(w http.ResponseWriter, r *http.Request)
	CloseLightbox(w http.ResponseWriter, r *http.Request)
	SortGallery(w http.ResponseWriter, r *http.Request)
	LikeMedia(w http.ResponseWriter, r *http.Request)
	OpenContactModal(w http.ResponseWriter, r *http.Request)
	CloseContactModal(w http.ResponseWriter, r *http.Request)
	SubmitContact(w http.ResponseWriter, r *http.Request)
	CloseConfirmation(w http.ResponseWriter, r *http.Request)
	KeyPress(w http.ResponseWriter, r *http.Request)
}

type PhotographerControllerConfig struct {
	Assets         assets.AssetStore
	ContactService services.ContactServicer
	LikeService    services.LikeServicer
	MediaService   services.MediaServicer
	Renderer       rendering.TemplateRenderer
	Sessions       *gallery.SessionManager
}

type PhotographerController struct {
	assets         assets.AssetStore
	contactService services.ContactServicer
	likeService    services.LikeServicer
	mediaService   services.MediaServicer
	renderer       rendering.TemplateRenderer
	sessions       *gallery.SessionManager
}

func NewPhotographerController(config PhotographerControllerConfig) PhotographerController {
	return PhotographerController{
		assets:         config.Assets,
		contactService: config.ContactService,
		likeService:    config.LikeService,
		mediaService:   config.MediaService,
		renderer:       config.Renderer,
		sessions:       config.Sessions,
	}
}

/*
GET /photographer/{id}
*/
func (c PhotographerController) PhotographerPage(w http.ResponseWriter, r *http.Request) {
	var (
		err          error
		photographer *models.Photographer
		session      *gallery.Session
	)

	id := httphelpers.GetFromRequest[int](r, "id")

	if photographer, err = c.mediaService.Photographer(id); err != nil {
		slog.Error("photographer page requested for unknown photographer", "error", err, "photographerID", id)
		httphelpers.WriteText(w, http.StatusNotFound, "photographer not found")
		return
	}

	viewData := viewmodels.PhotographerPage{
		BaseViewModel: viewmodels.BaseViewModel{
			IsHtmx: httphelpers.IsHtmx(r),
			JavascriptIncludes: []rendering.JavascriptInclude{
				{Type: "module", Src: "/static/js/pages/photographer.js"},
			},
		},
		Photographer: viewmodels.PhotographerCard{
			ID:      photographer.ID,
			Name:    photographer.Name,
			City:    photographer.City,
			Country: photographer.Country,
			Tagline: photographer.Tagline,
			Price:   photographer.Price,
		},
		Media: []viewmodels.GalleryItem{},
	}

	portraitURL, err := c.assets.URL(path.Join("photographers", "thumbnails", photographer.Portrait))

	if err == nil {
		viewData.Photographer.PortraitURL = portraitURL
	} else {
		slog.Error("error building portrait URL", "error", err, "photographerID", id)
	}

	if session, err = c.gallerySession(r, id); err != nil {
		slog.Error("error creating gallery session", "error", err, "photographerID", id)
		viewData.IsError = true
		viewData.Message = "An unexpected error occurred. Please try again."

		c.renderer.Render("pages/photographer", viewData, w)
		return
	}

	viewData.SortBy = session.SortBy()
	viewData.Media = c.buildGalleryItems(session.Gallery(), session.FolderName())

	/*
	 * The statistics chain propagates errors to this one catch instead
	 * of degrading silently along the way.
	 */
	stats, err := c.mediaService.Stats(id)

	if err != nil {
		slog.Error("error gathering photographer stats", "error", err, "photographerID", id)
		viewData.IsError = true
		viewData.Message = "An unexpected error occurred. Please try again."
	} else {
		viewData.TotalLikes = stats.TotalLikes
		viewData.Price = stats.Price
	}

	viewData.Overlays = c.buildOverlays(session, photographer, nil, nil)
	c.renderer.Render("pages/photographer", viewData, w)
}

/*
POST /photographer/{id}/lightbox/open
*/
func (c PhotographerController) OpenLightbox(w http.ResponseWriter, r *http.Request) {
	var (
		err error
	)

	id := httphelpers.GetFromRequest[int](r, "id")
	mediaID := httphelpers.GetFromRequest[int](r, "mediaId")

	photographer, session, ok := c.photographerAndSession(w, r, id)

	if !ok {
		return
	}

	if err = session.OpenMedia(mediaID); err != nil {
		// Already logged. The fragment below renders unchanged state.
		slog.Debug("lightbox open rejected", "error", err, "mediaID", mediaID)
	}

	c.renderOverlays(w, r, session, photographer, nil, nil)
}

/*
POST /photographer/{id}/lightbox/next
*/
func (c PhotographerController) NextMedia(w http.ResponseWriter, r *http.Request) {
	id := httphelpers.GetFromRequest[int](r, "id")
	photographer, session, ok := c.photographerAndSession(w, r, id)

	if !ok {
		return
	}

	session.Lightbox.Next()
	c.renderOverlays(w, r, session, photographer, nil, nil)
}

/*
POST /photographer/{id}/lightbox/previous
*/
func (c PhotographerController) PreviousMedia(w http.ResponseWriter, r *http.Request) {
	id := httphelpers.GetFromRequest[int](r, "id")
	photographer, session, ok := c.photographerAndSession(w, r, id)

	if !ok {
		return
	}

	session.Lightbox.Previous()
	c.renderOverlays(w, r, session, photographer, nil, nil)
}

/*
POST /photographer/{id}/lightbox/close
*/
func (c PhotographerController) CloseLightbox(w http.ResponseWriter, r *http.Request) {
	id := httphelpers.GetFromRequest[int](r, "id")
	photographer, session, ok := c.photographerAndSession(w, r, id)

	if !ok {
		return
	}

	session.Lightbox.Close()

	// Closing empties the lightbox's media store, so the next open
	// re-initializes it from the session's sorted gallery.
	c.renderOverlays(w, r, session, photographer, nil, nil)
}

/*
POST /photographer/{id}/sort

Responds with the new logical order and the move plan that repositions
the already-rendered thumbnails. Nothing is re-rendered server side;
the page script applies the moves to the existing DOM nodes.
*/
func (c PhotographerController) SortGallery(w http.ResponseWriter, r *http.Request) {
	var (
		err    error
		sorted []models.Media
	)

	id := httphelpers.GetFromRequest[int](r, "id")
	sortBy := httphelpers.GetFromRequest[string](r, "sortBy")
	orderRaw := httphelpers.GetFromRequest[string](r, "order")

	_, session, ok := c.photographerAndSession(w, r, id)

	if !ok {
		return
	}

	current := session.Gallery()
	sorted, err = gallery.Sort(sortBy, current)

	if err != nil {
		/*
		 * A shape violation or unknown key keeps the original order so
		 * the gallery never goes blank. Respond with no moves.
		 */
		if !errors.Is(err, gallery.ErrTypeMismatch) && !errors.Is(err, gallery.ErrInvalidInput) {
			slog.Error("unexpected sort failure", "error", err, "sortBy", sortBy)
		}

		c.writeSortResponse(w, viewmodels.SortResponse{
			SortBy: session.SortBy(),
			Order:  mediaIDs(current),
			Moves:  []gallery.Move{},
		})
		return
	}

	session.SetGallery(sorted, session.FolderName(), sortBy)

	rendered := parseRenderedOrder(orderRaw)
	moves := gallery.Reconcile(rendered, sorted)

	c.writeSortResponse(w, viewmodels.SortResponse{
		SortBy: sortBy,
		Order:  mediaIDs(sorted),
		Moves:  moves,
	})
}

/*
POST /photographer/{id}/media/{mediaid}/like
*/
func (c PhotographerController) LikeMedia(w http.ResponseWriter, r *http.Request) {
	var (
		err error
	)

	id := httphelpers.GetFromRequest[int](r, "id")
	mediaID := httphelpers.GetFromRequest[int](r, "mediaid")

	_, session, ok := c.photographerAndSession(w, r, id)

	if !ok {
		return
	}

	likeCount := -1

	for _, m := range session.Gallery() {
		if m.ID == mediaID {
			likeCount = m.Likes + 1
			break
		}
	}

	if likeCount < 0 {
		httphelpers.WriteText(w, http.StatusNotFound, "media not found")
		return
	}

	if err = c.likeService.UpdateLikes(mediaID, likeCount); err != nil {
		if errors.Is(err, models.ErrMediaNotFound) {
			httphelpers.WriteText(w, http.StatusNotFound, "media not found")
			return
		}

		slog.Error("error updating like count", "error", err, "mediaID", mediaID)
		httphelpers.TextInternalServerError(w, "Error updating like count")
		return
	}

	session.UpdateLikes(mediaID, likeCount)

	markup := fmt.Sprintf(
		`<button class="like-button" hx-post="/photographer/%d/media/%d/like" hx-swap="outerHTML" aria-label="likes">%d <i class="icon icon-heart"></i></button>`,
		id, mediaID, likeCount,
	)

	httphelpers.WriteHtml(w, http.StatusOK, markup)
}

/*
POST /photographer/{id}/modal/contact/open
*/
func (c PhotographerController) OpenContactModal(w http.ResponseWriter, r *http.Request) {
	id := httphelpers.GetFromRequest[int](r, "id")
	photographer, session, ok := c.photographerAndSession(w, r, id)

	if !ok {
		return
	}

	session.Modals.LaunchContact()
	c.renderOverlays(w, r, session, photographer, nil, nil)
}

/*
POST /photographer/{id}/modal/contact/close
*/
func (c PhotographerController) CloseContactModal(w http.ResponseWriter, r *http.Request) {
	id := httphelpers.GetFromRequest[int](r, "id")
	photographer, session, ok := c.photographerAndSession(w, r, id)

	if !ok {
		return
	}

	session.Modals.CloseContact()
	c.renderOverlays(w, r, session, photographer, nil, nil)
}

/*
POST /photographer/{id}/contact
*/
func (c PhotographerController) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var (
		err error
	)

	id := httphelpers.GetFromRequest[int](r, "id")
	photographer, session, ok := c.photographerAndSession(w, r, id)

	if !ok {
		return
	}

	submission := services.ContactSubmission{
		FirstName: httphelpers.GetFromRequest[string](r, "firstName"),
		LastName:  httphelpers.GetFromRequest[string](r, "lastName"),
		Email:     httphelpers.GetFromRequest[string](r, "email"),
		Message:   httphelpers.GetFromRequest[string](r, "message"),
	}

	values := map[string]string{
		"firstName": submission.FirstName,
		"lastName":  submission.LastName,
		"email":     submission.Email,
		"message":   submission.Message,
	}

	if problems := c.contactService.Validate(submission); len(problems) > 0 {
		session.Modals.LaunchContact()
		c.renderOverlays(w, r, session, photographer, values, problems)
		return
	}

	if err = c.contactService.Submit(*photographer, submission); err != nil {
		slog.Error("error submitting contact form", "error", err, "photographerID", id)
		session.Modals.LaunchContact()
		c.renderOverlays(w, r, session, photographer, values, map[string]string{
			"form": "Your message could not be sent. Please try again.",
		})
		return
	}

	session.Modals.CloseContact()
	session.Modals.OpenConfirmation()
	c.renderOverlays(w, r, session, photographer, nil, nil)
}

/*
POST /photographer/{id}/modal/confirmation/close
*/
func (c PhotographerController) CloseConfirmation(w http.ResponseWriter, r *http.Request) {
	id := httphelpers.GetFromRequest[int](r, "id")
	photographer, session, ok := c.photographerAndSession(w, r, id)

	if !ok {
		return
	}

	session.Modals.CloseConfirmation()
	c.renderOverlays(w, r, session, photographer, nil, nil)
}

/*
POST /photographer/{id}/key

The page script forwards Escape and the arrow keys here; precedence
lives in the session so the browser doesn't have to know which surface
is open.
*/
func (c PhotographerController) KeyPress(w http.ResponseWriter, r *http.Request) {
	id := httphelpers.GetFromRequest[int](r, "id")
	key := httphelpers.GetFromRequest[string](r, "key")

	photographer, session, ok := c.photographerAndSession(w, r, id)

	if !ok {
		return
	}

	session.HandleKey(key)
	c.renderOverlays(w, r, session, photographer, nil, nil)
}

func (c PhotographerController) photographerAndSession(w http.ResponseWriter, r *http.Request, id int) (*models.Photographer, *gallery.Session, bool) {
	var (
		err          error
		photographer *models.Photographer
		session      *gallery.Session
	)

	if photographer, err = c.mediaService.Photographer(id); err != nil {
		slog.Error("request for unknown photographer", "error", err, "photographerID", id)
		httphelpers.WriteText(w, http.StatusNotFound, "photographer not found")
		return nil, nil, false
	}

	if session, err = c.gallerySession(r, id); err != nil {
		slog.Error("error creating gallery session", "error", err, "photographerID", id)
		httphelpers.TextInternalServerError(w, "An unexpected error occurred")
		return nil, nil, false
	}

	return photographer, session, true
}

func (c PhotographerController) gallerySession(r *http.Request, photographerID int) (*gallery.Session, error) {
	var (
		err     error
		session *gallery.Session
	)

	if session, err = c.sessions.GetOrCreate(viewmodels.GetSessionID(r), photographerID); err != nil {
		return nil, err
	}

	session.Touch()

	if len(session.Gallery()) == 0 {
		c.loadGallery(session, photographerID)
	}

	return session, nil
}

// loadGallery seeds a fresh session with this photographer's media,
// sorted by popularity, the page default.
func (c PhotographerController) loadGallery(session *gallery.Session, photographerID int) {
	var (
		err          error
		photographer *models.Photographer
		sorted       []models.Media
	)

	if photographer, err = c.mediaService.Photographer(photographerID); err != nil {
		slog.Error("error loading gallery for session", "error", err, "photographerID", photographerID)
		return
	}

	media := c.likeService.Overlay(c.mediaService.MediaForPhotographer(photographerID))

	if sorted, err = gallery.SortByLikes(media); err != nil {
		slog.Error("error applying default sort, using document order", "error", err, "photographerID", photographerID)
		sorted = media
	}

	session.SetGallery(sorted, photographer.FolderName, gallery.SortKeyPopularity)
}

func (c PhotographerController) buildGalleryItems(media []models.Media, folderName string) []viewmodels.GalleryItem {
	var (
		err error
	)

	result := []viewmodels.GalleryItem{}

	for _, m := range media {
		item := viewmodels.GalleryItem{
			MediaID: m.ID,
			Title:   m.DisplayTitle(),
			Kind:    m.Kind(),
			Likes:   m.Likes,
			Date:    m.Date,
		}

		if item.AssetURL, err = c.assets.URL(m.AssetPath(folderName)); err != nil {
			slog.Error("error building media URL", "error", err, "mediaID", m.ID)
		}

		if m.Kind() == models.MediaKindImage {
			thumbnailURL, thumbErr := c.assets.URL(path.Join(folderName, "thumbnails", m.Source()))

			if thumbErr == nil {
				item.ThumbnailURL = thumbnailURL
			} else {
				item.ThumbnailURL = item.AssetURL
			}
		} else {
			// Video thumbnails are poster frames the browser extracts.
			item.ThumbnailURL = item.AssetURL
		}

		result = append(result, item)
	}

	return result
}

func (c PhotographerController) buildOverlays(session *gallery.Session, photographer *models.Photographer, values, problems map[string]string) viewmodels.Overlays {
	modalState := session.Modals.Snapshot()

	overlays := viewmodels.Overlays{
		PhotographerID:   photographer.ID,
		PhotographerName: photographer.Name,
		ScrollLocked:     modalState.ScrollLocked,
		ContactModal: viewmodels.ContactModal{
			Open:      modalState.ContactOpen,
			Values:    values,
			Errors:    problems,
			ResetForm: modalState.ResetContactForm,
		},
		Confirmation: viewmodels.ConfirmationModal{
			Open:           modalState.ConfirmationOpen,
			FocusRequested: modalState.FocusConfirmation,
		},
	}

	if surface, ok := session.Lightbox.Surface().(*LightboxSurface); ok {
		overlays.Lightbox = surface.View(session.Lightbox.Index(), session.Lightbox.Len())
	}

	return overlays
}

func (c PhotographerController) renderOverlays(w http.ResponseWriter, r *http.Request, session *gallery.Session, photographer *models.Photographer, values, problems map[string]string) {
	viewData := c.buildOverlays(session, photographer, values, problems)
	viewData.IsHtmx = httphelpers.IsHtmx(r)

	c.renderer.Render("pages/fragments/overlays", viewData, w)
}

func (c PhotographerController) writeSortResponse(w http.ResponseWriter, response viewmodels.SortResponse) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("error encoding sort response", "error", err)
	}
}

func parseRenderedOrder(raw string) []gallery.RenderedNode {
	result := []gallery.RenderedNode{}

	if strings.TrimSpace(raw) == "" {
		return result
	}

	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))

		if err != nil {
			slog.Warn("ignoring malformed rendered-order entry", "entry", part)
			continue
		}

		result = append(result, gallery.RenderedNode{
			MediaID:  id,
			Position: len(result),
		})
	}

	return result
}

func mediaIDs(media []models.Media) []int {
	result := make([]int, len(media))

	for index, m := range media {
		result[index] = m.ID
	}

	return result
}
