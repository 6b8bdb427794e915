package mediaapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"fisheye/pkg/models"
	"fisheye/pkg/services"
)

type MediaApiHandlers interface {
	GetMedia(w http.ResponseWriter, r *http.Request)
	UpdateLikes(w http.ResponseWriter, r *http.Request)
}

type MediaApiControllerConfig struct {
	LikeService  services.LikeServicer
	MediaService services.MediaServicer
}

type MediaApiController struct {
	likeService  services.LikeServicer
	mediaService services.MediaServicer
}

type updateLikesRequest struct {
	MediaID   *int `json:"mediaId"`
	LikeCount *int `json:"likeCount"`
}

type updateLikesResponse struct {
	Success   bool   `json:"success"`
	MediaID   int    `json:"mediaId,omitempty"`
	LikeCount int    `json:"likeCount,omitempty"`
	Error     string `json:"error,omitempty"`
}

func NewMediaApiController(config MediaApiControllerConfig) MediaApiController {
	return MediaApiController{
		likeService:  config.LikeService,
		mediaService: config.MediaService,
	}
}

/*
GET /api/media
*/
func (c MediaApiController) GetMedia(w http.ResponseWriter, r *http.Request) {
	doc := c.likeService.OverlayDocument(c.mediaService.Document())

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(doc); err != nil {
		slog.Error("error encoding media document", "error", err)
	}
}

/*
POST /api/update-likes
*/
func (c MediaApiController) UpdateLikes(w http.ResponseWriter, r *http.Request) {
	var (
		err     error
		request updateLikesRequest
	)

	if err = json.NewDecoder(r.Body).Decode(&request); err != nil {
		c.writeResponse(w, http.StatusBadRequest, updateLikesResponse{Error: "invalid request body"})
		return
	}

	if request.MediaID == nil || request.LikeCount == nil || *request.MediaID <= 0 || *request.LikeCount < 0 {
		c.writeResponse(w, http.StatusBadRequest, updateLikesResponse{Error: "mediaId and likeCount are required and must be non-negative"})
		return
	}

	if err = c.likeService.UpdateLikes(*request.MediaID, *request.LikeCount); err != nil {
		if errors.Is(err, models.ErrMediaNotFound) {
			c.writeResponse(w, http.StatusNotFound, updateLikesResponse{Error: "media not found"})
			return
		}

		if errors.Is(err, models.ErrInvalidMedia) || errors.Is(err, models.ErrInvalidLikeCount) {
			c.writeResponse(w, http.StatusBadRequest, updateLikesResponse{Error: "invalid like update"})
			return
		}

		slog.Error("error persisting like count", "error", err, "mediaID", *request.MediaID)
		c.writeResponse(w, http.StatusInternalServerError, updateLikesResponse{Error: "failed to persist like count"})
		return
	}

	c.writeResponse(w, http.StatusOK, updateLikesResponse{
		Success:   true,
		MediaID:   *request.MediaID,
		LikeCount: *request.LikeCount,
	})
}

func (c MediaApiController) writeResponse(w http.ResponseWriter, status int, response updateLikesResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("error encoding like update response", "error", err)
	}
}
