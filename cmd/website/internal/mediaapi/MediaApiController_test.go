package mediaapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fisheye/pkg/models"
	"fisheye/pkg/services"
)

type stubMediaService struct {
	doc models.MediaDocument
}

func (s stubMediaService) Document() models.MediaDocument          { return s.doc }
func (s stubMediaService) Photographers() []models.Photographer    { return s.doc.Photographers }
func (s stubMediaService) MediaForPhotographer(id int) []models.Media {
	return s.doc.MediaFor(id)
}

func (s stubMediaService) Photographer(id int) (*models.Photographer, error) {
	return s.doc.FindPhotographer(id)
}

func (s stubMediaService) Stats(id int) (models.PhotographerStats, error) {
	return models.PhotographerStats{}, nil
}

func (s stubMediaService) Reload(ctx context.Context) error { return nil }

type stubLikeService struct {
	updateErr error
	updated   map[int]int
}

func (s *stubLikeService) UpdateLikes(mediaID, likeCount int) error {
	if s.updateErr != nil {
		return s.updateErr
	}

	s.updated[mediaID] = likeCount
	return nil
}

func (s *stubLikeService) Overlay(media []models.Media) []models.Media {
	return media
}

func (s *stubLikeService) OverlayDocument(doc models.MediaDocument) models.MediaDocument {
	return doc
}

func newTestController(likeService services.LikeServicer) MediaApiController {
	return NewMediaApiController(MediaApiControllerConfig{
		LikeService: likeService,
		MediaService: stubMediaService{
			doc: models.MediaDocument{
				Photographers: []models.Photographer{{ID: 82, Name: "Mimi Keel"}},
				Media:         []models.Media{{ID: 342550, PhotographerID: 82, Image: "Tuiles.jpg", Likes: 24}},
			},
		},
	})
}

func TestGetMedia(t *testing.T) {
	controller := newTestController(&stubLikeService{updated: map[int]int{}})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/media", nil)

	controller.GetMedia(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	doc := models.MediaDocument{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &doc))
	require.Len(t, doc.Media, 1)
	assert.Equal(t, 342550, doc.Media[0].ID)
}

func TestUpdateLikes(t *testing.T) {
	postLikes := func(controller MediaApiController, body string) *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/api/update-likes", strings.NewReader(body))

		controller.UpdateLikes(recorder, request)
		return recorder
	}

	t.Run("persists a valid update", func(t *testing.T) {
		likeService := &stubLikeService{updated: map[int]int{}}
		controller := newTestController(likeService)

		recorder := postLikes(controller, `{"mediaId": 342550, "likeCount": 25}`)

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, 25, likeService.updated[342550])

		response := map[string]any{}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, true, response["success"])
	})

	t.Run("rejects a body that is not JSON", func(t *testing.T) {
		controller := newTestController(&stubLikeService{updated: map[int]int{}})
		recorder := postLikes(controller, `not json`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		controller := newTestController(&stubLikeService{updated: map[int]int{}})

		assert.Equal(t, http.StatusBadRequest, postLikes(controller, `{}`).Code)
		assert.Equal(t, http.StatusBadRequest, postLikes(controller, `{"mediaId": 342550}`).Code)
		assert.Equal(t, http.StatusBadRequest, postLikes(controller, `{"likeCount": 5}`).Code)
	})

	t.Run("rejects out-of-range values", func(t *testing.T) {
		controller := newTestController(&stubLikeService{updated: map[int]int{}})

		assert.Equal(t, http.StatusBadRequest, postLikes(controller, `{"mediaId": 0, "likeCount": 5}`).Code)
		assert.Equal(t, http.StatusBadRequest, postLikes(controller, `{"mediaId": 342550, "likeCount": -1}`).Code)
	})

	t.Run("unknown media maps to 404", func(t *testing.T) {
		likeService := &stubLikeService{
			updated:   map[int]int{},
			updateErr: fmt.Errorf("media 999: %w", models.ErrMediaNotFound),
		}

		recorder := postLikes(newTestController(likeService), `{"mediaId": 999, "likeCount": 5}`)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("store failure maps to 500", func(t *testing.T) {
		likeService := &stubLikeService{
			updated:   map[int]int{},
			updateErr: fmt.Errorf("disk full"),
		}

		recorder := postLikes(newTestController(likeService), `{"mediaId": 342550, "likeCount": 5}`)
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}
