package viewmodels

import (
	"fisheye/pkg/gallery"
)

type PhotographerPage struct {
	BaseViewModel

	Photographer PhotographerCard
	Media        []GalleryItem
	SortBy       string
	TotalLikes   int
	Price        int
	Overlays     Overlays
}

type GalleryItem struct {
	MediaID      int
	Title        string
	Kind         string
	AssetURL     string
	ThumbnailURL string
	Likes        int
	Date         string
}

// Overlays is the shared fragment holding the lightbox and both
// modals; every lightbox/modal/key route re-renders it.
type Overlays struct {
	BaseViewModel

	PhotographerID   int
	PhotographerName string
	ScrollLocked     bool
	Lightbox         LightboxView
	ContactModal     ContactModal
	Confirmation     ConfirmationModal
}

type LightboxView struct {
	Open      bool
	Media     *LightboxMedia
	Direction string
	Index     int
	// Position is the 1-based counter shown under the media.
	Position int
	Total    int
}

type LightboxMedia struct {
	MediaID  int
	Title    string
	Kind     string
	AssetURL string
}

type ContactModal struct {
	Open      bool
	Values    map[string]string
	Errors    map[string]string
	ResetForm bool
}

type ConfirmationModal struct {
	Open           bool
	FocusRequested bool
}

type SortResponse struct {
	SortBy string         `json:"sortBy"`
	Order  []int          `json:"order"`
	Moves  []gallery.Move `json:"moves"`
}
