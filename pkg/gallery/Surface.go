package gallery

import (
	"fisheye/pkg/models"
)

type Direction int

const (
	// DirectionNone renders with no exit animation (first open).
	DirectionNone Direction = iota

	// DirectionForward enters from the right; the outgoing media exits
	// left, continuing the direction of travel.
	DirectionForward

	// DirectionBackward enters from the left; the outgoing media exits
	// right.
	DirectionBackward
)

func (d Direction) String() string {
	switch d {
	case DirectionForward:
		return "forward"

	case DirectionBackward:
		return "backward"

	default:
		return "none"
	}
}

/*
Surface is the rendering side of the lightbox. The state machine drives
it and never touches markup itself, so tests can substitute a fake and
the web layer can render htmx fragments.
*/
type Surface interface {
	// Replace swaps the displayed media for a new one, animating in the
	// given direction. The returned channel is closed once the swap has
	// settled; until then the lightbox stays locked against further
	// navigation.
	Replace(media models.Media, folderName string, dir Direction) (<-chan struct{}, error)

	// Reveal makes the lightbox container visible and screen-reader
	// reachable.
	Reveal() error

	// Conceal hides the container and marks it screen-reader hidden.
	Conceal() error

	// Clear removes the displayed media and empties the caption,
	// releasing any attached media resources.
	Clear() error
}
