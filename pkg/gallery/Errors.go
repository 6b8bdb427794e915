package gallery

import (
	"fmt"
)

var (
	// ErrInvalidInput marks bad arguments to a controller operation. The
	// operation is aborted with no state change.
	ErrInvalidInput = fmt.Errorf("invalid input")

	// ErrIndexOutOfRange marks navigation or open with an index outside
	// the current media sequence.
	ErrIndexOutOfRange = fmt.Errorf("index out of range")

	// ErrSurfaceMissing marks a lightbox constructed without a rendering
	// surface. This is a configuration error, not a runtime path.
	ErrSurfaceMissing = fmt.Errorf("lightbox surface missing")

	// ErrElementMissing marks a missing target: a media id not present
	// in the session gallery, or a modal view binding that is absent.
	// Operations degrade to logged no-ops.
	ErrElementMissing = fmt.Errorf("required element missing")

	// ErrTypeMismatch marks a sort input whose field shape fails
	// validation. The sort returns the input sequence unchanged.
	ErrTypeMismatch = fmt.Errorf("type mismatch")
)
