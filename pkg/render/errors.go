package render

import "errors"

var (
	// ErrInvalidMesh is returned when a mesh references a vertex that does not
	// exist or its attribute arrays disagree in length.
	ErrInvalidMesh = errors.New("invalid mesh")

	// ErrBufferSize is returned when a pixel slice is too small for the
	// requested dimensions.
	ErrBufferSize = errors.New("pixel buffer size mismatch")

	// ErrDegenerateCamera is returned when a camera basis cannot be built.
	ErrDegenerateCamera = errors.New("degenerate camera")

	// ErrInvalidPerspective is returned for unusable projection parameters.
	ErrInvalidPerspective = errors.New("invalid perspective")
)
