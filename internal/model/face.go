package model

import "context"

// FaceExtractor turns a face image into a fixed-length encoding vector.
// Implementations return ErrNoFaceDetected when the image contains no face;
// images with several faces yield the first detected one.
type FaceExtractor interface {
	Extract(ctx context.Context, image []byte) ([]float64, error)
}

// FaceMatcher decides whether two encodings belong to the same face.
type FaceMatcher interface {
	Matches(a, b []float64) bool
}
