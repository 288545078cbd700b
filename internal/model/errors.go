package model

import "errors"

var (
	// ErrNotFound is returned by stores when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when registering an email that is
	// already taken.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	// The two cases are deliberately indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNoFaceDetected is returned when the extractor finds no face in
	// the submitted image.
	ErrNoFaceDetected = errors.New("no face detected")

	// ErrNoFaceMatch is returned when no stored encoding is within the
	// match threshold of the submitted face.
	ErrNoFaceMatch = errors.New("face not recognized")

	// ErrNoCredentials is returned when a registration would produce a
	// record with neither a password nor a face encoding.
	ErrNoCredentials = errors.New("no usable credentials")

	// ErrMissingSecret aborts startup when the token signing secret is
	// not configured.
	ErrMissingSecret = errors.New("token signing secret is not configured")
)
