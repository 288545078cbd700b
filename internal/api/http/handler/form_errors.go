package handler

import "errors"

var (
	errInvalidForm  = errors.New("invalid multipart form")
	errMissingImage = errors.New("face_image file is required")
)
