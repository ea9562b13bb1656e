package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrMissingAPIKey        = errors.New("API key is not configured")
	ErrUnsupportedImageType = errors.New("unsupported capture image type")
	ErrInvalidFormat        = errors.New("unknown output format")
	ErrImageFetch           = errors.New("fetching image failed; try the area-capture flow instead")
	ErrCaptureDecode        = errors.New("decoding screen capture failed")
)
