package domain

import "errors"

var (
	ErrImageDecode      = errors.New("image decode failed")
	ErrOCR              = errors.New("tesseract error")
	ErrUpstream         = errors.New("completion API error")
	ErrMalformedHistory = errors.New("malformed conversation history")
	ErrMissingInput     = errors.New("missing required input")
	ErrEmptyCompletion  = errors.New("empty completion response")
	ErrUnknownProvider  = errors.New("unknown completion provider")
)
