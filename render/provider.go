// Package render provides page image rendering.
//
// provider.go defines the Provider contract: one prompt plus the shared
// style-reference image in, raw image bytes out. The Stage depends on this
// interface so tests can substitute deterministic fakes.
package render

import (
	"context"
	"errors"
)

// Provider generates one page image from a prompt and a style-reference
// image. Implementations must be safe for concurrent use; the Stage calls
// GenerateImage from multiple workers.
type Provider interface {
	GenerateImage(ctx context.Context, prompt, refImagePath string) ([]byte, error)
}

var (
	// ErrRefImageNotFound indicates the style-reference image could not be
	// opened. Every page shares the reference, so this fails each page the
	// same way.
	ErrRefImageNotFound = errors.New("render: reference image not found")

	// ErrEmptyImageResponse indicates the API call succeeded but returned no
	// image payload.
	ErrEmptyImageResponse = errors.New("render: empty image response")

	// ErrMalformedImage indicates the returned bytes do not decode as an
	// image. Returned before anything is written to disk.
	ErrMalformedImage = errors.New("render: malformed image payload")
)
