// Package render provides page image rendering.
//
// openai_provider.go implements Provider against an OpenAI-compatible image
// edit API: the shared style-reference image is uploaded with every request
// so each page inherits its palette and layout.
package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"os"

	"deckgen/core"

	"github.com/sashabaranov/go-openai"

	// Generated pages may come back as PNG, JPEG or WebP depending on the
	// backing model; register all three decoders for validation.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// OpenAIImage implements Provider using the image edit endpoint.
//
// Thread Safety: safe for concurrent use; the underlying client handles
// connection pooling.
type OpenAIImage struct {
	client *openai.Client
	model  string
	size   string
}

// NewOpenAIImage creates an image provider from the run configuration.
// ImageLLMURL overrides BaseLLMURL when set, mirroring the text client.
func NewOpenAIImage(cfg *core.Config) (*OpenAIImage, error) {
	if cfg == nil {
		return nil, fmt.Errorf("render: config cannot be nil")
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("render: API key is required for image generation")
	}

	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.ImageLLMURL != "" {
		clientConfig.BaseURL = cfg.ImageLLMURL
	} else if cfg.BaseLLMURL != "" {
		clientConfig.BaseURL = cfg.BaseLLMURL
	}
	clientConfig.HTTPClient = core.GetHTTPClient(cfg, cfg.RenderTimeout)

	return &OpenAIImage{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.ImageModel,
		size:   SizeForAspect(cfg.AspectRatio),
	}, nil
}

// GenerateImage sends one image edit request and returns the decoded-checked
// image bytes.
//
// The method:
//  1. Opens the style-reference image
//  2. Sends an edit request with the page prompt
//  3. Decodes the base64 payload
//  4. Validates the bytes decode as an image before returning them
func (p *OpenAIImage) GenerateImage(ctx context.Context, prompt, refImagePath string) ([]byte, error) {
	if prompt == "" {
		return nil, fmt.Errorf("render: prompt cannot be empty")
	}

	refImage, err := os.Open(refImagePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRefImageNotFound, refImagePath, err)
	}
	defer refImage.Close()

	response, err := p.client.CreateEditImage(ctx, openai.ImageEditRequest{
		Image:          refImage,
		Prompt:         prompt,
		Model:          p.model,
		N:              1,
		Size:           p.size,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, fmt.Errorf("render: image generation failed: %w", err)
	}

	if len(response.Data) == 0 || response.Data[0].B64JSON == "" {
		return nil, ErrEmptyImageResponse
	}

	payload, err := base64.StdEncoding.DecodeString(response.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("%w: base64 decode: %v", ErrMalformedImage, err)
	}

	if _, _, err := image.Decode(bytes.NewReader(payload)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedImage, err)
	}

	return payload, nil
}

// Model returns the configured image model name.
func (p *OpenAIImage) Model() string {
	return p.model
}

var _ Provider = (*OpenAIImage)(nil)
