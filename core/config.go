package core

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values for a deck generation run.
type Config struct {
	// API Keys
	OpenAIAPIKey string

	// LLM API Configuration
	BaseLLMURL  string // Default API endpoint for all generator operations
	TextLLMURL  string // Optional override for text generation
	ImageLLMURL string // Optional override for image generation

	// Model Selection
	TextModel  string // Chat model for outline and page descriptions
	ImageModel string // Image model for page rendering

	// Pipeline Inputs
	RefImagePath string // Style-reference image shared by every rendered page
	OutputRoot   string // Parent directory for per-run output directories
	AspectRatio  string // Target page aspect ratio handed to the packager

	// Fan-out Configuration
	DescribeWorkers int // Bounded pool size for the description stage
	RenderWorkers   int // Bounded pool size for the image stage

	// Token Limits
	OutlineTokens     int64
	DescriptionTokens int64

	// Processing Configuration
	AITimeout     time.Duration
	RenderTimeout time.Duration

	// Persistence
	DatabasePath string // Sqlite run-history database ("" disables persistence)
	PromptsPath  string // Optional YAML file overriding prompt templates

	AllowSelfSignedCerts bool
}

// Helper function to get environment variable with default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Helper function to parse integer environment variable with default value
func parseIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Helper function to parse int64 environment variable with default value
func parseInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// LoadConfig loads configuration from environment variables with sensible
// defaults. Only the generator API key and the style-reference image are
// required; everything else has a working default.
func LoadConfig() (*Config, error) {
	openAIKey := os.Getenv("OPENAI_API_KEY")
	if openAIKey == "" {
		openAIKey = os.Getenv("OPENAI_KEY") // Legacy support
	}

	// LLM endpoints. Empty means the SDK default endpoint.
	baseLLMURL := os.Getenv("BASE_LLM_URL")
	textLLMURL := os.Getenv("TEXT_LLM_URL")
	imageLLMURL := os.Getenv("IMAGE_LLM_URL")

	textModel := getEnvOrDefault("TEXT_MODEL", "gpt-4o-mini")
	imageModel := getEnvOrDefault("IMAGE_MODEL", "gpt-image-1")

	refImagePath := os.Getenv("REF_IMAGE")
	outputRoot := getEnvOrDefault("OUTPUT_ROOT", "./output")
	aspectRatio := getEnvOrDefault("ASPECT_RATIO", "16:9")

	// Pool sizes: 5 describe / 8 render mirrors the stages' relative cost.
	describeWorkers := parseIntEnv("DESCRIBE_WORKERS", 5)
	renderWorkers := parseIntEnv("RENDER_WORKERS", 8)
	if describeWorkers < 1 || describeWorkers > 32 {
		return nil, fmt.Errorf("DESCRIBE_WORKERS must be between 1 and 32, got %d", describeWorkers)
	}
	if renderWorkers < 1 || renderWorkers > 32 {
		return nil, fmt.Errorf("RENDER_WORKERS must be between 1 and 32, got %d", renderWorkers)
	}

	outlineTokens := parseInt64Env("OUTLINE_TOKENS", 2000)
	descriptionTokens := parseInt64Env("DESCRIPTION_TOKENS", 800)

	// 60s covers text generation; image generation is far slower.
	aiTimeout := time.Duration(parseIntEnv("AI_TIMEOUT", 60)) * time.Second
	renderTimeout := time.Duration(parseIntEnv("RENDER_TIMEOUT", 300)) * time.Second

	databasePath := getEnvOrDefault("DATABASE_PATH", "./deckgen.db")
	promptsPath := os.Getenv("PROMPTS_FILE")
	allowSelfSignedCerts := getEnvOrDefault("ALLOW_SELF_SIGNED_CERTS", "false") == "true"

	var missingVars []string
	if openAIKey == "" {
		missingVars = append(missingVars, "OPENAI_API_KEY")
	}
	if refImagePath == "" {
		missingVars = append(missingVars, "REF_IMAGE")
	}
	if len(missingVars) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %v. See .env.example for configuration template", missingVars)
	}

	return &Config{
		OpenAIAPIKey: openAIKey,

		BaseLLMURL:  baseLLMURL,
		TextLLMURL:  textLLMURL,
		ImageLLMURL: imageLLMURL,

		TextModel:  textModel,
		ImageModel: imageModel,

		RefImagePath: refImagePath,
		OutputRoot:   outputRoot,
		AspectRatio:  aspectRatio,

		DescribeWorkers: describeWorkers,
		RenderWorkers:   renderWorkers,

		OutlineTokens:     outlineTokens,
		DescriptionTokens: descriptionTokens,

		AITimeout:     aiTimeout,
		RenderTimeout: renderTimeout,

		DatabasePath: databasePath,
		PromptsPath:  promptsPath,

		AllowSelfSignedCerts: allowSelfSignedCerts,
	}, nil
}

// GetHTTPClient returns an HTTP client configured with TLS settings based on
// AllowSelfSignedCerts. All generator API traffic should go through clients
// built here so the TLS configuration is respected.
func GetHTTPClient(cfg *Config, timeout time.Duration) *http.Client {
	client := &http.Client{
		Timeout: timeout,
	}

	if cfg.AllowSelfSignedCerts {
		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return client
}

// HasDatabase returns true if run-history persistence is enabled.
func (c *Config) HasDatabase() bool {
	return c.DatabasePath != ""
}
