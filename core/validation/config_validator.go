package validation

import (
	"os"
	"strings"
)

// ValidationResult represents the result of a configuration validation check.
type ValidationResult struct {
	Valid   bool
	Message string
	Error   error
}

// ConfigValidator checks the environment a deck run depends on: the env
// file, the API key, the style-reference image, and the output root.
type ConfigValidator struct {
	envPath string // Path to .env file (default: ".env")
}

// NewConfigValidator creates a new ConfigValidator with default settings.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{
		envPath: ".env",
	}
}

// WithEnvPath sets a custom path for the .env file.
func (v *ConfigValidator) WithEnvPath(path string) *ConfigValidator {
	v.envPath = path
	return v
}

// CheckEnvFile validates that the .env file exists.
func (v *ConfigValidator) CheckEnvFile() ValidationResult {
	if err := CheckFileExists(v.envPath); err != nil {
		return ValidationResult{
			Valid:   false,
			Message: "Configuration file not found. Copy .env.example to .env and configure your API credentials.",
			Error:   err,
		}
	}
	return ValidationResult{
		Valid:   true,
		Message: "Environment file found",
	}
}

// CheckAPIKey validates that an API key is configured. OPENAI_API_KEY is the
// canonical variable; OPENAI_KEY is accepted for older configurations.
func (v *ConfigValidator) CheckAPIKey() ValidationResult {
	key := envOrDefault("OPENAI_API_KEY", "")
	if key == "" {
		key = envOrDefault("OPENAI_KEY", "")
	}

	if key == "" {
		return ValidationResult{
			Valid:   false,
			Message: "OPENAI_API_KEY required. Set your API key in .env",
			Error:   &FileExistsError{Message: "OPENAI_API_KEY is not set"},
		}
	}
	return ValidationResult{
		Valid:   true,
		Message: "API key configured",
	}
}

// CheckRefImage validates that REF_IMAGE points at a decodable image.
func (v *ConfigValidator) CheckRefImage() ValidationResult {
	path := envOrDefault("REF_IMAGE", "")
	if path == "" {
		return ValidationResult{
			Valid:   false,
			Message: "REF_IMAGE required. Point it at the style-reference image for rendered pages",
			Error:   &FileExistsError{Message: "REF_IMAGE is not set"},
		}
	}

	if err := CheckImageFile(path); err != nil {
		return ValidationResult{
			Valid:   false,
			Message: "Reference image unusable: " + path,
			Error:   err,
		}
	}
	return ValidationResult{
		Valid:   true,
		Message: "Reference image valid",
	}
}

// CheckOutputRoot validates that the run output root accepts writes.
func (v *ConfigValidator) CheckOutputRoot() ValidationResult {
	root := envOrDefault("OUTPUT_ROOT", "./output")

	if err := CheckDirWritable(root); err != nil {
		return ValidationResult{
			Valid:   false,
			Message: "Output root not writable: " + root,
			Error:   err,
		}
	}
	return ValidationResult{
		Valid:   true,
		Message: "Output root writable",
	}
}

// envOrDefault returns the trimmed environment value or the fallback.
func envOrDefault(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
