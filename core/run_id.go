package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewRunID generates a run-scoped identifier used to namespace output paths,
// e.g. "20260831_142233_1a2b3c4d". The timestamp prefix keeps run directories
// chronologically sortable; the random suffix avoids collisions when runs
// start within the same second.
func NewRunID() string {
	timestamp := time.Now().Format("20060102_150405")
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s_%s", timestamp, suffix)
}

// TruncateText shortens text to at most maxLen runes for log and error
// previews, appending an ellipsis when anything was cut.
func TruncateText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}
