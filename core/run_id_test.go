package core

import (
	"regexp"
	"testing"
)

func TestNewRunID_Format(t *testing.T) {
	id := NewRunID()

	pattern := regexp.MustCompile(`^\d{8}_\d{6}_[0-9a-f]{8}$`)
	if !pattern.MatchString(id) {
		t.Errorf("NewRunID() = %q, want timestamp_suffix format", id)
	}
}

func TestNewRunID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewRunID()
		if seen[id] {
			t.Fatalf("duplicate run ID generated: %s", id)
		}
		seen[id] = true
	}
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		maxLen int
		want   string
	}{
		{"short text unchanged", "hello", 10, "hello"},
		{"exact length unchanged", "hello", 5, "hello"},
		{"long text truncated", "hello world", 5, "hello..."},
		{"empty text", "", 5, ""},
		{"multibyte safe", "大纲生成完成", 3, "大纲生..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateText(tt.text, tt.maxLen); got != tt.want {
				t.Errorf("TruncateText(%q, %d) = %q, want %q", tt.text, tt.maxLen, got, tt.want)
			}
		})
	}
}
