package core

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestOutlineParseError_Message(t *testing.T) {
	cause := errors.New("invalid character '<'")
	err := NewOutlineParseError("<html>not json</html>", cause)

	if !strings.Contains(err.Error(), "invalid character") {
		t.Errorf("Error() = %q, want cause included", err.Error())
	}
	if !strings.Contains(err.Error(), "<html>") {
		t.Errorf("Error() = %q, want reply preview included", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestNewOutlineParseError_TruncatesReply(t *testing.T) {
	long := strings.Repeat("x", 500)
	err := NewOutlineParseError(long, nil)

	if len(err.Reply) > 130 {
		t.Errorf("Reply length = %d, want truncated preview", len(err.Reply))
	}
	if !strings.HasSuffix(err.Reply, "...") {
		t.Errorf("Reply = %q, want ellipsis suffix", err.Reply)
	}
}

func TestDescriptionError_Message(t *testing.T) {
	err := &DescriptionError{Index: 3, Title: "Overview", Cause: errors.New("timeout")}

	for _, want := range []string{"page 3", "Overview", "timeout"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Error() = %q, want %q included", err.Error(), want)
		}
	}
}

func TestRenderError_Message(t *testing.T) {
	err := &RenderError{Index: 7, Cause: errors.New("empty response")}

	if !strings.Contains(err.Error(), "page 7") {
		t.Errorf("Error() = %q, want page index included", err.Error())
	}
}

func TestAsHelpers(t *testing.T) {
	outlineErr := NewOutlineParseError("{", errors.New("unexpected end"))
	descErr := &DescriptionError{Index: 1, Title: "t", Cause: errors.New("x")}
	emptyErr := &EmptyArtifactSetError{Dir: "/tmp/run"}

	tests := []struct {
		name string
		err  error
		want bool
		as   func(error) bool
	}{
		{
			name: "outline error direct",
			err:  outlineErr,
			want: true,
			as:   func(e error) bool { _, ok := AsOutlineParseError(e); return ok },
		},
		{
			name: "outline error wrapped",
			err:  fmt.Errorf("stage failed: %w", outlineErr),
			want: true,
			as:   func(e error) bool { _, ok := AsOutlineParseError(e); return ok },
		},
		{
			name: "description error wrapped",
			err:  fmt.Errorf("run aborted: %w", descErr),
			want: true,
			as:   func(e error) bool { _, ok := AsDescriptionError(e); return ok },
		},
		{
			name: "empty artifact set",
			err:  emptyErr,
			want: true,
			as:   func(e error) bool { _, ok := AsEmptyArtifactSetError(e); return ok },
		},
		{
			name: "unrelated error",
			err:  errors.New("boom"),
			want: false,
			as:   func(e error) bool { _, ok := AsOutlineParseError(e); return ok },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.as(tt.err); got != tt.want {
				t.Errorf("As helper = %v, want %v", got, tt.want)
			}
		})
	}
}
