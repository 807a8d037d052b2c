package layout

import (
	"strings"
	"testing"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{79, 24, true},
		{120, 23, true},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Tune Feed", "Balanced", 100)
	for _, want := range []string{"feedtune", "Tune Feed", "Balanced"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestRenderHeaderDropsTitleWhenNarrow(t *testing.T) {
	status := strings.Repeat("x", 60)
	h := RenderHeader("Request Preview", status, 80)
	if strings.Contains(h, "Request Preview") {
		t.Error("title should give way to the status on narrow terminals")
	}
	if !strings.Contains(h, status) {
		t.Error("status must always be shown")
	}
}

func TestRenderFooter(t *testing.T) {
	f := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}, {Key: "r", Description: "Reset"}}, 80)
	if !strings.Contains(f, "Esc") || !strings.Contains(f, "Reset") {
		t.Errorf("footer missing hints: %q", f)
	}
}
