package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/eastertap/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(20, 3)
	s.Fill(core.ColorBlue)
	s.DrawTextColored(2, 1, "wait 5", core.ColorWhite, core.ColorPurple)

	out := RenderScreen(s)
	if !strings.Contains(out, "wait 5") {
		t.Errorf("rendered output lost text: %q", out)
	}
	if got := strings.Count(out, "\n"); got != 2 {
		t.Errorf("rendered %d line breaks, want 2", got)
	}
}

func TestRenderScreenEmpty(t *testing.T) {
	if out := RenderScreen(core.NewScreen(0, 0)); out != "" {
		t.Errorf("empty screen rendered %q", out)
	}
}
