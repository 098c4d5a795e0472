package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/eastertap/internal/core"
)

func TestDisplayLabels(t *testing.T) {
	d := NewDisplay(time.Second, 100*time.Millisecond)
	if d.Label() != "TAP" {
		t.Errorf("initial label = %q, want TAP", d.Label())
	}
	d.RenderWaitLabel(4)
	if d.Label() != "wait 4" {
		t.Errorf("wait label = %q", d.Label())
	}
	d.ResetButtonLabel()
	if d.Label() != "TAP" {
		t.Errorf("reset label = %q", d.Label())
	}
}

func TestDisplayNoticeExpires(t *testing.T) {
	d := NewDisplay(3500*time.Millisecond, 150*time.Millisecond)
	d.ShowSessionEndNotice(12)
	if d.Notice() != "Game over! Your score: 12" {
		t.Fatalf("notice = %q", d.Notice())
	}

	d.Advance(3 * time.Second)
	if d.Notice() == "" {
		t.Fatal("notice gone after 3s")
	}
	d.Advance(500 * time.Millisecond)
	if d.Notice() != "" {
		t.Errorf("notice still shown after 3.5s: %q", d.Notice())
	}
}

func TestDisplayFeedbackFlash(t *testing.T) {
	d := NewDisplay(time.Second, 150*time.Millisecond)
	if d.Flashing() {
		t.Fatal("flashing before any tap")
	}
	d.PlayTapFeedback()
	if !d.Flashing() {
		t.Fatal("not flashing after tap")
	}
	d.Advance(100 * time.Millisecond)
	if !d.Flashing() {
		t.Error("flash ended early")
	}
	d.Advance(50 * time.Millisecond)
	if d.Flashing() {
		t.Error("flash still on after its duration")
	}
}

func TestDisplayDrawHeader(t *testing.T) {
	d := NewDisplay(time.Second, 0)
	d.RenderScore(7)
	d.RenderTimeLeft(9)

	s := core.NewScreen(40, 12)
	d.Draw(s)

	header := rowText(s, 0)
	if !strings.Contains(header, "Score: 7") || !strings.Contains(header, "Time: 9") {
		t.Errorf("header = %q", header)
	}
	if c := s.GetCell(0, 0); c.BG != core.ColorBlack {
		t.Errorf("header background = %s, want black", c.BG)
	}
}

func TestDisplayDrawPlacesButton(t *testing.T) {
	tests := []struct {
		name  string
		h, v  float64
		wantX int
		wantY int
	}{
		{"top left", 0, 0, 0, 1},
		{"bottom right", 1, 1, 28, 8},
		{"center", 0.5, 0.5, 14, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDisplay(time.Second, 0)
			d.RenderTarget(core.ColorGreen, core.ColorPink, tt.h, tt.v)

			s := core.NewScreen(40, 12)
			d.Draw(s)

			r := d.ButtonRect()
			if r.X != tt.wantX || r.Y != tt.wantY || r.W != 12 || r.H != 3 {
				t.Errorf("button rect = %+v, want (%d,%d) 12x3", r, tt.wantX, tt.wantY)
			}
			if c := s.GetCell(r.X, r.Y); c.BG != core.ColorPink || c.Rune != '┌' {
				t.Errorf("button corner = %q on %s, want outlined pink", c.Rune, c.BG)
			}
			if c := s.GetCell(r.Right()-1, r.Bottom()-1); c.Rune != '┘' || c.FG != core.ColorWhite {
				t.Errorf("button border = %q in %s, want white outline", c.Rune, c.FG)
			}
			if !strings.Contains(rowText(s, r.Y+1), "TAP") {
				t.Errorf("label row = %q", rowText(s, r.Y+1))
			}
			// A field cell away from the button.
			fx := 0
			if r.X == 0 {
				fx = 39
			}
			if c := s.GetCell(fx, 6); c.BG != core.ColorGreen {
				t.Errorf("field background = %s, want green", c.BG)
			}
		})
	}
}

func TestDisplayDrawFlashInverts(t *testing.T) {
	d := NewDisplay(time.Second, time.Second)
	d.RenderTarget(core.ColorBlue, core.ColorRed, 0.5, 0.5)
	d.PlayTapFeedback()

	s := core.NewScreen(40, 12)
	d.Draw(s)

	r := d.ButtonRect()
	if c := s.GetCell(r.X, r.Y); c.BG != core.ColorWhite {
		t.Errorf("flashing button background = %s, want white", c.BG)
	}
}

func TestDisplayDrawNoticeLine(t *testing.T) {
	d := NewDisplay(time.Second, 0)
	d.ShowSessionEndNotice(3)

	s := core.NewScreen(40, 12)
	d.Draw(s)

	if !strings.Contains(rowText(s, 11), "Game over! Your score: 3") {
		t.Errorf("notice row = %q", rowText(s, 11))
	}
}

func TestDisplayDrawEmptyScreen(t *testing.T) {
	d := NewDisplay(time.Second, 0)
	d.Draw(core.NewScreen(0, 0))
	if d.ButtonRect() != (core.Rect{}) {
		t.Errorf("button rect on empty screen = %+v", d.ButtonRect())
	}
}

// rowText returns the runes of row y.
func rowText(s *core.Screen, y int) string {
	return strings.Split(s.String(), "\n")[y]
}
