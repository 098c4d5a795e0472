package tui

import (
	"fmt"
	"time"

	"github.com/vovakirdan/eastertap/internal/core"
)

const (
	tapLabel     = "TAP"
	buttonMinW   = 12
	buttonHeight = 3
)

// Display is the terminal implementation of game.Presenter. It keeps what
// the controller last asked to show and draws it into a screen buffer.
type Display struct {
	score    int
	timeLeft int
	label    string

	background core.Color
	button     core.Color
	hBias      float64
	vBias      float64

	notice         string
	noticeLeft     time.Duration
	noticeDuration time.Duration

	flashLeft     time.Duration
	flashDuration time.Duration

	buttonRect core.Rect
}

// NewDisplay creates a display. notice is how long the end-of-session
// notice stays up; flash is the length of the tap feedback.
func NewDisplay(notice, flash time.Duration) *Display {
	return &Display{
		label:          tapLabel,
		hBias:          0.5,
		vBias:          0.5,
		button:         core.ColorGray,
		noticeDuration: notice,
		flashDuration:  flash,
	}
}

func (d *Display) RenderScore(score int) {
	d.score = score
}

func (d *Display) RenderTimeLeft(seconds int) {
	d.timeLeft = seconds
}

func (d *Display) RenderWaitLabel(seconds int) {
	d.label = fmt.Sprintf("wait %d", seconds)
}

func (d *Display) ResetButtonLabel() {
	d.label = tapLabel
}

func (d *Display) RenderTarget(bg, button core.Color, h, v float64) {
	d.background = bg
	d.button = button
	d.hBias = h
	d.vBias = v
}

func (d *Display) ShowSessionEndNotice(finalScore int) {
	d.notice = fmt.Sprintf("Game over! Your score: %d", finalScore)
	d.noticeLeft = d.noticeDuration
}

func (d *Display) PlayTapFeedback() {
	d.flashLeft = d.flashDuration
}

// Advance runs the notice and feedback animations forward.
func (d *Display) Advance(elapsed time.Duration) {
	d.noticeLeft = max(d.noticeLeft-elapsed, 0)
	d.flashLeft = max(d.flashLeft-elapsed, 0)
	if d.noticeLeft == 0 {
		d.notice = ""
	}
}

// Label returns the current button label.
func (d *Display) Label() string {
	return d.label
}

// Notice returns the notice being shown, or "".
func (d *Display) Notice() string {
	return d.notice
}

// Flashing reports whether the tap feedback is visible.
func (d *Display) Flashing() bool {
	return d.flashLeft > 0
}

// ButtonRect returns where the button was last drawn.
func (d *Display) ButtonRect() core.Rect {
	return d.buttonRect
}

// Draw renders the play field: a header with score and time, the colored
// field with the button, and a notice line at the bottom.
func (d *Display) Draw(s *core.Screen) {
	w, h := s.Width(), s.Height()
	s.Fill(d.background)
	if w == 0 || h == 0 {
		d.buttonRect = core.Rect{}
		return
	}

	s.DrawRect(core.NewRect(0, 0, w, 1), core.ColorBlack)
	s.DrawTextColored(1, 0, fmt.Sprintf("Score: %d", d.score), core.ColorWhite, core.ColorBlack)
	timeText := fmt.Sprintf("Time: %d", d.timeLeft)
	s.DrawTextColored(w-len(timeText)-1, 0, timeText, core.ColorWhite, core.ColorBlack)

	field := core.NewRect(0, 1, w, core.Max(h-2, 0))
	bw := core.Max(len(d.label)+6, buttonMinW)
	d.buttonRect = field.Place(bw, buttonHeight, d.hBias, d.vBias)

	fg, bg := core.ColorWhite, d.button
	if d.Flashing() {
		fg, bg = d.button, core.ColorWhite
	}
	r := d.buttonRect
	s.DrawRect(r, bg)
	s.DrawBox(r)
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			c := s.GetCell(x, y)
			c.FG = fg
			s.SetCell(x, y, c)
		}
	}
	cx, cy := r.Center()
	s.DrawTextColored(cx-len(d.label)/2, cy, d.label, fg, bg)

	if d.notice != "" && h > 1 {
		d.drawStatus(s, d.notice, core.ColorYellow, core.ColorBlack)
	}
}

// drawStatus writes a centered message on the bottom line.
func (d *Display) drawStatus(s *core.Screen, text string, fg, bg core.Color) {
	y := s.Height() - 1
	s.DrawRect(core.NewRect(0, y, s.Width(), 1), bg)
	s.DrawTextCentered(y, text, fg, bg)
}
