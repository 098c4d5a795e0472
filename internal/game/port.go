package game

import "github.com/vovakirdan/eastertap/internal/core"

// Presenter renders the session. Implemented by the host shell.
type Presenter interface {
	RenderScore(score int)
	RenderTimeLeft(seconds int)

	// RenderWaitLabel replaces the button label with the cooldown countdown.
	RenderWaitLabel(seconds int)

	// ResetButtonLabel restores the regular button label.
	ResetButtonLabel()

	RenderTarget(background, button core.Color, horizontalBias, verticalBias float64)
	ShowSessionEndNotice(finalScore int)
	PlayTapFeedback()
}

// ScoreRecorder stores the final score of a finished session.
// storage.Store satisfies it.
type ScoreRecorder interface {
	SaveScore(gameID string, score int) (int64, error)
}
