package cadence

import "github.com/phanxgames/cadence/anim"

// PlayState is a symbolic playback command for a Timeline or Tween. The
// empty PlayState issues no command.
type PlayState string

const (
	PlayStatePlay           PlayState = "play"
	PlayStatePause          PlayState = "pause"
	PlayStateResume         PlayState = "resume"
	PlayStateReverse        PlayState = "reverse"
	PlayStateRestart        PlayState = "restart"
	PlayStateRestartReverse PlayState = "restartReverse"
	PlayStateStop           PlayState = "stop"
	PlayStateStopEnd        PlayState = "stopEnd"
	PlayStateComplete       PlayState = "complete"
)

// PlayStates lists every recognised PlayState.
var PlayStates = []PlayState{
	PlayStatePlay,
	PlayStatePause,
	PlayStateResume,
	PlayStateReverse,
	PlayStateRestart,
	PlayStateRestartReverse,
	PlayStateStop,
	PlayStateStopEnd,
	PlayStateComplete,
}

// Valid reports whether s is empty or one of PlayStates.
func (s PlayState) Valid() bool {
	if s == "" {
		return true
	}
	for _, known := range PlayStates {
		if s == known {
			return true
		}
	}
	return false
}

// ApplyPlayState drives a according to next, but only when next differs
// from prev. Unknown states produce a warning and no call.
func ApplyPlayState(a anim.Animation, prev, next PlayState) {
	if a == nil || next == "" || next == prev {
		return
	}
	switch next {
	case PlayStatePlay:
		a.Play()
	case PlayStatePause:
		a.Pause()
	case PlayStateResume:
		a.Resume()
	case PlayStateReverse:
		a.Reverse()
	case PlayStateRestart:
		a.Restart(true)
	case PlayStateRestartReverse:
		a.ReverseFrom(a.TotalDuration())
	case PlayStateStop:
		a.PauseAt(0)
	case PlayStateStopEnd:
		a.PauseAt(a.TotalDuration())
	case PlayStateComplete:
		a.SetTotalProgress(1)
		a.Pause()
	default:
		names := make([]string, len(PlayStates))
		for i, s := range PlayStates {
			names[i] = string(s)
		}
		warnf("unknown play state %q%s", next, anim.DidYouMean(string(next), names))
	}
}
