package client

import (
	"time"

	"github.com/tomz197/ballworld/internal/input"
)

// Mode represents what the client is currently showing.
type Mode int

const (
	ModeWatching Mode = iota // Arena and HUD
	ModeShutdown             // Server is shutting down
)

// noticeSeconds is how long a one-off HUD notice stays visible.
const noticeSeconds = 2.0

// ClientState holds per-viewer state. Each client has its own instance,
// managed by the Client.
type ClientState struct {
	Input         input.Input
	Mode          Mode
	Running       bool          // Client loop running
	delta         time.Duration // Frame delta time (client-side)
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the client is in inactive warning state
	notice        string        // Short message shown in the HUD
	noticeTimer   float64       // Seconds left for notice

	// Previous frame values, used to detect transitions that need a full clear
	prevMode    Mode
	wasInactive bool

	// Last render size the arena was fitted to
	fittedCols, fittedRows int
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Mode:    ModeWatching,
		Running: true,
	}
}

// showNotice displays msg in the HUD for a couple of seconds.
func (s *ClientState) showNotice(msg string) {
	s.notice = msg
	s.noticeTimer = noticeSeconds
}

// tickNotice counts the notice down and clears it when it expires.
func (s *ClientState) tickNotice() {
	if s.noticeTimer <= 0 {
		return
	}
	s.noticeTimer -= s.delta.Seconds()
	if s.noticeTimer <= 0 {
		s.notice = ""
	}
}
