// Package server owns the shared world and advances it one frame per tick.
// Clients talk to it through commands and read immutable snapshots.
package server

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang/geo/r2"

	"github.com/tomz197/ballworld/internal/loop/config"
	"github.com/tomz197/ballworld/internal/world"
)

// GameServer is the interface clients use to communicate with the server.
// Decouples the Client from the concrete Server implementation.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	SendCommand(clientID int, cmd Command)
	GetSnapshot() *WorldSnapshot
}

// Server runs the world loop. The world is only touched from the goroutine
// calling Run (or Tick); everyone else goes through channels and snapshots.
type Server struct {
	world        *world.World
	logger       *log.Logger
	snapshot     atomic.Pointer[WorldSnapshot]
	clients      map[int]*ClientHandle
	nextClientID int
	commandCh    chan clientCommand
	registerCh   chan *ClientHandle
	unregisterCh chan int
	mu           sync.RWMutex

	speedPercent int
	paused       bool
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string
	EventsCh chan ClientEvent // Events sent to the client; closed on unregister
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventRosterFull ClientEventType = iota
	EventServerShutdown
)

// NewServer creates a server around w. A nil logger discards output.
func NewServer(w *world.World, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Server{
		world:        w,
		logger:       logger,
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		commandCh:    make(chan clientCommand, 256),
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
		speedPercent: config.SpeedPercentDefault,
	}

	s.createSnapshot()
	return s
}

// Run starts the server loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	s.logger.Info("world loop started", "tick", config.ServerTickTime, "balls", s.world.Active())
	defer s.logger.Info("world loop stopped")

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frameStart := time.Now()
		s.Tick()

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ServerTickTime {
			time.Sleep(config.ServerTickTime - elapsed)
		}
	}
}

// Tick runs one iteration of the loop: registrations, queued commands, one
// world frame unless paused, and a fresh snapshot. Run calls it on a timer;
// calling it directly gives deterministic stepping.
func (s *Server) Tick() {
	s.processRegistrations()
	s.applyCommands()

	if !s.paused {
		s.advance()
	}

	s.createSnapshot()
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			s.mu.RLock()
			remaining := len(s.clients)
			s.mu.RUnlock()
			if remaining == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:       id,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}

	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// SendCommand queues a command from a client for the next tick.
func (s *Server) SendCommand(clientID int, cmd Command) {
	select {
	case s.commandCh <- clientCommand{ClientID: clientID, Command: cmd}:
	default:
		// Command channel full, drop command
	}
}

// GetSnapshot returns the latest world snapshot.
func (s *Server) GetSnapshot() *WorldSnapshot {
	return s.snapshot.Load()
}

// processRegistrations handles pending client registrations/unregistrations.
func (s *Server) processRegistrations() {
	for {
		select {
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			s.logger.Debug("viewer joined", "id", handle.ID, "user", handle.Username)
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				close(handle.EventsCh)
				delete(s.clients, clientID)
			}
			s.mu.Unlock()
			s.logger.Debug("viewer left", "id", clientID)
		default:
			return
		}
	}
}

// applyCommands drains the command queue.
func (s *Server) applyCommands() {
	for {
		select {
		case cc := <-s.commandCh:
			s.apply(cc)
		default:
			return
		}
	}
}

func (s *Server) apply(cc clientCommand) {
	cmd := cc.Command
	switch cmd.Kind {
	case CommandLaunch:
		box := s.world.Container()
		pos := r2.Point{X: box.MinX + config.LaunchInset, Y: box.MaxY - config.LaunchInset}
		if err := s.world.Launch(pos); err != nil {
			if errors.Is(err, world.ErrRosterFull) {
				s.notify(cc.ClientID, ClientEvent{Type: EventRosterFull})
				return
			}
			s.logger.Warn("launch failed", "err", err)
		}

	case CommandSetSpeed:
		s.setSpeed(cmd.Percent)

	case CommandAdjustSpeed:
		s.setSpeed(s.speedPercent + cmd.Percent)

	case CommandSetBounds:
		b := cmd.Bounds
		if err := s.world.SetContainerBounds(b.MinX, b.MinY, b.MaxX, b.MaxY); err != nil {
			s.logger.Warn("ignoring container bounds", "err", err)
		}

	case CommandTogglePause:
		s.paused = !s.paused
		s.logger.Debug("pause toggled", "paused", s.paused)
	}
}

// setSpeed rescales every ball to percent of its preset velocity. A
// request that clamps to the current percent leaves velocities alone.
func (s *Server) setSpeed(percent int) {
	percent = config.ClampSpeedPercent(percent)
	if percent == s.speedPercent {
		return
	}
	if err := s.world.SetVelocityScale(float64(percent) / 100); err != nil {
		s.logger.Warn("ignoring speed change", "percent", percent, "err", err)
		return
	}
	s.speedPercent = percent
}

// notify sends an event to one client without blocking.
func (s *Server) notify(clientID int, ev ClientEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if handle, ok := s.clients[clientID]; ok {
		select {
		case handle.EventsCh <- ev:
		default:
		}
	}
}

// advance runs one world frame. A frame cut short by the sub-step cap is
// reported and the loop carries on.
func (s *Server) advance() {
	err := s.world.AdvanceFrame()
	if err == nil {
		return
	}
	var se *world.SubstepError
	if errors.As(err, &se) {
		s.logger.Warn("frame cut short", "frame", s.world.LastFrame().Frame,
			"substeps", se.Substeps, "remaining", se.Remaining)
		return
	}
	s.logger.Error("frame failed", "err", err)
}

// createSnapshot publishes a copy of the current world state.
func (s *Server) createSnapshot() {
	s.mu.RLock()
	viewers := len(s.clients)
	s.mu.RUnlock()

	snapshot := &WorldSnapshot{
		Bodies:        s.world.Bodies(make([]world.BodyState, 0, s.world.Active())),
		Container:     s.world.Container(),
		Active:        s.world.Active(),
		Capacity:      s.world.Capacity(),
		SpeedPercent:  s.speedPercent,
		Paused:        s.paused,
		Stats:         s.world.LastFrame(),
		KineticEnergy: s.world.TotalKineticEnergy(),
		Viewers:       viewers,
	}

	s.snapshot.Store(snapshot)
}
