// Package client renders the shared world for one terminal and turns its
// keystrokes into server commands.
package client

import (
	"bufio"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/ballworld/internal/draw"
	"github.com/tomz197/ballworld/internal/input"
	"github.com/tomz197/ballworld/internal/loop/config"
	"github.com/tomz197/ballworld/internal/loop/server"
)

// hudRows is the number of terminal rows below the arena used by the HUD.
const hudRows = 2

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	fitArena     bool
	styles       hudStyles
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string

	// FitArena makes the container follow the terminal size. Only one
	// client of a server should set it.
	FitArena bool

	// Renderer styles the HUD. Nil uses a renderer for the client's
	// writer.
	Renderer *lipgloss.Renderer
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = lipgloss.NewRenderer(w)
	}

	handle := gs.RegisterClient(opts.Username)
	state := NewClientState()

	// Create canvas with clamped dimensions for max render resolution
	box := gs.GetSnapshot().Container
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, arenaRows(renderHeight), box.MaxX, box.MaxY)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	return &Client{
		server:       gs,
		handle:       handle,
		state:        state,
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		fitArena:     opts.FitArena,
		styles:       newHUDStyles(renderer),
	}
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		// Process input
		c.processInput()

		// Check for server events
		c.processServerEvents()

		// Handle screen resize
		c.updateScreen()

		c.state.tickNotice()
		if c.state.Mode == ModeShutdown {
			c.updateShutdownState()
		}

		// Draw frame
		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	// Unregister from server
	c.server.UnregisterClient(c.handle.ID)

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads input and sends the resulting commands to the server.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
		return
	}

	if c.state.Mode == ModeWatching {
		for _, cmd := range commandsFor(c.state.Input) {
			c.server.SendCommand(c.handle.ID, cmd)
		}
	}
}

// commandsFor maps one frame of key actions to server commands. Speed
// changes are merged into a single adjustment.
func commandsFor(in input.Input) []server.Command {
	var cmds []server.Command
	for range in.Launch {
		cmds = append(cmds, server.Launch())
	}
	if delta := (in.Faster - in.Slower) * config.SpeedPercentStep; delta != 0 {
		cmds = append(cmds, server.AdjustSpeedPercent(delta))
	}
	if in.Pause%2 == 1 {
		cmds = append(cmds, server.TogglePause())
	}
	return cmds
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventRosterFull:
				c.state.showNotice("No reserve balls left")
			case server.EventServerShutdown:
				c.state.Mode = ModeShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area. With FitArena set the container is resized
// to match.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	rows := arenaRows(renderHeight)

	if renderWidth != c.canvas.TerminalWidth() || rows != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, rows)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)

	if c.fitArena && (renderWidth != c.state.fittedCols || rows != c.state.fittedRows) {
		w, h := arenaSize(renderWidth, rows)
		c.server.SendCommand(c.handle.ID, server.SetBounds(0, 0, w, h))
		c.state.fittedCols, c.state.fittedRows = renderWidth, rows
	}
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// arenaRows is the number of terminal rows left for the arena.
func arenaRows(renderHeight int) int {
	return max(renderHeight-hudRows, 1)
}

// arenaSize converts a canvas size in terminal cells to world units.
func arenaSize(cols, rows int) (float64, float64) {
	return float64(cols * config.UnitsPerPixel), float64(rows * 2 * config.UnitsPerPixel)
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
