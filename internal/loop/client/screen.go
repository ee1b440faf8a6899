package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/ballworld/internal/loop/config"
	"github.com/tomz197/ballworld/internal/loop/server"
	"github.com/tomz197/ballworld/internal/object"
)

// hudStyles are the lipgloss styles for the status lines.
type hudStyles struct {
	label  lipgloss.Style
	value  lipgloss.Style
	paused lipgloss.Style
	notice lipgloss.Style
	help   lipgloss.Style
	title  lipgloss.Style
}

func newHUDStyles(r *lipgloss.Renderer) hudStyles {
	return hudStyles{
		label:  r.NewStyle().Faint(true),
		value:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		paused: r.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")).Padding(0, 1),
		notice: r.NewStyle().Foreground(lipgloss.Color("9")),
		help:   r.NewStyle().Faint(true),
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
	}
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On mode or inactivity transitions, do a full terminal clear
	// so UI elements from the previous screen don't persist.
	modeChanged := c.state.Mode != c.state.prevMode
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if modeChanged || inactiveChanged {
		c.chunkWriter.Clear()
		c.canvas.ForceRedraw()
		c.state.prevMode = c.state.Mode
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()

	snapshot := c.server.GetSnapshot()
	c.canvas.SetLogicalSize(snapshot.Container.MaxX, snapshot.Container.MaxY)

	ctx := object.DrawContext{
		Canvas: c.canvas,
		Writer: c.chunkWriter,
	}

	container := object.Container{Box: snapshot.Container}
	if err := container.Draw(ctx); err != nil {
		return err
	}
	for _, body := range snapshot.Bodies {
		if err := body.Sprite().Draw(ctx); err != nil {
			return err
		}
	}

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	c.drawUI(snapshot)

	return c.chunkWriter.Flush()
}

// drawUI draws the overlay for the current mode.
func (c *Client) drawUI(snapshot *server.WorldSnapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.Mode == ModeShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	c.drawHUD(termWidth, termHeight, snapshot)
}

// drawHUD draws the status and help lines under the arena.
func (c *Client) drawHUD(termWidth, termHeight int, snapshot *server.WorldSnapshot) {
	cw := c.chunkWriter
	cw.WriteLine(termHeight+1, termWidth, c.statusLine(snapshot))
	cw.WriteLine(termHeight+2, termWidth, c.styles.help.Render("space launch   +/- speed   p pause   q quit"))
}

// statusLine formats the world counters for the HUD.
func (c *Client) statusLine(snapshot *server.WorldSnapshot) string {
	st := c.styles
	field := func(label, value string) string {
		return st.label.Render(label) + " " + st.value.Render(value)
	}

	parts := []string{
		field("Balls", fmt.Sprintf("%d/%d", snapshot.Active, snapshot.Capacity)),
		field("Speed", fmt.Sprintf("%d%%", snapshot.SpeedPercent)),
		field("Sub-steps", fmt.Sprintf("%d", snapshot.Stats.Substeps)),
		field("KE", fmt.Sprintf("%.0f", snapshot.KineticEnergy)),
		field("Viewers", fmt.Sprintf("%d", snapshot.Viewers)),
	}
	if snapshot.Paused {
		parts = append(parts, st.paused.Render("PAUSED"))
	}
	if c.state.notice != "" {
		parts = append(parts, st.notice.Render(c.state.notice))
	}
	return strings.Join(parts, "  ")
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	c.chunkWriter.WriteCentered(centerX, centerY-2,
		c.styles.title.Render("INACTIVITY WARNING"),
		"",
		msg,
		"",
		"Press any key to continue",
	)
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	remaining := int(c.state.shutdownTimer) + 1
	c.chunkWriter.WriteCentered(centerX, centerY-3,
		c.styles.title.Render("SERVER SHUTTING DOWN"),
		"",
		"The server is restarting for maintenance.",
		"Please reconnect in a moment.",
		"",
		fmt.Sprintf("Disconnecting in %d seconds...", remaining),
		"",
		"Press Q to disconnect now",
	)
}
