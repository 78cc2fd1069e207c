// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/body"
	"github.com/litescript/ls-orrery/internal/clock"
	"github.com/litescript/ls-orrery/internal/version"
)

// Msg types for Bubble Tea
type (
	// TimeMsg carries an accepted simulation time update from the clock.
	TimeMsg struct {
		JD float64
	}

	// AnimTickMsg triggers fast animation updates (spinner frames).
	AnimTickMsg time.Time
)

// Discrete speed levels in simulated seconds per real second. Index 0 is
// real time; the top level stays under the default clock speed cap.
var speedLevels = []float64{1, 60, 600, 3600, 21600, 86400, 604800, 2629800}

func speedLabel(mult float64) string {
	switch {
	case mult == 0:
		return "paused"
	case mult == 1:
		return "real time"
	case mult < 3600:
		return fmt.Sprintf("%.0f min/s", mult/60)
	case mult < 86400:
		return fmt.Sprintf("%.0f hr/s", mult/3600)
	default:
		return fmt.Sprintf("%.1f day/s", mult/86400)
	}
}

// Model is the root Bubble Tea model. It issues time commands to the clock
// and renders whatever time the clock reports back; it never holds its own
// notion of simulation time.
type Model struct {
	clock  *clock.Clock
	system *body.System

	width     int
	height    int
	ready     bool
	statusMsg string
	animTick  int

	orrery OrreryModel

	jd       float64
	speed    float64
	speedIdx int // index into speedLevels to resume at after pause
}

// New creates the root UI model.
func New(clk *clock.Clock, sys *body.System) Model {
	return Model{
		clock:  clk,
		system: sys,
		orrery: NewOrreryModel(),
		jd:     clk.CurrentJD(),
		speed:  clk.Speed(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return animTickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case " ":
			m.togglePause()
		case ".", ">":
			m.stepSpeed(1)
		case ",", "<":
			m.stepSpeed(-1)

		// Time scrubbing works while paused; the clock validates.
		case "]":
			m.scrub(1)
		case "[":
			m.scrub(-1)
		case "}":
			m.scrub(30)
		case "{":
			m.scrub(-30)
		case "y":
			m.jumpTo(astro.TimeToJD(time.Now().UTC()))
		case "g":
			m.jumpTo(astro.J2000)

		default:
			var cmd tea.Cmd
			m.orrery, cmd = m.orrery.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		// Header takes 3 lines, footer 2
		m.orrery = m.orrery.SetSize(msg.Width, msg.Height-5)

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++

	case TimeMsg:
		m.jd = msg.JD
		m.speed = m.clock.Speed()
		// Rotation state integrates here, on the single UI goroutine, so
		// driver ticks and key-initiated scrubs cannot race.
		m.system.Advance(m.jd, m.speed)
		m.orrery = m.orrery.UpdateData(m.system.StatesAt(m.jd), m.jd)

	default:
		var cmd tea.Cmd
		m.orrery, cmd = m.orrery.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// togglePause flips between speed 0 and the last selected speed level.
func (m *Model) togglePause() {
	if m.clock.Speed() == 0 {
		m.applySpeed(speedLevels[m.speedIdx])
	} else {
		m.applySpeed(0)
	}
}

// stepSpeed moves one discrete speed level up or down. Stepping while
// paused resumes at the adjusted level.
func (m *Model) stepSpeed(dir int) {
	idx := m.speedIdx + dir
	if idx < 0 {
		idx = 0
	}
	if idx >= len(speedLevels) {
		idx = len(speedLevels) - 1
	}
	m.speedIdx = idx
	m.applySpeed(speedLevels[idx])
}

func (m *Model) applySpeed(mult float64) {
	if res := m.clock.SetSpeed(mult); !res.OK {
		m.statusMsg = fmt.Sprintf("speed rejected: %s", res.Code)
		return
	}
	m.speed = mult
	m.statusMsg = ""
}

// scrub moves simulation time by whole days through the clock's normal
// validation path. Subscribers fire synchronously, so the resulting
// TimeMsg arrives before the next render.
func (m *Model) scrub(days float64) {
	m.jumpTo(m.clock.CurrentJD() + days)
}

func (m *Model) jumpTo(jd float64) {
	if res := m.clock.SetTime(jd); !res.OK {
		m.statusMsg = fmt.Sprintf("time rejected: %s", res.Code)
		return
	}
	m.statusMsg = ""
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return m.renderHeader() + "\n" + m.orrery.View() + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	timeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	speedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	pausedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)

	title := titleStyle.Render("LS-ORRERY") +
		muted.Render(fmt.Sprintf("  Keplerian solar system · v%s", version.Version))

	var speedPart string
	if m.speed == 0 {
		speedPart = pausedStyle.Render("⏸ PAUSED")
	} else {
		speedPart = speedStyle.Render("▶ " + speedLabel(m.speed))
	}

	timeline := "  " + timeStyle.Render(astro.FormatJD(m.jd)) +
		muted.Render(fmt.Sprintf("  JD %.5f  ", m.jd)) + speedPart

	return "  " + title + "\n" + timeline + "\n"
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	var status string
	if m.speed == 0 {
		status = dimStyle.Render("⏸ hold")
	} else {
		status = accentStyle.Render(spinnerFrames[m.animTick%len(spinnerFrames)])
	}

	help := dimStyle.Render(
		"space: pause | ,/.: speed | [/]: ±day | {/}: ±month | g: J2000 | y: now | j/k: focus | +/-: zoom | q: quit")

	footer := "  " + status + "  " + dimStyle.Render("|") + "  " + help
	if m.statusMsg != "" {
		footer += "\n  " + errorStyle.Render(m.statusMsg)
	} else {
		footer += "\n"
	}
	return footer
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}
