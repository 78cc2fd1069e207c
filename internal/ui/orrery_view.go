package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/body"
	"github.com/litescript/ls-orrery/internal/orbit"
)

// LabelMode controls which body labels are drawn on the canvas.
type LabelMode int

const (
	LabelNone LabelMode = iota
	LabelFocused
	LabelAll
)

// OrreryModel renders the top-down ecliptic view of the solar system.
type OrreryModel struct {
	width  int
	height int

	states []body.State
	jd     float64

	focusIdx   int     // Index into states (-1 = Sun)
	zoomLevel  int     // Index into zoomLevels
	panX       float64 // Pan offset in display units
	panY       float64
	scaleMode  astro.ScaleMode
	labelMode  LabelMode
	userPanned bool // Manual pan disables auto-center on zoom
	showStars  bool
	showOrbits bool
}

// Discrete zoom levels for clean stepping
var zoomLevels = []float64{0.25, 0.5, 0.75, 1.0, 1.5, 2.0, 3.0, 5.0, 10.0}

// NewOrreryModel creates the orrery view model.
func NewOrreryModel() OrreryModel {
	return OrreryModel{
		focusIdx:   -1, // Start focused on Sun
		zoomLevel:  3,  // Index of 1.0 in zoomLevels
		scaleMode:  astro.ScaleLogR,
		labelMode:  LabelFocused,
		showStars:  true,
		showOrbits: true,
	}
}

func (m OrreryModel) scale() float64 {
	if m.zoomLevel < 0 || m.zoomLevel >= len(zoomLevels) {
		return 1.0
	}
	return zoomLevels[m.zoomLevel]
}

// SetSize updates the viewport size.
func (m OrreryModel) SetSize(width, height int) OrreryModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData replaces the rendered body states for a new simulation time.
func (m OrreryModel) UpdateData(states []body.State, jd float64) OrreryModel {
	m.states = states
	m.jd = jd
	return m
}

// Update handles input messages.
func (m OrreryModel) Update(msg tea.Msg) (OrreryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j":
			m.focusPrev()
		case "k":
			m.focusNext()

		// Viewport panning
		case "up":
			m.panY -= 0.1 / m.scale()
			m.userPanned = true
		case "down":
			m.panY += 0.1 / m.scale()
			m.userPanned = true
		case "left":
			m.panX -= 0.1 / m.scale()
			m.userPanned = true
		case "right":
			m.panX += 0.1 / m.scale()
			m.userPanned = true
		case "c":
			m.panX, m.panY = 0, 0 // Center on Sun
			m.userPanned = false

		case "f":
			m.centerOnFocused()
			m.userPanned = false

		// Zoom; only auto-center if the user hasn't panned away
		case "+", "=":
			if m.zoomLevel < len(zoomLevels)-1 {
				m.zoomLevel++
				if !m.userPanned {
					m.centerOnFocused()
				}
			}
		case "-":
			if m.zoomLevel > 0 {
				m.zoomLevel--
				if !m.userPanned {
					m.centerOnFocused()
				}
			}
		case "0":
			m.zoomLevel = 3
			if !m.userPanned {
				m.centerOnFocused()
			}

		case "z":
			m.scaleMode = (m.scaleMode + 1) % 3
			if !m.userPanned {
				m.centerOnFocused()
			}

		case "l":
			m.labelMode = (m.labelMode + 1) % 3
		case "t":
			m.showStars = !m.showStars
		case "o":
			m.showOrbits = !m.showOrbits

		case "r":
			m.panX, m.panY = 0, 0
			m.zoomLevel = 3
			m.userPanned = false
		}
	}
	return m, nil
}

func (m *OrreryModel) focusNext() {
	if len(m.states) == 0 {
		return
	}
	m.focusIdx++
	if m.focusIdx >= len(m.states) {
		m.focusIdx = -1 // Wrap to Sun
	}
	m.centerOnFocused()
	m.userPanned = false
}

func (m *OrreryModel) focusPrev() {
	if len(m.states) == 0 {
		return
	}
	m.focusIdx--
	if m.focusIdx < -1 {
		m.focusIdx = len(m.states) - 1
	}
	m.centerOnFocused()
	m.userPanned = false
}

// centerOnFocused pans the view to center on the currently focused body.
func (m *OrreryModel) centerOnFocused() {
	if m.focusIdx < 0 || m.focusIdx >= len(m.states) {
		// Sun is at origin, just reset pan
		m.panX, m.panY = 0, 0
		return
	}

	st := m.states[m.focusIdx]
	cfg := astro.ProjectionConfig{Scale: m.scale(), Mode: m.scaleMode}
	proj := astro.ProjectEclipticTopDown(st.Pos, cfg)
	m.panX = -proj.X
	m.panY = -proj.Y
}

// SetFocusByCode sets focus to a body by its code.
func (m *OrreryModel) SetFocusByCode(code string) {
	for i, st := range m.states {
		if st.Def.Code == code {
			m.focusIdx = i
			return
		}
	}
}

// FocusedBody returns the currently focused body state, or nil for Sun.
func (m OrreryModel) FocusedBody() *body.State {
	if m.focusIdx >= 0 && m.focusIdx < len(m.states) {
		return &m.states[m.focusIdx]
	}
	return nil
}

// View renders the orrery canvas plus HUD.
func (m OrreryModel) View() string {
	if m.width < 40 || m.height < 10 {
		return "Terminal too small for orrery view"
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.buildCanvas(), m.renderHUD())
}

// bodyPos tracks a body's screen position for label rendering.
type bodyPos struct {
	x, y      int
	name      string
	isFocused bool
}

func (m OrreryModel) buildCanvas() string {
	// Reserve space for the HUD
	canvasH := m.height - 3
	if canvasH < 5 {
		canvasH = 5
	}
	canvasW := m.width

	grid := make([][]rune, canvasH)
	colors := make([][]string, canvasH) // per-cell hex override for body glyphs
	for y := range grid {
		grid[y] = make([]rune, canvasW)
		colors[y] = make([]string, canvasW)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	screenCenterX := canvasW / 2
	screenCenterY := canvasH / 2

	scale := m.scale()
	cfg := astro.ProjectionConfig{Scale: scale, Mode: m.scaleMode}

	// Map the log-scaled outer system (~1.5 display units) to most of the
	// canvas at 1.0x zoom
	maxDisplayR := float64(minInt(screenCenterX, screenCenterY*2)) * 0.9
	displayScale := maxDisplayR / 1.5 * scale

	originX := screenCenterX + int(m.panX*displayScale)
	originY := screenCenterY - int(m.panY*displayScale)

	if m.showStars {
		m.drawStarfield(grid, originX, originY, displayScale, cfg)
	}
	if m.showOrbits {
		m.drawOrbitCurves(grid, originX, originY, displayScale, cfg)
	}

	var positions []bodyPos

	for i, st := range m.states {
		proj := astro.ProjectEclipticTopDown(st.Pos, cfg)

		sx := originX + int(proj.X*displayScale)
		sy := originY - int(proj.Y*displayScale) // Y flipped for screen

		if sx < 0 || sx >= canvasW || sy < 0 || sy >= canvasH {
			continue
		}

		focused := i == m.focusIdx
		grid[sy][sx] = bodyGlyph(st.Def, focused)
		if !focused {
			colors[sy][sx] = st.Def.ColorHex
		}

		positions = append(positions, bodyPos{
			x: sx, y: sy, name: st.Def.Name, isFocused: focused,
		})
	}

	// Sun last so it is always visible at the origin
	if originX >= 0 && originX < canvasW && originY >= 0 && originY < canvasH {
		grid[originY][originX] = '☉'
		positions = append(positions, bodyPos{
			x: originX, y: originY, name: "Sun", isFocused: m.focusIdx == -1,
		})
	}

	m.renderLabels(grid, canvasW, canvasH, positions)

	return m.renderGrid(grid, colors)
}

// drawOrbitCurves traces each body's actual orbit by sampling its own
// elements over one revolution, so every body sits exactly on its curve.
func (m OrreryModel) drawOrbitCurves(grid [][]rune, cx, cy int, displayScale float64, cfg astro.ProjectionConfig) {
	h := len(grid)
	w := len(grid[0])

	// Same screen transform as the bodies, so each body lands on its curve
	for _, st := range m.states {
		pts := st.Def.Elements.Path(m.jd, orbit.DefaultPathSamples)
		for _, pt := range pts {
			proj := astro.ProjectEclipticTopDown(pt, cfg)
			x := cx + int(proj.X*displayScale)
			y := cy - int(proj.Y*displayScale)

			if x >= 0 && x < w && y >= 0 && y < h && grid[y][x] == ' ' {
				grid[y][x] = '·'
			}
		}
	}
}

// drawStarfield renders background stars from the bright star catalog,
// pinned to a shell that scales inversely with zoom so they stay at the
// edge of the viewport.
func (m OrreryModel) drawStarfield(grid [][]rune, cx, cy int, displayScale float64, cfg astro.ProjectionConfig) {
	h := len(grid)
	w := len(grid[0])

	catalog := astro.DefaultStarCatalog()
	starCfg := astro.ProjectionConfig{
		Scale:             cfg.Scale,
		Mode:              cfg.Mode,
		StarShellRadiusAU: astro.DefaultStarShellRadiusAU / cfg.Scale,
	}

	for _, star := range catalog.Stars {
		proj := astro.ProjectStarEclipticTopDown(star.RAdeg, star.DecDeg, starCfg)

		sx := cx + int(proj.X*displayScale)
		sy := cy - int(proj.Y*displayScale*0.5)

		if sx < 0 || sx >= w || sy < 0 || sy >= h {
			continue
		}
		if grid[sy][sx] != ' ' {
			continue
		}

		if glyph := starGlyph(star.Mag); glyph != ' ' {
			grid[sy][sx] = glyph
		}
	}
}

// starGlyph picks a subtle glyph by magnitude; very dim stars are skipped.
func starGlyph(mag float64) rune {
	switch {
	case mag <= 1.0:
		return '∗'
	case mag <= 2.5:
		return '·'
	case mag <= 3.5:
		return '˙'
	default:
		return ' '
	}
}

func bodyGlyph(def orbit.Def, focused bool) rune {
	if def.Class == orbit.ClassGiant {
		if focused {
			return '◉'
		}
		return '○'
	}
	if focused {
		return '●'
	}
	return '•'
}

// renderLabels draws body labels on the canvas based on label mode.
func (m OrreryModel) renderLabels(grid [][]rune, width, height int, positions []bodyPos) {
	if m.labelMode == LabelNone || len(positions) == 0 {
		return
	}

	for _, pos := range positions {
		show := m.labelMode == LabelAll || pos.isFocused
		if !show {
			continue
		}

		labelX := pos.x + 2
		labelY := pos.y
		if labelY < 0 || labelY >= height || labelX >= width {
			continue
		}

		labelText := pos.name
		if pos.isFocused {
			labelText = "◄ " + pos.name
		}

		for i, r := range labelText {
			x := labelX + i
			if x >= width {
				break
			}
			// Labels may overwrite orbit dots but not other bodies
			if grid[labelY][x] == ' ' || grid[labelY][x] == '·' {
				grid[labelY][x] = r
			}
		}
	}
}

func (m OrreryModel) renderGrid(grid [][]rune, colors [][]string) string {
	var b strings.Builder

	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	starStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	sunStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	focusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("249"))

	for y, row := range grid {
		for x, ch := range row {
			if ch == ' ' {
				b.WriteRune(ch)
				continue
			}

			if hex := colors[y][x]; hex != "" {
				b.WriteString(lipgloss.NewStyle().
					Foreground(lipgloss.Color(hex)).Render(string(ch)))
				continue
			}

			var style lipgloss.Style
			switch ch {
			case '·':
				style = dimStyle
			case '∗', '˙':
				style = starStyle
			case '☉':
				style = sunStyle
			case '•', '○', '●', '◉', '◄':
				style = focusStyle
			default:
				style = labelStyle
			}
			b.WriteString(style.Render(string(ch)))
		}
		b.WriteRune('\n')
	}

	return b.String()
}

func (m OrreryModel) renderHUD() string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(12)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	focused := m.FocusedBody()

	if focused != nil {
		b.WriteString(headerStyle.Render(fmt.Sprintf("◆ %s", focused.Def.Name)))
		b.WriteString("  ")
		b.WriteString(labelStyle.Render("Distance:"))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.3f AU", focused.DistanceAU)))
		b.WriteString("  ")
		b.WriteString(labelStyle.Render("Light Time:"))
		b.WriteString(valueStyle.Render(astro.FormatLightTime(focused.LightTimeSec())))
	} else {
		b.WriteString(headerStyle.Render("☉ Sun"))
		b.WriteString("  ")
		b.WriteString(dimStyle.Render("(center of solar system)"))
	}
	b.WriteString("\n")

	if focused != nil {
		b.WriteString(labelStyle.Render("Ecl Lon:"))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.1f°", focused.EclipticLonDeg())))
		b.WriteString("  ")
		b.WriteString(labelStyle.Render("Spin:"))
		b.WriteString(valueStyle.Render(formatSpin(focused.SpinAngle, focused.Def.RotationPeriodHours)))
		b.WriteString("  ")
	}

	modeName := ""
	switch m.scaleMode {
	case astro.ScaleLogR:
		modeName = "Log"
	case astro.ScaleInner:
		modeName = "Inner"
	case astro.ScaleOuter:
		modeName = "Outer"
	}

	labelName := ""
	switch m.labelMode {
	case LabelNone:
		labelName = "off"
	case LabelFocused:
		labelName = "focus"
	case LabelAll:
		labelName = "all"
	}

	b.WriteString(dimStyle.Render("Mode:"))
	b.WriteString(valueStyle.Render(modeName))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Zoom:"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.2gx", m.scale())))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Labels:"))
	b.WriteString(valueStyle.Render(labelName))

	return b.String()
}

// formatSpin renders an accumulated spin angle as wrapped degrees, marking
// retrograde rotators.
func formatSpin(angle, periodHours float64) string {
	deg := math.Mod(angle*180/math.Pi, 360)
	if deg < 0 {
		deg += 360
	}
	if periodHours < 0 {
		return fmt.Sprintf("%.0f° ↺", deg)
	}
	return fmt.Sprintf("%.0f°", deg)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
