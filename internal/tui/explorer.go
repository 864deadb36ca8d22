package tui

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/realfluid/internal/eos"
	"github.com/san-kum/realfluid/internal/process"
)

// Builder constructs the process engine for a fluid name.
type Builder func(fluid string) (*process.Engine, error)

const domeSamples = 48

var fluidInfo = map[string]string{
	"water":   "H₂O  Tc 647.1 K",
	"ammonia": "NH₃  Tc 405.4 K",
	"co2":     "CO₂  Tc 304.1 K",
	"methane": "CH₄  Tc 190.6 K",
}

var paramLabels = map[string]string{
	"temperature":      "T [K]",
	"pressure":         "P [Pa]",
	"quality":          "x",
	"compression":      "compression",
	"heat":             "heat [J/kg]",
	"expansion":        "expansion",
	"compressor_yield": "η compressor",
	"turbine_yield":    "η turbine",
}

type screen int

const (
	screenMenu screen = iota
	screenConfig
	screenExplore
)

type fluidData struct {
	engine *process.Engine
	dome   []domePoint
}

// domePoint is one saturation temperature on the P-h dome.
type domePoint struct {
	T, P   float64
	hl, hv float64
}

type loadedMsg struct {
	fluid string
	data  *fluidData
	err   error
}

type pointInfo struct {
	phase    string
	psat     float64
	tsat     float64
	roots    []float64
	h, s, vm float64
	err      error
}

type model struct {
	screen   screen
	cursor   int
	fluids   []string
	selected string
	build    Builder
	loaded   map[string]*fluidData
	loading  bool
	err      error

	params      map[string]float64
	paramNames  []string
	paramCursor int
	editing     bool
	editBuf     string

	point    pointInfo
	steps    []process.Step
	cycleErr error

	width  int
	height int
}

func NewExplorer(build Builder) *model {
	return &model{
		screen: screenMenu,
		fluids: eos.Fluids(),
		build:  build,
		loaded: map[string]*fluidData{},
		params: map[string]float64{},
		paramNames: []string{
			"temperature", "pressure", "quality",
			"compression", "heat", "expansion", "compressor_yield", "turbine_yield",
		},
		width:  80,
		height: 24,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.loaded[msg.fluid] = msg.data
		m.err = nil
		m.setParamsForFluid()
		m.screen = screenConfig
	}
	return m, nil
}

// load builds the engine and samples its saturation dome off the UI loop.
func load(build Builder, fluid string) tea.Cmd {
	return func() tea.Msg {
		e, err := build(fluid)
		if err != nil {
			return loadedMsg{fluid: fluid, err: err}
		}
		return loadedMsg{fluid: fluid, data: &fluidData{engine: e, dome: sampleDome(e)}}
	}
}

func sampleDome(e *process.Engine) []domePoint {
	c := e.EOS()
	tMin, tMax := c.SaturationRange()
	dome := make([]domePoint, 0, domeSamples)
	for i := 0; i < domeSamples; i++ {
		T := tMin + (tMax-tMin)*float64(i)/domeSamples
		p, err := c.SaturationPressure(T)
		if err != nil {
			continue
		}
		hl, err1 := e.Enthalpy(0, T, p)
		hv, err2 := e.Enthalpy(1, T, p)
		if err1 != nil || err2 != nil {
			continue
		}
		dome = append(dome, domePoint{T: T, P: p, hl: hl, hv: hv})
	}
	return dome
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.screen {
	case screenMenu:
		return m.menuKey(msg)
	case screenConfig:
		return m.configKey(msg)
	case screenExplore:
		return m.exploreKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.loading {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.fluids)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.fluids) == 0 {
			return m, nil
		}
		m.selected = m.fluids[m.cursor]
		if _, ok := m.loaded[m.selected]; ok {
			m.setParamsForFluid()
			m.screen = screenConfig
			return m, nil
		}
		m.loading = true
		m.err = nil
		return m, load(m.build, m.selected)
	}
	return m, nil
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			if val, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
				m.params[m.paramNames[m.paramCursor]] = val
			}
			m.editing = false
			m.editBuf = ""
		case "esc":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "esc":
		m.screen = screenMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(m.paramNames)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing = true
		m.editBuf = strconv.FormatFloat(m.params[m.paramNames[m.paramCursor]], 'g', -1, 64)
	case "left", "h":
		m.adjust(m.paramNames[m.paramCursor], -1)
	case "right", "l":
		m.adjust(m.paramNames[m.paramCursor], 1)
	case "s":
		m.compute()
		m.screen = screenExplore
		return m, tea.ClearScreen
	}
	return m, nil
}

func (m model) exploreKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.screen = screenMenu
		return m, tea.ClearScreen
	case "c":
		m.screen = screenConfig
		return m, tea.ClearScreen
	case "left", "h":
		m.adjust("temperature", -1)
		m.compute()
	case "right", "l":
		m.adjust("temperature", 1)
		m.compute()
	case "up", "k":
		m.adjust("pressure", 1)
		m.compute()
	case "down", "j":
		m.adjust("pressure", -1)
		m.compute()
	}
	return m, nil
}

func (m *model) setParamsForFluid() {
	T := process.DefaultTemperature
	if m.selected != "water" {
		if d, ok := m.loaded[m.selected]; ok {
			T = math.Round(0.6 * d.engine.EOS().Params().Tc)
		}
	}
	m.params = map[string]float64{
		"temperature":      T,
		"pressure":         process.DefaultPressure,
		"quality":          0,
		"compression":      10,
		"heat":             2e6,
		"expansion":        10,
		"compressor_yield": 1,
		"turbine_yield":    1,
	}
	m.paramCursor = 0
}

func (m *model) adjust(name string, dir float64) {
	v := m.params[name]
	switch name {
	case "temperature":
		v += dir
	case "pressure", "compression", "expansion":
		v *= math.Pow(1.1, dir)
	case "heat":
		v += 1e5 * dir
	case "quality", "compressor_yield", "turbine_yield":
		v = math.Max(0, math.Min(1, v+0.05*dir))
	}
	m.params[name] = math.Max(0, v)
}

// compute refreshes the state summary and the cycle for the current params.
func (m *model) compute() {
	d, ok := m.loaded[m.selected]
	if !ok {
		m.point = pointInfo{err: fmt.Errorf("fluid %q not loaded", m.selected)}
		return
	}
	e, c := d.engine, d.engine.EOS()
	T, P, x := m.params["temperature"], m.params["pressure"], m.params["quality"]

	var pt pointInfo
	pt.psat, pt.tsat = math.NaN(), math.NaN()
	keep := func(err error) {
		if err != nil && pt.err == nil {
			pt.err = err
		}
	}

	phase, err := c.Phase(T, P)
	keep(err)
	if err == nil {
		pt.phase = phase.String()
	}
	if T < c.Params().Tc {
		if p, err := c.SaturationPressure(T); err == nil {
			pt.psat = p
		}
	}
	if P < c.Params().Pc {
		if t, err := c.SaturationTemperature(P); err == nil {
			pt.tsat = t
		}
	}

	pt.roots, err = c.ZFactors(T, P)
	keep(err)
	pt.h, err = c.Enthalpy(T, P, x)
	keep(err)
	pt.s, err = c.Entropy(T, P, x)
	keep(err)
	pt.vm, err = c.VolumeMolar(T, P, x)
	keep(err)
	m.point = pt

	m.steps, m.cycleErr = nil, nil
	if pt.err != nil {
		return
	}
	cycle := process.Cycle{
		CompressionRatio: m.params["compression"],
		Heat:             m.params["heat"],
		ExpansionRatio:   m.params["expansion"],
		CompressorYield:  m.params["compressor_yield"],
		TurbineYield:     m.params["turbine_yield"],
	}
	m.steps, m.cycleErr = cycle.Run(e, process.NewState(T, P, pt.h, x))
}

func (m model) View() string {
	switch m.screen {
	case screenMenu:
		return m.viewMenu()
	case screenConfig:
		return m.viewConfig()
	case screenExplore:
		return m.viewExplore()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("          " + cyan.Render("r e a l f l u i d") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.fluids {
		desc := fluidInfo[name]
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-12s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-12s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	switch {
	case m.loading:
		b.WriteString("      " + yellow.Render("building saturation curve for "+m.fluids[m.cursor]+"…") + "\n")
	case m.err != nil:
		b.WriteString("      " + red.Render(m.err.Error()) + "\n")
	}
	b.WriteString(dim.Render("      ↑↓ select   enter open   q quit") + "\n")

	return b.String()
}

func (m model) viewConfig() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render(m.selected) + "  " + dim.Render(fluidInfo[m.selected]) + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 34)) + "\n\n")

	for i, name := range m.paramNames {
		val := fmt.Sprintf("%12.6g", m.params[name])
		if m.editing && i == m.paramCursor {
			val = fmt.Sprintf("%12s", m.editBuf+"▋")
		}
		label := paramLabels[name]
		if i == m.paramCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-14s", label)) + magenta.Render(val) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-14s", label)) + dim.Render(val) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select  ←→ adjust  enter edit  s explore  esc back") + "\n")

	return b.String()
}

func (m model) viewExplore() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("\n   %s  %s\n\n", cyan.Render(m.selected), dim.Render(fluidInfo[m.selected])))

	props := m.viewProperties()
	cycle := m.viewCycle()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, "   ", panel.Render(props), " ", panel.Render(cycle)))
	b.WriteString("\n")

	cw, ch := m.width-8, m.height-22
	if cw < 40 {
		cw = 40
	}
	if ch < 10 {
		ch = 10
	}
	for _, row := range m.diagram(cw, ch) {
		b.WriteString("   " + dim.Render("│") + row + "\n")
	}
	b.WriteString("   " + dim.Render("└"+strings.Repeat("─", cw)) + "\n")
	b.WriteString("    " + dimmer.Render("ln P ↑   h →   ") + magenta.Render("∙ dome") + "  " + green.Render("1-4 cycle") + "\n")

	b.WriteString("\n" + dim.Render("   ←→ T  ↑↓ P  c config  q menu") + "\n")
	return b.String()
}

func (m model) viewProperties() string {
	var b strings.Builder
	pt := m.point
	row := func(label, value string) {
		b.WriteString(dim.Render(fmt.Sprintf("%-8s", label)) + white.Render(value) + "\n")
	}

	row("T", fmt.Sprintf("%.2f K", m.params["temperature"]))
	row("P", fmt.Sprintf("%.6g Pa", m.params["pressure"]))
	if style, ok := phaseStyle[pt.phase]; ok {
		b.WriteString(dim.Render(fmt.Sprintf("%-8s", "phase")) + style.Render(pt.phase) + "\n")
	}
	row("Psat", formatMaybe(pt.psat, "%.6g Pa"))
	row("Tsat", formatMaybe(pt.tsat, "%.2f K"))

	roots := make([]string, len(pt.roots))
	for i, z := range pt.roots {
		roots[i] = fmt.Sprintf("%.4g", z)
	}
	row("Z", strings.Join(roots, " "))
	if pt.err != nil {
		b.WriteString(red.Render(pt.err.Error()))
		return b.String()
	}
	row("h", fmt.Sprintf("%.5g J/kg", pt.h))
	row("s", fmt.Sprintf("%.5g J/kg·K", pt.s))
	row("Vm", fmt.Sprintf("%.4g m³/mol", pt.vm))
	return strings.TrimRight(b.String(), "\n")
}

func (m model) viewCycle() string {
	var b strings.Builder
	b.WriteString(dim.Render(fmt.Sprintf("%-2s %-11s %8s %10s %6s", "", "step", "T [K]", "h [kJ/kg]", "x")) + "\n")
	for i, s := range m.steps {
		b.WriteString(green.Render(strconv.Itoa(i+1)) + " " + white.Render(fmt.Sprintf("%-11s %8.2f %10.1f %6.3f",
			s.Name, s.State.T, s.State.H/1e3, s.State.X)) + "\n")
	}
	if m.cycleErr != nil {
		b.WriteString(red.Render(m.cycleErr.Error()))
	} else if len(m.steps) == 4 {
		b.WriteString(dim.Render("net work ") + cyan.Render(fmt.Sprintf("%.1f kJ/kg", process.NetWork(m.steps)/1e3)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// diagram draws the saturation dome and the cycle on a P-h chart.
func (m model) diagram(w, h int) []string {
	d, ok := m.loaded[m.selected]
	if !ok || len(d.dome) == 0 {
		return newCanvas(w, h, 0, 1, 0, 1).rows()
	}

	hs := []float64{}
	ps := []float64{}
	for _, p := range d.dome {
		hs = append(hs, p.hl, p.hv)
		ps = append(ps, p.P)
	}
	for _, s := range m.steps {
		hs = append(hs, s.State.H)
		ps = append(ps, s.State.P)
	}
	sort.Float64s(hs)
	sort.Float64s(ps)
	hMin, hMax := hs[0], hs[len(hs)-1]
	pad := 0.05 * (hMax - hMin)
	c := newCanvas(w, h, hMin-pad, hMax+pad, math.Log(ps[0]), math.Log(ps[len(ps)-1]))

	for _, p := range d.dome {
		c.plot(p.hl, p.P, '∙')
		c.plot(p.hv, p.P, '∙')
	}
	for i := 1; i < len(m.steps); i++ {
		a, b := m.steps[i-1].State, m.steps[i].State
		c.line(a.H, a.P, b.H, b.P, '·')
	}
	for i, s := range m.steps {
		c.plot(s.State.H, s.State.P, rune('1'+i))
	}

	rows := c.rows()
	for i, row := range rows {
		rows[i] = colorize(row)
	}
	return rows
}

func colorize(row string) string {
	var b strings.Builder
	for _, r := range row {
		switch {
		case r == '∙':
			b.WriteString(magenta.Render(string(r)))
		case r >= '1' && r <= '9':
			b.WriteString(green.Render(string(r)))
		case r == '·':
			b.WriteString(cyan.Render(string(r)))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func formatMaybe(v float64, format string) string {
	if math.IsNaN(v) {
		return "—"
	}
	return fmt.Sprintf(format, v)
}

func RunExplorer(build Builder) error {
	p := tea.NewProgram(NewExplorer(build), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
