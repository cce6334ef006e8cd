package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/rbdyn/internal/dynamics"
	"github.com/san-kum/rbdyn/internal/multibody"
)

const (
	positionStep = 0.05
	velocityStep = 0.25
	historyLen   = 48
)

// Explorer is a Bubble Tea model showing the gravity, nonlinear and Coriolis
// torques of a model while the user moves one coordinate at a time.
type Explorer struct {
	name  string
	model *multibody.Model[float64]
	data  *multibody.Data[float64]

	q, v   []float64
	labels []string
	owner  []int // joint owning each tangent coordinate
	cursor int

	g, nle  []float64
	kinetic float64
	gravity float64
	history [][]float64

	theme  int
	styles styles
	width  int
}

func NewExplorer(name string, m *multibody.Model[float64]) *Explorer {
	e := &Explorer{
		name:    name,
		model:   m,
		data:    multibody.NewData(m),
		q:       m.NeutralConfiguration(),
		v:       make([]float64, m.NV),
		owner:   make([]int, m.NV),
		history: make([][]float64, m.NV),
		styles:  newStyles(Themes[0]),
		width:   80,
	}
	for i := 1; i < m.NJoints; i++ {
		j := m.Joints[i]
		for k := 0; k < j.NV(); k++ {
			e.owner[j.IdxV()+k] = i
			label := m.Names[i]
			if j.NV() > 1 {
				label = fmt.Sprintf("%s[%d]", label, k)
			}
			e.labels = append(e.labels, label)
		}
	}
	e.recompute()
	return e
}

func (e *Explorer) Init() tea.Cmd { return nil }

func (e *Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		e.width = msg.Width
	case tea.KeyMsg:
		return e, e.handleKey(msg.String())
	}
	return e, nil
}

func (e *Explorer) handleKey(key string) tea.Cmd {
	switch key {
	case "q", "ctrl+c", "esc":
		return tea.Quit
	case "up", "k":
		if e.cursor > 0 {
			e.cursor--
		}
		return nil
	case "down", "j":
		if e.cursor < e.model.NV-1 {
			e.cursor++
		}
		return nil
	case "left", "h":
		e.nudgePosition(-positionStep)
	case "right", "l":
		e.nudgePosition(positionStep)
	case "[":
		e.v[e.cursor] -= velocityStep
	case "]":
		e.v[e.cursor] += velocityStep
	case "z":
		clear(e.v)
	case "n":
		e.q = e.model.NeutralConfiguration()
		clear(e.v)
	case "t":
		e.theme = (e.theme + 1) % len(Themes)
		e.styles = newStyles(Themes[e.theme])
		return nil
	default:
		return nil
	}
	e.recompute()
	return nil
}

// nudgePosition moves the selected coordinate when its joint has matching
// configuration and tangent dimensions. Other joints only take velocities.
func (e *Explorer) nudgePosition(delta float64) {
	if e.model.NV == 0 {
		return
	}
	j := e.model.Joints[e.owner[e.cursor]]
	if j.NQ() != j.NV() {
		return
	}
	e.q[j.IdxQ()+e.cursor-j.IdxV()] += delta
}

func (e *Explorer) recompute() {
	m, d := e.model, e.data
	e.g = append(e.g[:0], dynamics.GeneralizedGravity(m, d, e.q)...)
	e.nle = append(e.nle[:0], dynamics.NonlinearEffects(m, d, e.q, e.v)...)
	e.kinetic = dynamics.KineticEnergy(m, d, e.q, e.v)
	e.gravity = dynamics.PotentialEnergy(m, d, e.q)

	for k := range e.history {
		e.history[k] = append(e.history[k], e.nle[k])
		if len(e.history[k]) > historyLen {
			e.history[k] = e.history[k][1:]
		}
	}
}

func (e *Explorer) View() string {
	s := e.styles
	var b strings.Builder

	b.WriteString(s.title.Render("rbdyn explorer") + s.label.Render("  "+e.name+"  theme "+Themes[e.theme].Name))
	b.WriteString("\n" + s.Separator(min(e.width, 72)) + "\n")
	b.WriteString(s.label.Render(fmt.Sprintf("%-14s %9s %9s %10s %10s %10s", "coord", "q", "v", "g", "nle", "nle-g")) + "\n")

	for k := 0; k < e.model.NV; k++ {
		j := e.model.Joints[e.owner[k]]
		qs := "       --"
		if j.NQ() == j.NV() {
			qs = fmt.Sprintf("%9.3f", e.q[j.IdxQ()+k-j.IdxV()])
		}
		line := fmt.Sprintf("%-14s %s %9.3f %10.4f %10.4f %10.4f",
			e.labels[k], qs, e.v[k], e.g[k], e.nle[k], e.nle[k]-e.g[k])
		if k == e.cursor {
			b.WriteString(s.selected.Render("› "+line) + "\n")
		} else {
			b.WriteString(s.value.Render("  "+line) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(s.label.Render("kinetic ") + s.value.Render(fmt.Sprintf("%.4f", e.kinetic)))
	b.WriteString(s.label.Render("   potential ") + s.value.Render(fmt.Sprintf("%.4f", e.gravity)))
	b.WriteString(s.label.Render("   total ") + s.value.Render(fmt.Sprintf("%.4f", e.kinetic+e.gravity)))
	b.WriteString("\n\n")

	if e.model.NV > 0 {
		b.WriteString(s.label.Render("nle "+e.labels[e.cursor]+"  "))
		b.WriteString(s.Sparkline(e.history[e.cursor], historyLen) + "\n")
	}

	b.WriteString("\n" + s.hint.Render("↑↓ select  ←→ q  [ ] v  z zero v  n neutral  t theme  q quit"))
	return s.panel.Render(b.String())
}
