// Package hover tracks which histogram bin the pointer is over and drives the
// tooltip for it.
package hover

import (
	"github.com/janekbaraniewski/hourslens/internal/binning"
	"github.com/janekbaraniewski/hourslens/internal/chart"
	"github.com/janekbaraniewski/hourslens/internal/scale"
)

// Surface receives the side effects of hover transitions.
type Surface interface {
	ShowTooltip(Tooltip)
	HideTooltip()
	HighlightBar(index int)
	ClearHighlight()
}

// Context is what a Machine needs from the chart it is attached to.
type Context struct {
	X       scale.Linear
	Y       scale.Linear
	Margin  chart.Margin
	Bins    []binning.Bin
	Surface Surface
}

// NewContext wires a laid-out chart to a surface.
func NewContext(l chart.Layout, s Surface) Context {
	return Context{
		X:       l.X,
		Y:       l.Y,
		Margin:  l.Dimensions.Margin,
		Bins:    l.Bins,
		Surface: s,
	}
}

// Machine is Idle or Active on exactly one bin. It is not safe for concurrent
// use; the UI event loop owns it.
type Machine struct {
	ctx    Context
	active int
}

func NewMachine(ctx Context) *Machine {
	return &Machine{ctx: ctx, active: -1}
}

// Active returns the hovered bin.
func (m *Machine) Active() (int, bool) {
	return m.active, m.active >= 0
}

// Enter activates bin i. If another bin is active it is left first, so the
// surface always sees hide before show. Entering the active bin again or an
// unknown bin does nothing.
func (m *Machine) Enter(i int) bool {
	if i == m.active && i >= 0 {
		return false
	}
	tip, ok := Summarize(m.ctx, i)
	if !ok {
		return false
	}
	m.Leave()
	m.active = i
	if s := m.ctx.Surface; s != nil {
		s.HighlightBar(i)
		s.ShowTooltip(tip)
	}
	return true
}

// Leave returns to Idle.
func (m *Machine) Leave() bool {
	if m.active < 0 {
		return false
	}
	m.active = -1
	if s := m.ctx.Surface; s != nil {
		s.HideTooltip()
		s.ClearHighlight()
	}
	return true
}

// Track turns a pointer position, already hit-tested to a listener region,
// into transitions. over is false when the pointer is outside every region.
func (m *Machine) Track(i int, over bool) {
	if !over || i < 0 || i >= len(m.ctx.Bins) {
		m.Leave()
		return
	}
	m.Enter(i)
}
