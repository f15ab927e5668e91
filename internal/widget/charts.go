package widget

import (
	"go.uber.org/zap"

	"github.com/retailscope/retailscope/internal/model"
	"github.com/retailscope/retailscope/pkg/logger"
)

// Canvas is what a chart needs from the page: its element and the size of
// the enclosing .chart-container.
type Canvas struct {
	ID          string
	InContainer bool
	Width       int
	Height      int
}

// Surface looks up canvases by element id
type Surface interface {
	Canvas(id string) (Canvas, bool)
}

// MapSurface is a Surface backed by a map, keyed by canvas id
type MapSurface map[string]Canvas

// Canvas implements Surface
func (m MapSurface) Canvas(id string) (Canvas, bool) {
	c, ok := m[id]
	return c, ok
}

// Instance is one constructed chart
type Instance struct {
	Spec       model.ChartSpec
	Width      int
	Height     int
	Generation int
	destroyed  bool
}

// Destroy releases the chart
func (i *Instance) Destroy() {
	i.destroyed = true
}

// Destroyed reports whether Destroy was called
func (i *Instance) Destroyed() bool {
	return i.destroyed
}

// ChartSet owns the document's charts. Every Render destroys the previous
// instances and builds new ones from the literal specs; nothing is reflowed.
type ChartSet struct {
	specs      []model.ChartSpec
	instances  []*Instance
	generation int
}

// NewChartSet creates a chart set for specs. No chart exists until Render.
func NewChartSet(specs []model.ChartSpec) *ChartSet {
	return &ChartSet{specs: specs}
}

// Render rebuilds every chart against surface and returns how many were built.
// A chart whose canvas or container is missing is logged and skipped.
func (c *ChartSet) Render(surface Surface) int {
	for _, inst := range c.instances {
		if inst != nil {
			inst.Destroy()
		}
	}

	c.generation++
	c.instances = make([]*Instance, len(c.specs))
	built := 0
	for i, spec := range c.specs {
		c.instances[i] = c.create(surface, spec)
		if c.instances[i] != nil {
			built++
		}
	}
	return built
}

func (c *ChartSet) create(surface Surface, spec model.ChartSpec) *Instance {
	canvas, ok := surface.Canvas(spec.Canvas)
	if !ok || !canvas.InContainer {
		logger.Error("Canvas or container not found",
			zap.String("canvas", spec.Canvas),
			zap.Int("generation", c.generation),
		)
		return nil
	}
	return &Instance{
		Spec:       spec,
		Width:      canvas.Width,
		Height:     canvas.Height,
		Generation: c.generation,
	}
}

// Generation returns how many times Render has run
func (c *ChartSet) Generation() int {
	return c.generation
}

// Instances returns the charts built by the latest Render
func (c *ChartSet) Instances() []*Instance {
	out := make([]*Instance, 0, len(c.instances))
	for _, inst := range c.instances {
		if inst != nil {
			out = append(out, inst)
		}
	}
	return out
}
