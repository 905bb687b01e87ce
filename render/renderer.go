package render

import (
	"log"
	"strconv"

	"github.com/theoremus-urban-solutions/transit-directions/directions"
)

// Options select what is rendered.
type Options struct {
	// RouteIndex picks one of the alternatives, 0 is the recommended route.
	RouteIndex int
}

// Renderer draws one route at a time. It remembers the overlays it placed
// so the next Render or Clear removes them. Not safe for concurrent use; call
// it from the goroutine that owns the surface.
type Renderer struct {
	opts    Options
	surface Surface
	placed  []OverlayID
}

// NewRenderer returns a renderer that has drawn nothing yet.
func NewRenderer(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Render replaces whatever this renderer drew before with the selected route
// of resp. On error the surface is left unchanged.
func (r *Renderer) Render(resp *directions.Response, s Surface) error {
	if h, ok := s.(*Handle); ok && !h.Valid() {
		return nil
	}

	route, err := resp.Route(r.opts.RouteIndex)
	if err != nil {
		return err
	}
	plan, err := PlanRoute(route)
	if err != nil {
		return err
	}

	r.Clear()
	r.surface = s

	size := s.DisplaySize()
	s.FitBounds(plan.Bounds, Insets{
		Top:    ViewportPadding,
		Left:   ViewportPadding,
		Right:  ViewportPadding,
		Bottom: size.Height / 2,
	})

	for _, step := range plan.Steps {
		r.add(s.AddPolyline(step.Polyline))
		r.add(s.AddMarker(step.Start))
		r.add(s.AddMarker(step.End))
	}

	plan.Warnings.LogAll(strconv.Itoa(r.opts.RouteIndex))
	log.Printf("rendered route %d: %d steps, %d overlays", r.opts.RouteIndex, len(plan.Steps), len(r.placed))
	return nil
}

// Clear removes every overlay placed by the last Render.
func (r *Renderer) Clear() {
	if r.surface != nil {
		for _, id := range r.placed {
			r.surface.Remove(id)
		}
	}
	r.placed = r.placed[:0]
}

// Placed returns the number of overlays currently owned by the renderer.
func (r *Renderer) Placed() int {
	return len(r.placed)
}

func (r *Renderer) add(id OverlayID) {
	if id != 0 {
		r.placed = append(r.placed, id)
	}
}
