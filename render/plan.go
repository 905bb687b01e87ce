package render

import (
	"fmt"

	"github.com/theoremus-urban-solutions/transit-directions/directions"
	"github.com/theoremus-urban-solutions/transit-directions/geo"
	"github.com/theoremus-urban-solutions/transit-directions/polyline"
)

// StepOverlay is what one step adds to the map.
type StepOverlay struct {
	Polyline Polyline
	Start    Marker
	End      Marker
}

// Plan is the complete set of overlays for a route, built without a surface.
type Plan struct {
	Bounds   geo.Bounds
	Steps    []StepOverlay
	Warnings *WarningAggregator
}

// Markers returns start and end markers of every step in drawing order.
func (p Plan) Markers() []Marker {
	out := make([]Marker, 0, 2*len(p.Steps))
	for _, s := range p.Steps {
		out = append(out, s.Start, s.End)
	}
	return out
}

// PlanRoute decodes and styles every step of the route's first leg.
// Undecodable polylines and unparsable line colors are reported as
// MalformedResponseError.
func PlanRoute(route *directions.Route) (Plan, error) {
	plan := Plan{
		Bounds:   route.Bounds,
		Warnings: NewWarningAggregator(),
	}
	steps := route.Steps()
	plan.Steps = make([]StepOverlay, 0, len(steps))

	for i, step := range steps {
		id := fmt.Sprintf("steps[%d]", i)

		path, err := polyline.Decode(step.Polyline)
		if err != nil {
			return Plan{}, &directions.MalformedResponseError{Reason: id + " polyline", Err: err}
		}
		if len(path) == 0 {
			plan.Warnings.Add(WarningEmptyPolyline, id)
		}

		st, err := styleForStep(step, id, plan.Warnings)
		if err != nil {
			return Plan{}, &directions.MalformedResponseError{Reason: id + " line color", Err: err}
		}

		plan.Steps = append(plan.Steps, StepOverlay{
			Polyline: Polyline{
				Path:        path,
				StrokeWidth: StrokeWidth,
				StrokeColor: st.color,
				Spans:       st.spans,
				TravelMode:  step.TravelMode,
				Step:        i,
			},
			Start: Marker{
				Position: step.StartLocation,
				Icon:     st.icon(st.startIcon),
				ZIndex:   st.zIndex,
				Title:    st.startTitle,
				Step:     i,
			},
			End: Marker{
				Position: step.EndLocation,
				Icon:     st.icon(st.endIcon),
				ZIndex:   st.zIndex,
				Title:    st.endTitle,
				Step:     i,
			},
		})
	}
	return plan, nil
}
