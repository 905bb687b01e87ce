package formatter

import (
	"encoding/json"

	"github.com/theoremus-urban-solutions/transit-directions/geo"
	"github.com/theoremus-urban-solutions/transit-directions/render"
	"github.com/theoremus-urban-solutions/transit-directions/scene"
)

// BuildGeoJSON serializes the scene as a GeoJSON FeatureCollection.
// Stroke and marker properties follow the simplestyle names.
func (sb *sceneBuilder) BuildGeoJSON(snap scene.Snapshot) ([]byte, error) {
	return json.Marshal(sb.document(snap))
}

// document builds the collection from maps and []any only, so the same tree
// can be handed to structpb.
func (sb *sceneBuilder) document(snap scene.Snapshot) map[string]any {
	features := make([]any, 0, len(snap.Polylines)+len(snap.Markers))
	for _, p := range snap.Polylines {
		features = append(features, polylineFeature(p))
	}
	for _, m := range snap.Markers {
		features = append(features, markerFeature(m))
	}

	doc := map[string]any{
		"type":     "FeatureCollection",
		"features": features,
		"properties": map[string]any{
			"generated_at": sb.generatedAt,
			"camera": map[string]any{
				"center": point(snap.Camera.Target),
				"zoom":   snap.Camera.Zoom,
			},
			"viewport_fits": snap.FitCount,
		},
	}
	if v := snap.Viewport; v != nil {
		doc["bbox"] = []any{
			v.Bounds.SouthWest.Lng, v.Bounds.SouthWest.Lat,
			v.Bounds.NorthEast.Lng, v.Bounds.NorthEast.Lat,
		}
		doc["properties"].(map[string]any)["insets"] = map[string]any{
			"top":    v.Insets.Top,
			"left":   v.Insets.Left,
			"bottom": v.Insets.Bottom,
			"right":  v.Insets.Right,
		}
	}
	return doc
}

func polylineFeature(p render.Polyline) map[string]any {
	coords := make([]any, 0, len(p.Path))
	for _, c := range p.Path {
		coords = append(coords, point(c))
	}
	props := map[string]any{
		"kind":           "polyline",
		"step":           p.Step,
		"travel_mode":    p.TravelMode,
		"stroke":         p.StrokeColor.Hex(),
		"stroke-opacity": p.StrokeColor.A,
		"stroke-width":   p.StrokeWidth,
		"length_m":       geo.PathLength(p.Path),
	}
	if p.Dashed() {
		spans := make([]any, 0, len(p.Spans))
		for _, s := range p.Spans {
			spans = append(spans, map[string]any{
				"color":   s.Color.Hex(),
				"opacity": s.Color.A,
				"length":  s.Length,
			})
		}
		props["dash_pattern"] = spans
	}
	return map[string]any{
		"type":       "Feature",
		"geometry":   map[string]any{"type": "LineString", "coordinates": coords},
		"properties": props,
	}
}

func markerFeature(m render.Marker) map[string]any {
	props := map[string]any{
		"kind":         "marker",
		"step":         m.Step,
		"icon":         m.Icon.Kind.String(),
		"marker-color": m.Icon.Color.Hex(),
		"marker-size":  m.Icon.Diameter,
		"border-width": m.Icon.BorderWidth,
		"z_index":      m.ZIndex,
	}
	if m.Title != "" {
		props["title"] = m.Title
	}
	return map[string]any{
		"type":       "Feature",
		"geometry":   map[string]any{"type": "Point", "coordinates": point(m.Position)},
		"properties": props,
	}
}

// point is a GeoJSON position, longitude first.
func point(c geo.LatLng) []any {
	return []any{c.Lng, c.Lat}
}
