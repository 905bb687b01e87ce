package render

import (
	"sync"

	"github.com/theoremus-urban-solutions/transit-directions/geo"
	"github.com/theoremus-urban-solutions/transit-directions/utils"
)

// OverlayID identifies a polyline or marker on a Surface. Zero is never a
// valid id.
type OverlayID int64

// Size is the visible size of the map in screen points.
type Size struct {
	Width  float64
	Height float64
}

// Insets are the edge paddings of a viewport fit in screen points.
type Insets struct {
	Top    float64
	Left   float64
	Bottom float64
	Right  float64
}

// StyleSpan is one segment of a repeating stroke pattern, Length in screen points.
type StyleSpan struct {
	Color  utils.Color
	Length float64
}

// Polyline is a path overlay. When Spans is non-empty the spans repeat along
// the path and replace StrokeColor.
type Polyline struct {
	Path        []geo.LatLng
	StrokeWidth float64
	StrokeColor utils.Color
	Spans       []StyleSpan
	TravelMode  string
	Step        int
}

// Dashed reports whether the line uses a repeating pattern.
func (p Polyline) Dashed() bool {
	return len(p.Spans) > 1
}

// IconKind selects the marker drawing for a step end.
type IconKind int

const (
	IconCircle IconKind = iota
	IconOutlinedCircle
	IconFilledCircle
	IconRing
)

func (k IconKind) String() string {
	switch k {
	case IconOutlinedCircle:
		return "outlined-circle"
	case IconFilledCircle:
		return "filled-circle"
	case IconRing:
		return "ring"
	default:
		return "circle"
	}
}

// Icon is the custom marker view: a 20pt circle with a 5pt border.
type Icon struct {
	Kind        IconKind
	Color       utils.Color
	Diameter    float64
	BorderWidth float64
}

// Marker is a point overlay at a step start or end.
type Marker struct {
	Position geo.LatLng
	Icon     Icon
	ZIndex   int
	Title    string
	Step     int
}

// Surface is the map view the renderer draws on.
type Surface interface {
	AddPolyline(Polyline) OverlayID
	AddMarker(Marker) OverlayID
	Remove(OverlayID)
	FitBounds(geo.Bounds, Insets)
	DisplaySize() Size
}

// Handle guards a Surface owned by a screen. After Invalidate every call is a
// no-op, so a late render cannot reach a torn down map.
type Handle struct {
	mu      sync.Mutex
	surface Surface
}

// NewHandle wraps s until Invalidate is called.
func NewHandle(s Surface) *Handle {
	return &Handle{surface: s}
}

// Invalidate detaches the surface. It is safe to call more than once.
func (h *Handle) Invalidate() {
	h.mu.Lock()
	h.surface = nil
	h.mu.Unlock()
}

// Valid reports whether the surface is still attached.
func (h *Handle) Valid() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.surface != nil
}

func (h *Handle) get() Surface {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.surface
}

func (h *Handle) AddPolyline(p Polyline) OverlayID {
	if s := h.get(); s != nil {
		return s.AddPolyline(p)
	}
	return 0
}

func (h *Handle) AddMarker(m Marker) OverlayID {
	if s := h.get(); s != nil {
		return s.AddMarker(m)
	}
	return 0
}

func (h *Handle) Remove(id OverlayID) {
	if s := h.get(); s != nil {
		s.Remove(id)
	}
}

func (h *Handle) FitBounds(b geo.Bounds, in Insets) {
	if s := h.get(); s != nil {
		s.FitBounds(b, in)
	}
}

func (h *Handle) DisplaySize() Size {
	if s := h.get(); s != nil {
		return s.DisplaySize()
	}
	return Size{}
}
