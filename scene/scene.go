// Package scene is an in-memory map surface. It records overlays and viewport
// fits so a rendering can be inspected or exported.
package scene

import (
	"github.com/theoremus-urban-solutions/transit-directions/geo"
	"github.com/theoremus-urban-solutions/transit-directions/render"
)

// Camera is the initial camera position.
type Camera struct {
	Target geo.LatLng
	Zoom   float64
}

// Viewport is the argument of the latest FitBounds call.
type Viewport struct {
	Bounds geo.Bounds
	Insets render.Insets
}

// Scene implements render.Surface. It is not safe for concurrent use; the
// owning screen mutates it from its main loop only.
type Scene struct {
	camera Camera
	size   render.Size

	nextID    render.OverlayID
	order     []render.OverlayID
	polylines map[render.OverlayID]render.Polyline
	markers   map[render.OverlayID]render.Marker

	viewport *Viewport
	fits     int
}

// New creates an empty scene with the given initial camera and display size.
func New(camera Camera, size render.Size) *Scene {
	return &Scene{
		camera:    camera,
		size:      size,
		polylines: map[render.OverlayID]render.Polyline{},
		markers:   map[render.OverlayID]render.Marker{},
	}
}

func (s *Scene) AddPolyline(p render.Polyline) render.OverlayID {
	id := s.allocate()
	s.polylines[id] = p
	return id
}

func (s *Scene) AddMarker(m render.Marker) render.OverlayID {
	id := s.allocate()
	s.markers[id] = m
	return id
}

func (s *Scene) Remove(id render.OverlayID) {
	_, isLine := s.polylines[id]
	_, isMarker := s.markers[id]
	if !isLine && !isMarker {
		return
	}
	delete(s.polylines, id)
	delete(s.markers, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Scene) FitBounds(b geo.Bounds, in render.Insets) {
	s.viewport = &Viewport{Bounds: b, Insets: in}
	s.fits++
}

func (s *Scene) DisplaySize() render.Size {
	return s.size
}

// FitCount is the number of FitBounds calls so far.
func (s *Scene) FitCount() int {
	return s.fits
}

func (s *Scene) allocate() render.OverlayID {
	s.nextID++
	s.order = append(s.order, s.nextID)
	return s.nextID
}

// Snapshot is an immutable copy of the scene contents in insertion order.
type Snapshot struct {
	Camera    Camera
	Size      render.Size
	Polylines []render.Polyline
	Markers   []render.Marker
	Viewport  *Viewport
	FitCount  int
}

func (s *Scene) Snapshot() Snapshot {
	snap := Snapshot{
		Camera:    s.camera,
		Size:      s.size,
		Polylines: make([]render.Polyline, 0, len(s.polylines)),
		Markers:   make([]render.Marker, 0, len(s.markers)),
		FitCount:  s.fits,
	}
	for _, id := range s.order {
		if p, ok := s.polylines[id]; ok {
			snap.Polylines = append(snap.Polylines, p)
		} else if m, ok := s.markers[id]; ok {
			snap.Markers = append(snap.Markers, m)
		}
	}
	if s.viewport != nil {
		v := *s.viewport
		snap.Viewport = &v
	}
	return snap
}
