// Package render turns a directions route into map overlays.
//
// For the selected route the Renderer fits the viewport to the route bounds
// once, then adds a polyline plus a start and an end marker for every step of
// the first leg, in step order. Styling depends only on the step's own travel
// mode:
//   - WALKING: dashed dark gray line, outlined start and filled end circles, z-index 0
//   - TRANSIT: solid line in the published line color, ring markers in that color, z-index 1
//   - anything else: solid dark gray line, plain circles, z-index 0
//
// The whole plan is built before the surface is touched, so a malformed step
// leaves the previous rendering in place. Each render removes the overlays of
// the previous one.
package render
