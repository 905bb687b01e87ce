// Package formatter exports a rendered scene for viewing outside the app.
//
// This package is organized into:
// - formatter.go: format selection
// - json.go: GeoJSON FeatureCollection
// - xml.go: KML document, written by hand with proper escaping
// - proto.go: the GeoJSON document as a protobuf Struct
package formatter
