// Package geo holds the coordinate and bounding box types shared by the
// directions client, the renderer and the formatters.
package geo
