// Package utils provides small helpers shared by the renderer and the formatters.
//
// It contains:
//   - Hex color parsing and normalized RGB colors
//   - Time formatting for export metadata
package utils
