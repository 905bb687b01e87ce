package render

import (
	"fmt"
	"log"
	"sort"
	"strings"
)

// Warning type constants
const (
	WarningNoLineColor   = "no_line_color"
	WarningUnknownMode   = "unknown_travel_mode"
	WarningEmptyPolyline = "empty_polyline"
	WarningNoLineName    = "no_line_name"
)

// warningInfo holds aggregated information about a specific warning type
type warningInfo struct {
	count    int
	examples []string
}

// WarningAggregator collects non-fatal rendering issues and outputs one
// consolidated line per issue type
type WarningAggregator struct {
	warnings map[string]*warningInfo
}

// NewWarningAggregator creates a new warning aggregator
func NewWarningAggregator() *WarningAggregator {
	return &WarningAggregator{
		warnings: make(map[string]*warningInfo),
	}
}

// Add records a warning occurrence with an example ID
func (w *WarningAggregator) Add(warningType, exampleID string) {
	if w.warnings[warningType] == nil {
		w.warnings[warningType] = &warningInfo{
			examples: make([]string, 0, 3),
		}
	}

	info := w.warnings[warningType]
	info.count++

	// Store up to 3 examples
	if len(info.examples) < 3 {
		info.examples = append(info.examples, exampleID)
	}
}

// Count returns the occurrences of warningType
func (w *WarningAggregator) Count(warningType string) int {
	if info := w.warnings[warningType]; info != nil {
		return info.count
	}
	return 0
}

// Len returns the number of distinct warning types
func (w *WarningAggregator) Len() int {
	return len(w.warnings)
}

// Messages returns the formatted warnings sorted by type
func (w *WarningAggregator) Messages(routeLabel string) []string {
	types := make([]string, 0, len(w.warnings))
	for t := range w.warnings {
		types = append(types, t)
	}
	sort.Strings(types)

	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, w.formatWarningMessage(t, routeLabel, w.warnings[t]))
	}
	return out
}

// LogAll outputs all collected warnings in consolidated format
func (w *WarningAggregator) LogAll(routeLabel string) {
	for _, message := range w.Messages(routeLabel) {
		log.Printf("%s", message)
	}
}

// formatWarningMessage creates a human-readable warning message
func (w *WarningAggregator) formatWarningMessage(warningType, routeLabel string, info *warningInfo) string {
	var description, action string

	switch warningType {
	case WarningNoLineColor:
		description = "transit steps whose line publishes no color"
		action = "Drawing them in the default blue"
	case WarningUnknownMode:
		description = "steps with a travel mode other than WALKING or TRANSIT"
		action = "Drawing them as solid dark gray lines"
	case WarningEmptyPolyline:
		description = "steps whose polyline decodes to no points"
		action = "Adding markers only"
	case WarningNoLineName:
		description = "transit steps without a line name"
		action = "Leaving marker titles empty"
	default:
		description = "unknown issue"
		action = "Rendering with fallback behavior"
	}

	examplesStr := strings.Join(info.examples, ", ")

	return fmt.Sprintf("Route %s has %s (%d occurrences). %s. Examples: %s",
		routeLabel, description, info.count, action, examplesStr)
}
