package formatter

import (
	"fmt"
	"strings"

	"github.com/theoremus-urban-solutions/transit-directions/scene"
	"github.com/theoremus-urban-solutions/transit-directions/utils"
)

// Supported export formats
const (
	FormatJSON  = "json"
	FormatKML   = "kml"
	FormatProto = "pb"
)

type sceneBuilder struct {
	generatedAt string
}

func newSceneBuilder() *sceneBuilder {
	return &sceneBuilder{generatedAt: utils.Iso8601Now()}
}

// Build serializes snap in the requested format (json, kml or pb)
func Build(snap scene.Snapshot, format string) ([]byte, error) {
	sb := newSceneBuilder()
	switch strings.ToLower(format) {
	case "", FormatJSON, "geojson":
		return sb.BuildGeoJSON(snap)
	case FormatKML, "xml":
		return sb.BuildKML(snap), nil
	case FormatProto, "proto":
		return sb.BuildProto(snap)
	default:
		return nil, fmt.Errorf("unknown format %q (want json, kml or pb)", format)
	}
}
