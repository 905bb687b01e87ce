package formatter

import (
	"strconv"
	"strings"

	"github.com/theoremus-urban-solutions/transit-directions/geo"
	"github.com/theoremus-urban-solutions/transit-directions/render"
	"github.com/theoremus-urban-solutions/transit-directions/scene"
	"github.com/theoremus-urban-solutions/transit-directions/utils"
)

// BuildKML serializes the scene as a KML document. KML has no dash styles,
// so dashed lines keep their solid span color and note the pattern in the
// description.
func (sb *sceneBuilder) BuildKML(snap scene.Snapshot) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString(`<kml xmlns="http://www.opengis.net/kml/2.2">`)
	b.WriteString("<Document>")
	b.WriteString("<name>Transit directions</name>")
	b.WriteString("<description>")
	b.WriteString(xmlEscape("generated " + sb.generatedAt))
	b.WriteString("</description>")

	if v := snap.Viewport; v != nil {
		writeRegionXML(&b, v.Bounds)
	}
	for i, p := range snap.Polylines {
		writePolylineXML(&b, i, p)
	}
	for i, m := range snap.Markers {
		writeMarkerXML(&b, i, m)
	}

	b.WriteString("</Document>")
	b.WriteString("</kml>")
	return []byte(b.String())
}

func writeRegionXML(b *strings.Builder, bounds geo.Bounds) {
	b.WriteString("<Region><LatLonAltBox>")
	writeTagXML(b, "north", formatFloat(bounds.NorthEast.Lat))
	writeTagXML(b, "south", formatFloat(bounds.SouthWest.Lat))
	writeTagXML(b, "east", formatFloat(bounds.NorthEast.Lng))
	writeTagXML(b, "west", formatFloat(bounds.SouthWest.Lng))
	b.WriteString("</LatLonAltBox></Region>")
}

func writePolylineXML(b *strings.Builder, i int, p render.Polyline) {
	styleID := "line-" + strconv.Itoa(i)
	b.WriteString(`<Style id="` + styleID + `"><LineStyle>`)
	writeTagXML(b, "color", kmlColor(p.StrokeColor))
	writeTagXML(b, "width", formatFloat(p.StrokeWidth))
	b.WriteString("</LineStyle></Style>")

	b.WriteString("<Placemark>")
	writeTagXML(b, "name", "Step "+strconv.Itoa(p.Step+1)+" "+strings.ToLower(p.TravelMode))
	if p.Dashed() {
		parts := make([]string, 0, len(p.Spans))
		for _, s := range p.Spans {
			parts = append(parts, formatFloat(s.Length))
		}
		writeTagXML(b, "description", "dashed "+strings.Join(parts, "/"))
	}
	writeTagXML(b, "styleUrl", "#"+styleID)
	b.WriteString("<LineString><tessellate>1</tessellate><coordinates>")
	for j, c := range p.Path {
		if j > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(formatFloat(c.Lng))
		b.WriteByte(',')
		b.WriteString(formatFloat(c.Lat))
	}
	b.WriteString("</coordinates></LineString>")
	b.WriteString("</Placemark>")
}

func writeMarkerXML(b *strings.Builder, i int, m render.Marker) {
	styleID := "marker-" + strconv.Itoa(i)
	b.WriteString(`<Style id="` + styleID + `"><IconStyle>`)
	writeTagXML(b, "color", kmlColor(m.Icon.Color))
	b.WriteString("</IconStyle></Style>")

	b.WriteString("<Placemark>")
	if m.Title != "" {
		writeTagXML(b, "name", m.Title)
	}
	writeTagXML(b, "description", m.Icon.Kind.String()+" z"+strconv.Itoa(m.ZIndex))
	writeTagXML(b, "styleUrl", "#"+styleID)
	b.WriteString("<Point><coordinates>")
	b.WriteString(formatFloat(m.Position.Lng))
	b.WriteByte(',')
	b.WriteString(formatFloat(m.Position.Lat))
	b.WriteString("</coordinates></Point>")
	b.WriteString("</Placemark>")
}

func writeTagXML(b *strings.Builder, tag, value string) {
	b.WriteString("<" + tag + ">")
	b.WriteString(xmlEscape(value))
	b.WriteString("</" + tag + ">")
}

// kmlColor is aabbggrr.
func kmlColor(c utils.Color) string {
	r, g, bl := c.RGB8()
	a := uint8(c.A*255 + 0.5)
	const hex = "0123456789abcdef"
	out := make([]byte, 0, 8)
	for _, v := range []uint8{a, bl, g, r} {
		out = append(out, hex[v>>4], hex[v&0xf])
	}
	return string(out)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func xmlEscape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(s)
}
