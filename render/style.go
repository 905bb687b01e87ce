package render

import (
	"github.com/theoremus-urban-solutions/transit-directions/directions"
	"github.com/theoremus-urban-solutions/transit-directions/utils"
)

const (
	StrokeWidth     = 5
	DashLength      = 25
	ViewportPadding = 30

	markerDiameter    = 20
	markerBorderWidth = 5

	zIndexWalking = 0
	zIndexTransit = 1
)

// stepStyle is everything about a step's appearance that depends on its mode.
type stepStyle struct {
	color      utils.Color
	spans      []StyleSpan
	startIcon  IconKind
	endIcon    IconKind
	zIndex     int
	startTitle string
	endTitle   string
}

// styleForStep derives the style from the step alone. A transit line color
// that does not parse is returned as an error.
func styleForStep(step directions.Step, id string, warnings *WarningAggregator) (stepStyle, error) {
	switch step.TravelMode {
	case directions.TravelModeWalking:
		return stepStyle{
			color: utils.DarkGray,
			spans: []StyleSpan{
				{Color: utils.DarkGray, Length: DashLength},
				{Color: utils.Transparent, Length: DashLength},
			},
			startIcon: IconOutlinedCircle,
			endIcon:   IconFilledCircle,
			zIndex:    zIndexWalking,
		}, nil

	case directions.TravelModeTransit:
		st := stepStyle{
			color:     utils.Blue,
			startIcon: IconRing,
			endIcon:   IconRing,
			zIndex:    zIndexTransit,
		}
		if td := step.Transit; td != nil {
			if td.Line.Color != "" {
				c, err := utils.ParseHexColor(td.Line.Color)
				if err != nil {
					return stepStyle{}, err
				}
				st.color = c
			} else {
				warnings.Add(WarningNoLineColor, id)
			}
			line := td.Line.ShortName
			if line == "" {
				line = td.Line.Name
			}
			if line == "" {
				warnings.Add(WarningNoLineName, id)
			} else {
				st.startTitle = line + " from " + td.DepartureStop.Name
				st.endTitle = line + " to " + td.ArrivalStop.Name
			}
		} else {
			// Decoded responses always carry details; hand-built ones may not.
			warnings.Add(WarningNoLineColor, id)
		}
		return st, nil

	default:
		warnings.Add(WarningUnknownMode, id+" ("+step.TravelMode+")")
		return stepStyle{
			color:     utils.DarkGray,
			startIcon: IconCircle,
			endIcon:   IconCircle,
			zIndex:    zIndexWalking,
		}, nil
	}
}

func (st stepStyle) icon(kind IconKind) Icon {
	return Icon{
		Kind:        kind,
		Color:       st.color,
		Diameter:    markerDiameter,
		BorderWidth: markerBorderWidth,
	}
}
