package directions

import (
	"encoding/json"
	"fmt"

	"github.com/theoremus-urban-solutions/transit-directions/geo"
)

type wireResponse struct {
	Status       string      `json:"status" validate:"required"`
	ErrorMessage string      `json:"error_message"`
	Routes       []wireRoute `json:"routes" validate:"dive"`
}

type wireRoute struct {
	Summary          string        `json:"summary"`
	Bounds           *wireBounds   `json:"bounds" validate:"required"`
	OverviewPolyline *wireOverview `json:"overview_polyline"`
	Legs             []wireLeg     `json:"legs" validate:"dive"`
	Copyrights       string        `json:"copyrights"`
	Warnings         []string      `json:"warnings"`
}

type wireBounds struct {
	NorthEast *wireLatLng `json:"northeast" validate:"required"`
	SouthWest *wireLatLng `json:"southwest" validate:"required"`
}

type wireLatLng struct {
	Lat *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng *float64 `json:"lng" validate:"required,gte=-180,lte=180"`
}

type wirePolyline struct {
	Points string `json:"points" validate:"required"`
}

type wireOverview struct {
	Points string `json:"points"`
}

type wireMeasure struct {
	Text  string `json:"text"`
	Value int64  `json:"value"`
}

type wireLeg struct {
	StartAddress  string      `json:"start_address"`
	EndAddress    string      `json:"end_address"`
	StartLocation *wireLatLng `json:"start_location"`
	EndLocation   *wireLatLng `json:"end_location"`
	Distance      wireMeasure `json:"distance"`
	Duration      wireMeasure `json:"duration"`
	Steps         []wireStep  `json:"steps" validate:"dive"`
}

type wireStep struct {
	TravelMode       string              `json:"travel_mode" validate:"required"`
	StartLocation    *wireLatLng         `json:"start_location" validate:"required"`
	EndLocation      *wireLatLng         `json:"end_location" validate:"required"`
	Polyline         *wirePolyline       `json:"polyline" validate:"required"`
	HTMLInstructions string              `json:"html_instructions"`
	Distance         wireMeasure         `json:"distance"`
	Duration         wireMeasure         `json:"duration"`
	TransitDetails   *wireTransitDetails `json:"transit_details"`
}

type wireTransitDetails struct {
	Line          wireLine `json:"line"`
	DepartureStop wireStop `json:"departure_stop"`
	ArrivalStop   wireStop `json:"arrival_stop"`
	Headsign      string   `json:"headsign"`
	NumStops      int      `json:"num_stops"`
}

type wireLine struct {
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Color     string `json:"color"`
	TextColor string `json:"text_color"`
	Vehicle   struct {
		Type string `json:"type"`
		Name string `json:"name"`
	} `json:"vehicle"`
}

type wireStop struct {
	Name     string      `json:"name"`
	Location *wireLatLng `json:"location"`
}

// DecodeResponse parses and validates a directions JSON body.
// ZERO_RESULTS and NOT_FOUND yield a Response without routes; any other
// non-OK status is an APIError.
func DecodeResponse(body []byte) (*Response, error) {
	var w wireResponse
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, malformed("invalid JSON", err)
	}
	switch w.Status {
	case StatusOK, StatusZeroResults, StatusNotFound:
	case "":
		return nil, malformed("missing status", nil)
	default:
		return nil, &APIError{Status: w.Status, Message: w.ErrorMessage}
	}
	if err := validate.Struct(w); err != nil {
		return nil, malformed("schema validation failed", err)
	}

	res := &Response{Status: w.Status, Routes: make([]Route, 0, len(w.Routes))}
	for ri, wr := range w.Routes {
		route, err := convertRoute(wr)
		if err != nil {
			return nil, malformed(fmt.Sprintf("routes[%d]", ri), err)
		}
		res.Routes = append(res.Routes, route)
	}
	return res, nil
}

func convertRoute(wr wireRoute) (Route, error) {
	r := Route{
		Summary:    wr.Summary,
		Bounds:     geo.Bounds{NorthEast: wr.Bounds.NorthEast.latLng(), SouthWest: wr.Bounds.SouthWest.latLng()},
		Copyrights: wr.Copyrights,
		Warnings:   wr.Warnings,
		Legs:       make([]Leg, 0, len(wr.Legs)),
	}
	if wr.OverviewPolyline != nil {
		r.OverviewPolyline = wr.OverviewPolyline.Points
	}
	for li, wl := range wr.Legs {
		leg := Leg{
			StartAddress:  wl.StartAddress,
			EndAddress:    wl.EndAddress,
			StartLocation: wl.StartLocation.latLng(),
			EndLocation:   wl.EndLocation.latLng(),
			Distance:      Measure(wl.Distance),
			Duration:      Measure(wl.Duration),
			Steps:         make([]Step, 0, len(wl.Steps)),
		}
		for si, ws := range wl.Steps {
			if ws.TravelMode == TravelModeTransit && ws.TransitDetails == nil {
				return Route{}, fmt.Errorf("legs[%d].steps[%d]: transit step without transit_details", li, si)
			}
			leg.Steps = append(leg.Steps, convertStep(ws))
		}
		r.Legs = append(r.Legs, leg)
	}
	return r, nil
}

func convertStep(ws wireStep) Step {
	s := Step{
		TravelMode:    ws.TravelMode,
		StartLocation: ws.StartLocation.latLng(),
		EndLocation:   ws.EndLocation.latLng(),
		Polyline:      ws.Polyline.Points,
		Instructions:  ws.HTMLInstructions,
		Distance:      Measure(ws.Distance),
		Duration:      Measure(ws.Duration),
	}
	if td := ws.TransitDetails; td != nil {
		s.Transit = &TransitDetails{
			Line: TransitLine{
				Name:        td.Line.Name,
				ShortName:   td.Line.ShortName,
				Color:       td.Line.Color,
				TextColor:   td.Line.TextColor,
				VehicleType: td.Line.Vehicle.Type,
				VehicleName: td.Line.Vehicle.Name,
			},
			DepartureStop: Stop{Name: td.DepartureStop.Name, Location: td.DepartureStop.Location.latLng()},
			ArrivalStop:   Stop{Name: td.ArrivalStop.Name, Location: td.ArrivalStop.Location.latLng()},
			Headsign:      td.Headsign,
			NumStops:      td.NumStops,
		}
	}
	return s
}

// latLng tolerates nil for optional locations.
func (w *wireLatLng) latLng() geo.LatLng {
	if w == nil || w.Lat == nil || w.Lng == nil {
		return geo.LatLng{}
	}
	return geo.LatLng{Lat: *w.Lat, Lng: *w.Lng}
}
