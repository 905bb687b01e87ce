package directions

import "github.com/theoremus-urban-solutions/transit-directions/geo"

// Travel modes reported on a Step.
const (
	TravelModeWalking   = "WALKING"
	TravelModeTransit   = "TRANSIT"
	TravelModeDriving   = "DRIVING"
	TravelModeBicycling = "BICYCLING"
)

// API statuses that still produce a Response.
const (
	StatusOK          = "OK"
	StatusZeroResults = "ZERO_RESULTS"
	StatusNotFound    = "NOT_FOUND"
)

// Response is the validated directions document.
type Response struct {
	Status string
	Routes []Route
}

// Route returns routes[i] or a MissingRouteError.
func (r *Response) Route(i int) (*Route, error) {
	if r == nil || i < 0 || i >= len(r.Routes) {
		n := 0
		if r != nil {
			n = len(r.Routes)
		}
		return nil, &MissingRouteError{Index: i, Available: n}
	}
	return &r.Routes[i], nil
}

type Route struct {
	Summary          string
	Bounds           geo.Bounds
	OverviewPolyline string
	Legs             []Leg
	Copyrights       string
	Warnings         []string
}

// Steps returns the steps of the first leg.
func (r *Route) Steps() []Step {
	if len(r.Legs) == 0 {
		return nil
	}
	return r.Legs[0].Steps
}

type Leg struct {
	StartAddress  string
	EndAddress    string
	StartLocation geo.LatLng
	EndLocation   geo.LatLng
	Distance      Measure
	Duration      Measure
	Steps         []Step
}

// Measure is a distance in meters or a duration in seconds plus its display text.
type Measure struct {
	Text  string
	Value int64
}

type Step struct {
	TravelMode    string
	StartLocation geo.LatLng
	EndLocation   geo.LatLng
	Polyline      string
	Instructions  string
	Distance      Measure
	Duration      Measure
	Transit       *TransitDetails
}

type TransitDetails struct {
	Line          TransitLine
	DepartureStop Stop
	ArrivalStop   Stop
	Headsign      string
	NumStops      int
}

// TransitLine is the published line. Color is the raw "#RRGGBB" string and
// may be empty.
type TransitLine struct {
	Name        string
	ShortName   string
	Color       string
	TextColor   string
	VehicleType string
	VehicleName string
}

type Stop struct {
	Name     string
	Location geo.LatLng
}
