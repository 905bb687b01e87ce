package directions_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/theoremus-urban-solutions/transit-directions/directions"
	"github.com/theoremus-urban-solutions/transit-directions/geo"
	"github.com/theoremus-urban-solutions/transit-directions/internal/testutil"
)

func TestDecodeResponse_TwoSteps(t *testing.T) {
	res := testutil.LoadResponse(t, "two_steps.json")

	if res.Status != directions.StatusOK {
		t.Errorf("expected OK status, got %s", res.Status)
	}
	route, err := res.Route(0)
	if err != nil {
		t.Fatalf("route 0: %v", err)
	}
	wantBounds := geo.Bounds{
		NorthEast: geo.LatLng{Lat: 40.75797, Lng: -73.9569},
		SouthWest: geo.LatLng{Lat: 40.67088, Lng: -73.987},
	}
	if route.Bounds != wantBounds {
		t.Errorf("expected bounds %+v, got %+v", wantBounds, route.Bounds)
	}

	steps := route.Steps()
	if len(steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(steps))
	}
	if steps[0].TravelMode != directions.TravelModeWalking || steps[0].Transit != nil {
		t.Errorf("unexpected first step %+v", steps[0])
	}
	if steps[0].StartLocation != (geo.LatLng{Lat: 40.67088, Lng: -73.95812}) {
		t.Errorf("unexpected start location %+v", steps[0].StartLocation)
	}
	tr := steps[1].Transit
	if steps[1].TravelMode != directions.TravelModeTransit || tr == nil {
		t.Fatalf("expected transit step with details, got %+v", steps[1])
	}
	if tr.Line.Color != "#4285F4" || tr.Line.ShortName != "2" || tr.Line.VehicleType != "SUBWAY" {
		t.Errorf("unexpected line %+v", tr.Line)
	}
	if tr.NumStops != 12 || tr.ArrivalStop.Name != "Times Sq - 42 St" {
		t.Errorf("unexpected transit details %+v", tr)
	}
	if steps[1].Polyline == "" || route.OverviewPolyline == "" {
		t.Error("polylines should be populated")
	}
	if len(route.Warnings) != 1 {
		t.Errorf("expected 1 warning, got %d", len(route.Warnings))
	}
}

func TestDecodeResponse_EmptyResults(t *testing.T) {
	res := testutil.LoadResponse(t, "zero_results.json")
	if len(res.Routes) != 0 {
		t.Fatalf("expected no routes, got %d", len(res.Routes))
	}
	_, err := res.Route(0)
	var mr *directions.MissingRouteError
	if !errors.As(err, &mr) {
		t.Fatalf("expected MissingRouteError, got %v", err)
	}
	if mr.Available != 0 {
		t.Errorf("expected 0 available routes, got %d", mr.Available)
	}
}

func TestDecodeResponse_RouteIndex(t *testing.T) {
	res := testutil.LoadResponse(t, "three_steps.json")
	if _, err := res.Route(1); err != nil {
		t.Errorf("second alternative should exist: %v", err)
	}
	_, err := res.Route(2)
	var mr *directions.MissingRouteError
	if !errors.As(err, &mr) || mr.Index != 2 || mr.Available != 2 {
		t.Errorf("expected MissingRouteError{2,2}, got %v", err)
	}
}

func TestDecodeResponse_APIError(t *testing.T) {
	_, err := directions.DecodeResponse(testutil.LoadFixture(t, "request_denied.json"))
	var ae *directions.APIError
	if !errors.As(err, &ae) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if ae.Status != "REQUEST_DENIED" || !strings.Contains(ae.Message, "API key") {
		t.Errorf("unexpected API error %+v", ae)
	}
}

func TestDecodeResponse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body []byte
	}{
		{name: "not json", body: []byte("<html>oops</html>")},
		{name: "truncated json", body: []byte(`{"status":"OK","routes":[`)},
		{name: "missing status", body: []byte(`{"routes":[]}`)},
		{name: "routes wrong type", body: []byte(`{"status":"OK","routes":{}}`)},
		{name: "missing bounds", body: testutil.LoadFixture(t, "missing_bounds.json")},
		{name: "missing polyline", body: testutil.LoadFixture(t, "missing_polyline.json")},
		{name: "transit without details", body: testutil.LoadFixture(t, "transit_without_details.json")},
		{name: "latitude out of range", body: []byte(`{"status":"OK","routes":[{"bounds":{"northeast":{"lat":91,"lng":0},"southwest":{"lat":0,"lng":0}},"legs":[]}]}`)},
		{name: "missing longitude", body: []byte(`{"status":"OK","routes":[{"bounds":{"northeast":{"lat":1},"southwest":{"lat":0,"lng":0}},"legs":[]}]}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := directions.DecodeResponse(tt.body)
			if res != nil {
				t.Error("expected nil response")
			}
			var me *directions.MalformedResponseError
			if !errors.As(err, &me) {
				t.Fatalf("expected MalformedResponseError, got %v", err)
			}
		})
	}
}

// Zero is a valid coordinate and must not be mistaken for a missing one.
func TestDecodeResponse_ZeroCoordinates(t *testing.T) {
	body := []byte(`{"status":"OK","routes":[{"bounds":{"northeast":{"lat":0,"lng":0},"southwest":{"lat":0,"lng":0}},"legs":[{"steps":[]}]}]}`)
	res, err := directions.DecodeResponse(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	route, _ := res.Route(0)
	if len(route.Steps()) != 0 {
		t.Errorf("expected no steps, got %d", len(route.Steps()))
	}
}

func TestRouteSteps_NoLegs(t *testing.T) {
	r := &directions.Route{}
	if r.Steps() != nil {
		t.Error("route without legs should have no steps")
	}
}

func TestQueryValidate(t *testing.T) {
	tests := []struct {
		name  string
		query directions.Query
		ok    bool
	}{
		{name: "valid", query: directions.Query{Origin: "place_id:A", Destination: "place_id:B", Mode: directions.ModeTransit}, ok: true},
		{name: "valid with language", query: directions.Query{Origin: "A", Destination: "B", Mode: directions.ModeWalking, Language: "en-US"}, ok: true},
		{name: "missing origin", query: directions.Query{Destination: "B", Mode: directions.ModeTransit}},
		{name: "missing destination", query: directions.Query{Origin: "A", Mode: directions.ModeTransit}},
		{name: "unknown mode", query: directions.Query{Origin: "A", Destination: "B", Mode: "TRANSIT"}},
		{name: "empty mode", query: directions.Query{Origin: "A", Destination: "B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, directions.ErrInvalidQuery) {
				t.Errorf("expected ErrInvalidQuery, got %v", err)
			}
		})
	}
}
