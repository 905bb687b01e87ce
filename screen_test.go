package transitdirections

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/theoremus-urban-solutions/transit-directions/config"
	"github.com/theoremus-urban-solutions/transit-directions/directions"
	"github.com/theoremus-urban-solutions/transit-directions/internal/mainloop"
	"github.com/theoremus-urban-solutions/transit-directions/internal/testutil"
	"github.com/theoremus-urban-solutions/transit-directions/render"
	"github.com/theoremus-urban-solutions/transit-directions/scene"
)

var scenarioQuery = directions.Query{
	Origin:           "place_id:A",
	Destination:      "place_id:B",
	Mode:             directions.ModeTransit,
	WantAlternatives: true,
}

type fakeFetcher struct {
	mu      sync.Mutex
	results []directions.Result
	calls   int
	ctxs    []context.Context
	gate    chan struct{}
}

func (f *fakeFetcher) FetchAsync(ctx context.Context, q directions.Query) <-chan directions.Result {
	f.mu.Lock()
	i := f.calls
	if i >= len(f.results) {
		i = len(f.results) - 1
	}
	res := f.results[i]
	f.calls++
	f.ctxs = append(f.ctxs, ctx)
	gate := f.gate
	f.mu.Unlock()

	out := make(chan directions.Result, 1)
	go func() {
		if gate != nil {
			<-gate
		}
		out <- res
		close(out)
	}()
	return out
}

func (f *fakeFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func startLoop(t *testing.T) *mainloop.Loop {
	t.Helper()
	l := mainloop.New(16)
	ctx, cancel := context.WithCancel(context.Background())
	go l.Run(ctx)
	t.Cleanup(cancel)
	return l
}

func onLoop(t *testing.T, l *mainloop.Loop, fn func()) {
	t.Helper()
	done := make(chan struct{})
	if !l.Post(func() { fn(); close(done) }) {
		t.Fatal("main loop rejected work")
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("main loop did not run posted work")
	}
}

// watch records states delivered to observers.
func watch(t *testing.T, l *mainloop.Loop, s *Screen) <-chan State {
	t.Helper()
	ch := make(chan State, 16)
	onLoop(t, l, func() { s.OnChange(func(st State, _ Banner) { ch <- st }) })
	return ch
}

func waitFor(t *testing.T, ch <-chan State, want State) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case st := <-ch:
			if st == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for state %s", want)
		}
	}
}

func newTestScene() *scene.Scene {
	return scene.New(scene.Camera{Zoom: 14}, render.Size{Width: 390, Height: 844})
}

func TestScreen_RendersScenarioThroughClient(t *testing.T) {
	srv := testutil.NewDirectionsServer(t, http.StatusOK, testutil.LoadFixture(t, "two_steps.json"))
	client, err := directions.NewClient(config.DirectionsConfig{BaseURL: srv.URL}, "test-key")
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	l := startLoop(t)
	sc := newTestScene()
	s := NewScreen(client, l, sc, scenarioQuery, render.Options{})
	states := watch(t, l, s)

	onLoop(t, l, s.Appear)
	waitFor(t, states, StateRendered)

	var snap scene.Snapshot
	onLoop(t, l, func() { snap = sc.Snapshot() })
	if len(snap.Polylines) != 2 || len(snap.Markers) != 4 || snap.FitCount != 1 {
		t.Errorf("unexpected scene: %d polylines %d markers %d fits", len(snap.Polylines), len(snap.Markers), snap.FitCount)
	}
	if srv.Hits() != 1 {
		t.Errorf("expected one request, got %d", srv.Hits())
	}
	if s.Banner() != (Banner{}) {
		t.Errorf("successful render should clear the banner, got %+v", s.Banner())
	}
}

func TestScreen_Non2xxFailsOnceWithoutRendering(t *testing.T) {
	srv := testutil.NewDirectionsServer(t, http.StatusServiceUnavailable, []byte(`{}`))
	client, err := directions.NewClient(config.DirectionsConfig{BaseURL: srv.URL}, "test-key")
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	l := startLoop(t)
	sc := newTestScene()
	s := NewScreen(client, l, sc, scenarioQuery, render.Options{})

	var (
		mu       sync.Mutex
		failures int
		renders  int
	)
	failed := make(chan struct{}, 4)
	onLoop(t, l, func() {
		s.OnChange(func(st State, b Banner) {
			mu.Lock()
			defer mu.Unlock()
			switch st {
			case StateFailed:
				failures++
				failed <- struct{}{}
			case StateRendered:
				renders++
			}
		})
	})

	onLoop(t, l, s.Appear)
	select {
	case <-failed:
	case <-time.After(2 * time.Second):
		t.Fatal("failure path not invoked")
	}
	// Let any stray completion reach the loop.
	onLoop(t, l, func() {})

	mu.Lock()
	defer mu.Unlock()
	if failures != 1 || renders != 0 {
		t.Errorf("expected 1 failure and 0 renders, got %d and %d", failures, renders)
	}
	if sc.FitCount() != 0 {
		t.Error("surface must not be touched on failure")
	}
	b := s.Banner()
	var te *directions.TransportError
	if !errors.As(b.Err, &te) || !b.Retryable || b.Title == "" {
		t.Errorf("unexpected banner %+v", b)
	}
}

func TestScreen_AppearIsSingleShot(t *testing.T) {
	f := &fakeFetcher{results: []directions.Result{{Response: testutil.LoadResponse(t, "two_steps.json")}}}
	l := startLoop(t)
	s := NewScreen(f, l, newTestScene(), scenarioQuery, render.Options{})
	states := watch(t, l, s)

	onLoop(t, l, func() {
		s.Appear()
		s.Appear()
	})
	waitFor(t, states, StateRendered)
	onLoop(t, l, s.Appear)

	if f.Calls() != 1 {
		t.Errorf("expected exactly one fetch, got %d", f.Calls())
	}
}

func TestScreen_TeardownBeforeResult(t *testing.T) {
	f := &fakeFetcher{
		results: []directions.Result{{Response: testutil.LoadResponse(t, "two_steps.json")}},
		gate:    make(chan struct{}),
	}
	l := startLoop(t)
	sc := newTestScene()
	s := NewScreen(f, l, sc, scenarioQuery, render.Options{})
	states := watch(t, l, s)

	onLoop(t, l, s.Appear)
	waitFor(t, states, StateLoading)
	onLoop(t, l, s.Teardown)
	waitFor(t, states, StateClosed)

	f.mu.Lock()
	ctx := f.ctxs[0]
	f.mu.Unlock()
	if !errors.Is(ctx.Err(), context.Canceled) {
		t.Error("teardown should cancel the fetch context")
	}

	close(f.gate)
	// Give the late result time to be posted and processed.
	time.Sleep(50 * time.Millisecond)
	onLoop(t, l, func() {})

	if s.State() != StateClosed {
		t.Errorf("expected closed, got %s", s.State())
	}
	if sc.FitCount() != 0 || len(sc.Snapshot().Polylines) != 0 {
		t.Error("late result must not render into a torn down surface")
	}
}

func TestScreen_RetryAfterRetryableFailure(t *testing.T) {
	f := &fakeFetcher{results: []directions.Result{
		{Err: &directions.TransportError{URL: "x", StatusCode: http.StatusServiceUnavailable, Err: errors.New("HTTP 503")}},
		{Response: testutil.LoadResponse(t, "two_steps.json")},
	}}
	l := startLoop(t)
	sc := newTestScene()
	s := NewScreen(f, l, sc, scenarioQuery, render.Options{})
	states := watch(t, l, s)

	onLoop(t, l, s.Appear)
	waitFor(t, states, StateFailed)

	var retried bool
	onLoop(t, l, func() { retried = s.Retry() })
	if !retried {
		t.Fatal("retryable failure should allow retry")
	}
	waitFor(t, states, StateRendered)
	if f.Calls() != 2 {
		t.Errorf("expected 2 fetches, got %d", f.Calls())
	}
	if got := len(sc.Snapshot().Markers); got != 4 {
		t.Errorf("expected 4 markers after retry, got %d", got)
	}
}

func TestScreen_MissingRouteIsNotRetryable(t *testing.T) {
	f := &fakeFetcher{results: []directions.Result{{Response: testutil.LoadResponse(t, "zero_results.json")}}}
	l := startLoop(t)
	s := NewScreen(f, l, newTestScene(), scenarioQuery, render.Options{})
	states := watch(t, l, s)

	onLoop(t, l, s.Appear)
	waitFor(t, states, StateFailed)

	var mr *directions.MissingRouteError
	if !errors.As(s.Banner().Err, &mr) {
		t.Fatalf("expected MissingRouteError, got %v", s.Banner().Err)
	}
	var retried bool
	onLoop(t, l, func() { retried = s.Retry() })
	if retried {
		t.Error("missing route should not be retryable")
	}
	if f.Calls() != 1 {
		t.Errorf("expected 1 fetch, got %d", f.Calls())
	}
}

func TestBannerFor(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		title     string
		retryable bool
	}{
		{name: "network", err: &directions.TransportError{Err: errors.New("refused")}, title: "Network problem", retryable: true},
		{name: "server error", err: &directions.TransportError{StatusCode: 502}, title: "Network problem", retryable: true},
		{name: "client error", err: &directions.TransportError{StatusCode: 403}, title: "Network problem"},
		{name: "malformed", err: &directions.MalformedResponseError{Reason: "invalid JSON"}, title: "Unexpected response", retryable: true},
		{name: "missing route", err: &directions.MissingRouteError{}, title: "No route found"},
		{name: "quota", err: &directions.APIError{Status: "OVER_QUERY_LIMIT"}, title: "Service busy", retryable: true},
		{name: "denied", err: &directions.APIError{Status: "REQUEST_DENIED"}, title: "Request rejected"},
		{name: "invalid query", err: directions.ErrInvalidQuery, title: "Invalid request"},
		{name: "no key", err: config.ErrMissingAPIKey, title: "Not configured"},
		{name: "other", err: errors.New("boom"), title: "Something went wrong", retryable: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := BannerFor(tt.err)
			if b.Title != tt.title || b.Retryable != tt.retryable {
				t.Errorf("expected %q retryable=%v, got %q retryable=%v", tt.title, tt.retryable, b.Title, b.Retryable)
			}
			if b.Message == "" || b.Err != tt.err {
				t.Errorf("banner should carry a message and the error, got %+v", b)
			}
		})
	}
	if BannerFor(nil) != (Banner{}) {
		t.Error("nil error should produce an empty banner")
	}
}

func TestState_String(t *testing.T) {
	if StateRendered.String() != "rendered" || State(42).String() != "unknown" {
		t.Error("unexpected state names")
	}
}
