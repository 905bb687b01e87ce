// Package transitdirections shows a transit route from the Google Directions
// API on a map surface.
//
// An App is built from an explicit config.AppConfig. It owns the directions
// client and the main loop; screens created from it fetch on their own
// goroutine and render on the loop.
package transitdirections

import (
	"context"

	"github.com/theoremus-urban-solutions/transit-directions/config"
	"github.com/theoremus-urban-solutions/transit-directions/directions"
	"github.com/theoremus-urban-solutions/transit-directions/geo"
	"github.com/theoremus-urban-solutions/transit-directions/internal/mainloop"
	"github.com/theoremus-urban-solutions/transit-directions/render"
	"github.com/theoremus-urban-solutions/transit-directions/scene"
)

// App wires the directions client, the main loop and map surfaces from one
// configuration.
type App struct {
	cfg    config.AppConfig
	client *directions.Client
	loop   *mainloop.Loop
}

// NewApp fails with config.ErrMissingAPIKey when no key is provisioned.
func NewApp(cfg config.AppConfig) (*App, error) {
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}
	client, err := directions.NewClient(cfg.Directions, cfg.Credentials.APIKey)
	if err != nil {
		return nil, err
	}
	return &App{cfg: cfg, client: client, loop: mainloop.New(16)}, nil
}

func (a *App) Config() config.AppConfig {
	return a.cfg
}

// Run drives the main loop until ctx is done or Stop is called.
func (a *App) Run(ctx context.Context) {
	a.loop.Run(ctx)
}

// Post runs fn on the main loop.
func (a *App) Post(fn func()) bool {
	return a.loop.Post(fn)
}

func (a *App) Stop() {
	a.loop.Stop()
}

// Done is closed once the main loop has stopped.
func (a *App) Done() <-chan struct{} {
	return a.loop.Done()
}

// NewSurface creates a map surface with the configured camera and display size.
func (a *App) NewSurface() *scene.Scene {
	m := a.cfg.Map
	return scene.New(
		scene.Camera{Target: geo.LatLng{Lat: m.Camera.Lat, Lng: m.Camera.Lng}, Zoom: m.Camera.Zoom},
		render.Size{Width: m.DisplayWidth, Height: m.DisplayHeight},
	)
}

// Query builds a directions query, resolving configured place names.
func (a *App) Query(origin, destination, mode string, alternatives bool) directions.Query {
	return directions.Query{
		Origin:           a.cfg.ResolvePlace(origin),
		Destination:      a.cfg.ResolvePlace(destination),
		Mode:             mode,
		WantAlternatives: alternatives,
		Language:         a.cfg.Directions.Language,
	}
}

// DefaultQuery is the query from the config file.
func (a *App) DefaultQuery() directions.Query {
	q := a.cfg.Query
	return a.Query(q.Origin, q.Destination, q.Mode, q.Alternatives)
}

// NewTransitScreen creates a screen and the surface it draws on.
func (a *App) NewTransitScreen(q directions.Query, routeIndex int) (*Screen, *scene.Scene) {
	surface := a.NewSurface()
	return NewScreen(a.client, a.loop, surface, q, render.Options{RouteIndex: routeIndex}), surface
}
