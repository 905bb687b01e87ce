package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	lib "github.com/theoremus-urban-solutions/transit-directions"
	"github.com/theoremus-urban-solutions/transit-directions/config"
	"github.com/theoremus-urban-solutions/transit-directions/formatter"
	"github.com/theoremus-urban-solutions/transit-directions/internal"
	"github.com/theoremus-urban-solutions/transit-directions/render"
)

// errLoopStopped is returned when the main loop ends before posted work ran.
var errLoopStopped = errors.New("main loop stopped")

type options struct {
	configPath  string
	origin      string
	destination string
	mode        string
	// alternatives is nil unless -alternatives was given explicitly.
	alternatives *bool
	routeIndex   int
	format       string
	out          string
	response     string
	debug        bool
}

func parseOptions(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("transit-directions", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "config file (default: config.yml or ./config/config.yml)")
	fs.StringVar(&opts.origin, "origin", "", "origin place name from config.places or a raw place_id:... (overrides config)")
	fs.StringVar(&opts.destination, "destination", "", "destination place name or place_id:... (overrides config)")
	fs.StringVar(&opts.mode, "mode", "", "driving|walking|bicycling|transit (overrides config)")
	alternatives := fs.Bool("alternatives", true, "request alternative routes (overrides config)")
	fs.IntVar(&opts.routeIndex, "route", -1, "route alternative to draw (overrides config)")
	fs.StringVar(&opts.format, "format", formatter.FormatJSON, "json|kml|pb")
	fs.StringVar(&opts.out, "out", "", "output file (default: stdout)")
	fs.StringVar(&opts.response, "response", "", "render a saved directions JSON response instead of calling the API")
	fs.BoolVar(&opts.debug, "debug", false, "log file and line")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "alternatives" {
			opts.alternatives = alternatives
		}
	})
	return opts, nil
}

// applyOverrides layers explicitly given flags over the configured query.
func applyOverrides(q config.QueryConfig, opts options) config.QueryConfig {
	if opts.origin != "" {
		q.Origin = opts.origin
	}
	if opts.destination != "" {
		q.Destination = opts.destination
	}
	if opts.mode != "" {
		q.Mode = opts.mode
	}
	if opts.alternatives != nil {
		q.Alternatives = *opts.alternatives
	}
	if opts.routeIndex >= 0 {
		q.RouteIndex = opts.routeIndex
	}
	return q
}

// loop is the part of App used to run work on the main loop.
type loop interface {
	Post(fn func()) bool
	Done() <-chan struct{}
}

// onLoop runs fn on the main loop and waits for its result. It gives up when
// ctx ends or the loop stops first.
func onLoop(ctx context.Context, l loop, fn func() ([]byte, error)) ([]byte, error) {
	type result struct {
		buf []byte
		err error
	}
	ch := make(chan result, 1)
	if !l.Post(func() {
		buf, err := fn()
		ch <- result{buf, err}
	}) {
		return nil, errLoopStopped
	}
	select {
	case r := <-ch:
		return r.buf, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-l.Done():
		select {
		case r := <-ch:
			return r.buf, r.err
		default:
			return nil, errLoopStopped
		}
	}
}

func main() {
	opts, err := parseOptions(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}
	internal.InitLogging(opts.debug)
	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := config.LoadAppConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.response != "" && cfg.Credentials.APIKey == "" {
		// Offline rendering needs no key.
		cfg.Credentials.APIKey = "offline"
	}
	app, err := lib.NewApp(cfg)
	if err != nil {
		b := lib.BannerFor(err)
		return fmt.Errorf("%s: %s", b.Title, b.Message)
	}

	q := applyOverrides(cfg.Query, opts)
	query := app.Query(q.Origin, q.Destination, q.Mode, q.Alternatives)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	surface := app.NewSurface()
	var screen *lib.Screen
	if opts.response != "" {
		screen = lib.NewScreen(newFileFetcher(opts.response), app, surface, query, render.Options{RouteIndex: q.RouteIndex})
	} else {
		screen, surface = app.NewTransitScreen(query, q.RouteIndex)
	}

	finished := make(chan lib.State, 1)
	if !app.Post(func() {
		screen.OnChange(func(st lib.State, b lib.Banner) {
			log.Printf("screen %s", st)
			if st == lib.StateRendered || st == lib.StateFailed {
				select {
				case finished <- st:
				default:
				}
			}
		})
		screen.Appear()
	}) {
		return errLoopStopped
	}

	go app.Run(ctx)
	defer app.Stop()

	var final lib.State
	select {
	case final = <-finished:
	case <-ctx.Done():
		log.Printf("shutdown signal received")
		return ctx.Err()
	case <-app.Done():
		return errLoopStopped
	}

	if final == lib.StateFailed {
		app.Post(screen.Teardown)
		b := screen.Banner()
		msg := fmt.Sprintf("%s: %s", b.Title, b.Message)
		if b.Retryable {
			msg += " (retryable)"
		}
		return fmt.Errorf("%s\n%v", msg, b.Err)
	}

	buf, err := onLoop(ctx, app, func() ([]byte, error) {
		defer screen.Teardown()
		return formatter.Build(surface.Snapshot(), opts.format)
	})
	if err != nil {
		return err
	}

	if opts.out == "" {
		_, err = os.Stdout.Write(buf)
		return err
	}
	if err := os.WriteFile(opts.out, buf, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.out, err)
	}
	log.Printf("wrote %s (%d bytes)", opts.out, len(buf))
	return nil
}
