package transitdirections

import (
	"context"
	"log"
	"sync"

	"github.com/theoremus-urban-solutions/transit-directions/directions"
	"github.com/theoremus-urban-solutions/transit-directions/render"
)

// State is the lifecycle stage of a Screen.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateRendered
	StateFailed
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateRendered:
		return "rendered"
	case StateFailed:
		return "failed"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Fetcher starts a directions request whose single result arrives on the
// returned channel.
type Fetcher interface {
	FetchAsync(ctx context.Context, q directions.Query) <-chan directions.Result
}

// Dispatcher runs functions on the goroutine that owns the surface.
type Dispatcher interface {
	Post(fn func()) bool
}

// Screen shows one transit route on a map surface.
//
// Appear, Retry, Teardown and OnChange must be called on the dispatcher's
// goroutine, and observers run there too. State and Banner may be read from
// anywhere.
type Screen struct {
	fetcher  Fetcher
	loop     Dispatcher
	surface  *render.Handle
	renderer *render.Renderer
	query    directions.Query

	cancel    context.CancelFunc
	gen       int
	observers []func(State, Banner)

	mu     sync.Mutex
	state  State
	banner Banner
}

func NewScreen(f Fetcher, loop Dispatcher, surface render.Surface, q directions.Query, opts render.Options) *Screen {
	return &Screen{
		fetcher:  f,
		loop:     loop,
		surface:  render.NewHandle(surface),
		renderer: render.NewRenderer(opts),
		query:    q,
	}
}

// OnChange registers an observer called after every state change.
func (s *Screen) OnChange(fn func(State, Banner)) {
	s.observers = append(s.observers, fn)
}

func (s *Screen) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Screen) Banner() Banner {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.banner
}

// Appear starts the fetch. Only the first call from Idle has an effect.
func (s *Screen) Appear() {
	if s.State() != StateIdle {
		return
	}
	s.start()
}

// Retry fetches again after a retryable failure and reports whether it did.
func (s *Screen) Retry() bool {
	if s.State() != StateFailed || !s.Banner().Retryable {
		return false
	}
	s.start()
	return true
}

// Teardown cancels an outstanding fetch and detaches the surface. Results
// arriving later are dropped.
func (s *Screen) Teardown() {
	if s.State() == StateClosed {
		return
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.surface.Invalidate()
	s.setState(StateClosed, Banner{})
}

func (s *Screen) start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.gen++
	gen := s.gen
	s.setState(StateLoading, Banner{})

	results := s.fetcher.FetchAsync(ctx, s.query)
	go func() {
		res, ok := <-results
		if !ok {
			res = directions.Result{Err: context.Canceled}
		}
		if !s.loop.Post(func() { s.complete(gen, res) }) {
			log.Printf("main loop stopped, dropping directions result for %s -> %s", s.query.Origin, s.query.Destination)
		}
	}()
}

func (s *Screen) complete(gen int, res directions.Result) {
	if s.State() == StateClosed || gen != s.gen {
		return
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if res.Err != nil {
		s.fail(res.Err)
		return
	}
	if err := s.renderer.Render(res.Response, s.surface); err != nil {
		s.fail(err)
		return
	}
	s.setState(StateRendered, Banner{})
}

func (s *Screen) fail(err error) {
	log.Printf("directions %s -> %s failed: %v", s.query.Origin, s.query.Destination, err)
	s.setState(StateFailed, BannerFor(err))
}

func (s *Screen) setState(st State, b Banner) {
	s.mu.Lock()
	s.state = st
	s.banner = b
	s.mu.Unlock()
	for _, fn := range s.observers {
		fn(st, b)
	}
}
