package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/simpleweather/backend/internal/domain"
)

const (
	// PlaceNotFoundMessage is shown when a fetch yields no data
	PlaceNotFoundMessage = "Sorry, no weather data found."

	// TimeoutMessage is shown when a fetch exceeds its deadline
	TimeoutMessage = "The weather service did not answer in time."

	// DefaultFetchTimeout bounds a single fetch
	DefaultFetchTimeout = 15 * time.Second
)

// Fetcher retrieves the current weather for a city. A nil response with a
// nil error is treated as "not found".
type Fetcher interface {
	Fetch(ctx context.Context, city string) (*domain.WeatherResponse, error)
}

// View is the display surface. Its methods are only ever called from the
// controller's display loop.
type View interface {
	SetState(state domain.FetchState, city string)
	Render(city string, model domain.DisplayModel)
	Notify(message string)
}

// ControllerConfig tunes a WeatherController
type ControllerConfig struct {
	FetchTimeout time.Duration
	Location     *time.Location
	Now          func() time.Time
}

type eventKind int

const (
	eventStarted eventKind = iota
	eventFinished
)

// event is posted by fetch goroutines to the display loop
type event struct {
	kind   eventKind
	gen    uint64
	taskID string
	city   string
	resp   *domain.WeatherResponse
	err    error
}

// FetchTask is a handle on one in-flight fetch
type FetchTask struct {
	ID   string
	City string

	gen    uint64
	cancel context.CancelFunc
	done   chan struct{}
}

// Cancel aborts the fetch; its outcome is discarded
func (t *FetchTask) Cancel() {
	t.cancel()
}

// Done is closed once the fetch goroutine has posted its outcome
func (t *FetchTask) Done() <-chan struct{} {
	return t.done
}

// WeatherController drives fetch-on-load and city changes. Fetches run on
// their own goroutines and report back over a channel; the display loop
// started by Run is the only caller of View.
type WeatherController struct {
	prefs   domain.CityPreferenceStore
	fetcher Fetcher
	history domain.HistoryRepository
	view    View

	timeout time.Duration
	loc     *time.Location
	now     func() time.Time

	events chan event

	mu         sync.Mutex
	generation uint64
	current    *FetchTask

	rootCtx    context.Context
	rootCancel context.CancelFunc
	wg         sync.WaitGroup // fetch goroutines
	wgBg       sync.WaitGroup // history saves
}

// NewWeatherController wires the controller. history may be nil.
func NewWeatherController(
	prefs domain.CityPreferenceStore,
	fetcher Fetcher,
	history domain.HistoryRepository,
	view View,
	cfg ControllerConfig,
) *WeatherController {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	rootCtx, rootCancel := context.WithCancel(context.Background())
	return &WeatherController{
		prefs:      prefs,
		fetcher:    fetcher,
		history:    history,
		view:       view,
		timeout:    cfg.FetchTimeout,
		loc:        cfg.Location,
		now:        cfg.Now,
		events:     make(chan event, 16),
		rootCtx:    rootCtx,
		rootCancel: rootCancel,
	}
}

// Load fetches weather for the stored city
func (c *WeatherController) Load(ctx context.Context) *FetchTask {
	city, err := c.prefs.GetCity(ctx)
	if err != nil {
		log.Printf("controller: reading city preference failed, using %q: %v", city, err)
	}
	if city == "" {
		city = domain.DefaultCity
	}
	return c.start(city)
}

// ChangeCity stores the new city and fetches weather for it
func (c *WeatherController) ChangeCity(ctx context.Context, city string) *FetchTask {
	if err := c.prefs.SetCity(ctx, city); err != nil {
		log.Printf("controller: saving city preference failed: %v", err)
	}
	return c.start(city)
}

// City returns the stored city
func (c *WeatherController) City(ctx context.Context) string {
	city, err := c.prefs.GetCity(ctx)
	if err != nil {
		log.Printf("controller: reading city preference failed: %v", err)
	}
	return city
}

// start launches a fetch and supersedes any fetch still in flight
func (c *WeatherController) start(city string) *FetchTask {
	fetchCtx, cancel := context.WithTimeout(c.rootCtx, c.timeout)

	c.mu.Lock()
	if c.current != nil {
		c.current.cancel()
	}
	c.generation++
	task := &FetchTask{
		ID:     uuid.NewString(),
		City:   city,
		gen:    c.generation,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	c.current = task
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(task.done)
		defer cancel()

		c.post(event{kind: eventStarted, gen: task.gen, taskID: task.ID, city: city})

		resp, err := c.fetcher.Fetch(fetchCtx, city)
		if err == nil && resp == nil {
			err = fmt.Errorf("controller: no data for %q: %w", city, domain.ErrCityNotFound)
		}
		if err != nil && errors.Is(fetchCtx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("controller: fetch for %q after %s: %w", city, c.timeout, domain.ErrFetchTimeout)
		}

		c.post(event{kind: eventFinished, gen: task.gen, taskID: task.ID, city: city, resp: resp, err: err})
	}()

	return task
}

func (c *WeatherController) post(ev event) {
	select {
	case c.events <- ev:
	case <-c.rootCtx.Done():
	}
}

func (c *WeatherController) isCurrent(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return gen == c.generation
}

// Run is the display loop. It applies fetch outcomes to the view until ctx
// is done or the controller is closed.
func (c *WeatherController) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.rootCtx.Done():
			return nil
		case ev := <-c.events:
			c.apply(ev)
		}
	}
}

func (c *WeatherController) apply(ev event) {
	if !c.isCurrent(ev.gen) {
		if ev.kind == eventFinished {
			log.Printf("controller: dropping stale result for %q (task %s)", ev.city, ev.taskID)
		}
		return
	}

	if ev.kind == eventStarted {
		c.view.SetState(domain.StateFetching, ev.city)
		return
	}

	switch {
	case ev.err == nil:
	case errors.Is(ev.err, domain.ErrFetchTimeout):
		log.Printf("controller: %v", ev.err)
		c.view.Notify(TimeoutMessage)
		c.view.SetState(domain.StateTimedOut, ev.city)
		return
	case errors.Is(ev.err, domain.ErrMalformedResponse):
		log.Printf("controller: one or more fields not found in the weather data for %q: %v", ev.city, ev.err)
		c.view.SetState(domain.StateMalformed, ev.city)
		return
	case errors.Is(ev.err, context.Canceled):
		log.Printf("controller: fetch for %q canceled", ev.city)
		c.view.SetState(domain.StateIdle, ev.city)
		return
	default:
		log.Printf("controller: %v", ev.err)
		c.view.Notify(PlaceNotFoundMessage)
		c.view.SetState(domain.StateFetchFailed, ev.city)
		return
	}

	now := c.now()
	model, err := Render(ev.resp, now, c.loc)
	if err != nil {
		log.Printf("controller: one or more fields not found in the weather data for %q: %v", ev.city, err)
		c.view.SetState(domain.StateMalformed, ev.city)
		return
	}

	c.saveHistory(domain.RenderRecord{ID: ev.taskID, City: ev.city, Model: model, RenderedAt: now})
	c.view.Render(ev.city, model)
}

// saveHistory persists a render asynchronously (tracked for graceful shutdown)
func (c *WeatherController) saveHistory(rec domain.RenderRecord) {
	if c.history == nil {
		return
	}
	c.wgBg.Add(1)
	go func() {
		defer c.wgBg.Done()
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.history.SaveRender(bgCtx, rec); err != nil {
			log.Printf("controller: failed to save render: %v", err)
		}
	}()
}

// Close cancels in-flight fetches and waits for background work
func (c *WeatherController) Close() {
	c.rootCancel()
	c.wg.Wait()
	c.wgBg.Wait()
}
