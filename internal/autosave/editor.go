// Package autosave holds the draft of a single intention and persists it
// after the user stops editing for a while.
//
// Every edit marks the draft dirty and restarts an idle timer. When the
// timer fires the draft is updated if it already has an id, created if it
// has content, and left alone otherwise. A create merges only the returned
// id back into the draft; content and times stay as the user left them.
package autosave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/sahildmk/intention-app/internal/domain"
)

const (
	DefaultDelay       = 2 * time.Second
	defaultSaveTimeout = 30 * time.Second
)

// ErrClosed is returned by setters after Close.
var ErrClosed = errors.New("autosave: editor closed")

type action int

const (
	actionNone action = iota
	actionCreate
	actionUpdate
)

// Editor owns the draft and its save timer. It is safe for concurrent use.
type Editor struct {
	saver        Saver
	notify       Notifier
	clock        clockwork.Clock
	loc          *time.Location
	log          *slog.Logger
	delay        time.Duration
	saveTimeout  time.Duration
	flushOnClose bool

	// saveMu runs saves one at a time, so a save started while a create is
	// in flight sees the merged id.
	saveMu sync.Mutex

	mu     sync.Mutex
	draft  Draft
	edited bool
	dirty  bool
	gen    uint64
	epoch  uint64 // bumped by Reset
	timer  clockwork.Timer
	closed bool

	inflight sync.WaitGroup
}

// Option configures an Editor.
type Option func(*Editor)

// WithDelay sets the idle time before a save. Non-positive values are ignored.
func WithDelay(d time.Duration) Option {
	return func(e *Editor) {
		if d > 0 {
			e.delay = d
		}
	}
}

// WithClock replaces the real clock.
func WithClock(c clockwork.Clock) Option {
	return func(e *Editor) { e.clock = c }
}

// WithLocation sets the zone used for default blocks and HH:mm input.
func WithLocation(loc *time.Location) Option {
	return func(e *Editor) { e.loc = loc }
}

// WithNotifier sets the receiver of save outcomes.
func WithNotifier(n Notifier) Option {
	return func(e *Editor) { e.notify = n }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) { e.log = l }
}

// WithSaveTimeout bounds each timer-driven save call.
func WithSaveTimeout(d time.Duration) Option {
	return func(e *Editor) { e.saveTimeout = d }
}

// WithFlushOnClose makes Close save pending edits instead of dropping them.
func WithFlushOnClose(enabled bool) Option {
	return func(e *Editor) { e.flushOnClose = enabled }
}

// New creates an editor seeded from the first of items, which must be
// ordered by start time. With no items the draft is Empty with a one-hour
// block at the top of the current hour.
func New(saver Saver, items []domain.CollectionItem, opts ...Option) *Editor {
	e := &Editor{
		saver:       saver,
		notify:      NopNotifier{},
		clock:       clockwork.NewRealClock(),
		loc:         time.Local,
		log:         slog.Default(),
		delay:       DefaultDelay,
		saveTimeout: defaultSaveTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With("component", "autosave")
	e.seed(items)
	return e
}

// seed loads the draft from the first item or the default block.
func (e *Editor) seed(items []domain.CollectionItem) {
	if first, ok := domain.FirstItem(items); ok {
		e.draft = Draft{
			ID:      first.ID,
			Content: first.Content,
			Start:   first.StartDateTime.In(e.loc),
			End:     first.EndDateTime.In(e.loc),
		}
		return
	}
	start, end := defaultBlock(e.now())
	e.draft = Draft{ID: uuid.Nil, Start: start, End: end}
}

func (e *Editor) now() time.Time { return e.clock.Now().In(e.loc) }

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// State returns Empty, EditingUnsaved or EditingSaved.
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case e.draft.HasID():
		return EditingSaved
	case e.edited:
		return EditingUnsaved
	default:
		return Empty
	}
}

// Draft returns a copy of the current draft.
func (e *Editor) Draft() Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft
}

// Dirty reports whether there are edits not yet confirmed by a save.
func (e *Editor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirty
}

// StartText and EndText render the draft times as HH:mm.
func (e *Editor) StartText() string { return e.Draft().Start.Format(ClockLayout) }

func (e *Editor) EndText() string { return e.Draft().End.Format(ClockLayout) }

// EndTimeMin is the lower bound offered for the end time input. It is the
// end time itself rather than the start time, so the bound only ever rises.
// TODO: bound by the start time once clients agree on end >= start.
func (e *Editor) EndTimeMin() time.Time {
	return e.Draft().End
}

// ---------------------------------------------------------------------------
// Edits
// ---------------------------------------------------------------------------

// SetContent replaces the intention text.
func (e *Editor) SetContent(s string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}

	e.draft.Content = s
	e.touch()
	return nil
}

// SetStartTime sets the start to hh:mm on today's date. The draft's own date
// is not used, so an older record moves to today when its time is edited.
func (e *Editor) SetStartTime(hhmm string) error {
	return e.setTime(hhmm, "start", func(d *Draft, t time.Time) { d.Start = t })
}

// SetEndTime sets the end to hh:mm on today's date. End before start is kept.
func (e *Editor) SetEndTime(hhmm string) error {
	return e.setTime(hhmm, "end", func(d *Draft, t time.Time) { d.End = t })
}

func (e *Editor) setTime(hhmm, field string, apply func(*Draft, time.Time)) error {
	t, err := onDate(e.now(), hhmm)
	if err != nil {
		return domain.NewValidationError(field, "expected HH:mm")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}

	apply(&e.draft, t)
	e.touch()
	return nil
}

// touch marks the draft dirty and restarts the idle timer. Caller holds mu.
func (e *Editor) touch() {
	e.edited = true
	e.dirty = true
	e.gen++
	if e.timer != nil {
		e.timer.Stop()
	}
	gen := e.gen
	e.timer = e.clock.AfterFunc(e.delay, func() { e.fire(gen) })
}

// ---------------------------------------------------------------------------
// Saving
// ---------------------------------------------------------------------------

func (e *Editor) fire(gen uint64) {
	e.mu.Lock()
	stale := e.closed || gen != e.gen
	e.mu.Unlock()
	if stale {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.saveTimeout)
	defer cancel()
	_ = e.save(ctx, false)
}

// Flush saves pending edits now and cancels the idle timer. It returns the
// save error, if any, after reporting it to the notifier.
func (e *Editor) Flush(ctx context.Context) error {
	e.mu.Lock()
	if e.timer != nil {
		e.timer.Stop()
	}
	e.mu.Unlock()
	return e.save(ctx, false)
}

// save persists a snapshot of the draft and reports the outcome. Once the
// editor is closed only the closing flush may save.
func (e *Editor) save(ctx context.Context, closing bool) error {
	saved, err := e.persist(ctx, closing)
	if err != nil {
		e.notify.SaveFailed(err)
		return fmt.Errorf("autosave: %w", err)
	}
	if saved != nil {
		e.notify.Saved(*saved)
	}
	return nil
}

// persist runs one save call under saveMu. It returns the draft as saved, or
// nil when there was nothing to save or the draft was reset meanwhile.
func (e *Editor) persist(ctx context.Context, closing bool) (*Draft, error) {
	e.saveMu.Lock()
	defer e.saveMu.Unlock()

	e.mu.Lock()
	if !e.dirty || (e.closed && !closing) {
		e.mu.Unlock()
		return nil, nil
	}
	snap := e.draft
	gen, epoch := e.gen, e.epoch
	act := actionNone
	switch {
	case snap.HasID():
		act = actionUpdate
	case snap.Content != "":
		act = actionCreate
	}
	if act == actionNone {
		e.mu.Unlock()
		return nil, nil
	}
	e.inflight.Add(1)
	e.mu.Unlock()
	defer e.inflight.Done()

	var (
		item domain.CollectionItem
		err  error
	)
	if act == actionUpdate {
		item, err = e.saver.Update(ctx, snap.ID, snap.Content, snap.Start, snap.End)
	} else {
		item, err = e.saver.Create(ctx, snap.Content, snap.Start, snap.End)
	}
	if err != nil {
		e.log.Warn("save failed", slog.Bool("create", act == actionCreate), slog.String("error", err.Error()))
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.epoch != epoch {
		// The saved record belongs to the draft that Reset replaced.
		e.log.Debug("draft reset during save", slog.String("id", item.ID.String()))
		return nil, nil
	}
	if act == actionCreate {
		e.draft.ID = item.ID
	}
	if e.gen == gen {
		e.dirty = false
	}
	saved := e.draft
	return &saved, nil
}

// Wait blocks until no save call is in flight.
func (e *Editor) Wait() {
	e.inflight.Wait()
}

// Close stops the editor. Pending edits are discarded unless the editor was
// built WithFlushOnClose, in which case they are saved first. Close waits
// for in-flight saves.
func (e *Editor) Close(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	if e.timer != nil {
		e.timer.Stop()
	}
	flush := e.flushOnClose && e.dirty
	e.mu.Unlock()

	var err error
	if flush {
		err = e.save(ctx, true)
	}

	e.mu.Lock()
	e.dirty = false
	e.mu.Unlock()

	e.inflight.Wait()
	return err
}

// Reset replaces the draft with the first of items, as if newly loaded.
// Pending edits are dropped, and a save still in flight no longer touches
// the draft.
func (e *Editor) Reset(items []domain.CollectionItem) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.timer != nil {
		e.timer.Stop()
	}
	e.gen++
	e.epoch++
	e.dirty = false
	e.edited = false
	e.seed(items)
}
