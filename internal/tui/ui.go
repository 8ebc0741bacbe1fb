// Package tui is the terminal front end: a sign-in page and a single-intention
// editor whose edits are saved by an autosave.Editor.
package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rivo/tview"

	"github.com/sahildmk/intention-app/internal/autosave"
	"github.com/sahildmk/intention-app/internal/client"
	"github.com/sahildmk/intention-app/internal/domain"
)

const (
	pageLogin  = "login"
	pageEditor = "editor"

	toastTTL = 3 * time.Second
)

// backend is the part of client.Client the UI needs.
type backend interface {
	SignedIn() bool
	User() client.User
	Login(ctx context.Context, email, password string) (client.User, error)
	Register(ctx context.Context, email, name, password string) (client.User, error)
	Logout(ctx context.Context) error
	GetCollectionItems(ctx context.Context) ([]domain.CollectionItem, error)
	Saver() autosave.Saver
}

// Options tune the editor behavior.
type Options struct {
	AutosaveDelay  time.Duration
	FlushOnClose   bool
	RequestTimeout time.Duration
	Location       *time.Location
	Clock          clockwork.Clock
}

// UI owns the tview application and the current autosave editor.
type UI struct {
	app     *tview.Application
	pages   *tview.Pages
	backend backend
	opts    Options
	log     *slog.Logger
	clock   clockwork.Clock

	// queue runs f on the UI goroutine.
	queue func(f func())

	ctx    context.Context
	login  *loginView
	view   *editorView
	editor *autosave.Editor

	// loads is bumped whenever a pending item load goes stale.
	loads uint64
}

// New builds the UI. Nothing is drawn until Run.
func New(b backend, opts Options, logger *slog.Logger) *UI {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}

	u := &UI{
		app:     tview.NewApplication(),
		pages:   tview.NewPages(),
		backend: b,
		opts:    opts,
		log:     logger.With("component", "tui"),
		clock:   opts.Clock,
		ctx:     context.Background(),
	}
	u.queue = func(f func()) { u.app.QueueUpdateDraw(f) }

	u.login = newLoginView(u)
	u.view = newEditorView(u)
	u.pages.AddPage(pageLogin, u.login.root, true, false)
	u.pages.AddPage(pageEditor, u.view.root, true, false)
	return u
}

// Run shows the editor when a session is stored and the sign-in page
// otherwise, then blocks until the user quits or ctx is cancelled. Pending
// edits are handled by the editor's close policy on the way out.
func (u *UI) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	u.ctx = ctx

	go func() {
		<-ctx.Done()
		u.app.Stop()
	}()

	if u.backend.SignedIn() {
		u.openEditor()
	} else {
		u.showLogin("")
	}

	err := u.app.SetRoot(u.pages, true).Run()
	if e := u.detachEditor(); e != nil {
		u.closeEditor(e)
	}
	return err
}

func (u *UI) requestCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(u.ctx, u.opts.RequestTimeout)
}

// ---------------------------------------------------------------------------
// Page flow
// ---------------------------------------------------------------------------

func (u *UI) showLogin(message string) {
	u.login.reset(message)
	u.pages.SwitchToPage(pageLogin)
	u.app.SetFocus(u.login.form)
}

// openEditor loads the user's items in the background and starts an editor
// from the first one. A load failure starts from an empty draft.
func (u *UI) openEditor() {
	u.view.showLoading(u.backend.User())
	u.pages.SwitchToPage(pageEditor)
	u.loads++
	seq := u.loads

	go func() {
		ctx, cancel := u.requestCtx()
		defer cancel()
		items, err := u.backend.GetCollectionItems(ctx)

		u.queue(func() {
			// Signed out, quit or opened again while loading.
			if seq != u.loads || u.editor != nil || !u.backend.SignedIn() {
				return
			}
			switch {
			case errors.Is(err, domain.ErrUnauthorized):
				u.showLogin("Your session expired. Sign in again.")
				return
			case err != nil:
				u.log.Warn("load items failed", slog.String("error", err.Error()))
				items = nil
				u.startEditor(items)
				u.view.toast("[yellow]Could not load your intention. Starting fresh.[-]")
				return
			}
			u.startEditor(items)
		})
	}()
}

func (u *UI) startEditor(items []domain.CollectionItem) {
	u.editor = autosave.New(u.backend.Saver(), items,
		autosave.WithDelay(u.opts.AutosaveDelay),
		autosave.WithClock(u.clock),
		autosave.WithLocation(u.opts.Location),
		autosave.WithLogger(u.log),
		autosave.WithFlushOnClose(u.opts.FlushOnClose),
		autosave.WithSaveTimeout(u.opts.RequestTimeout),
		autosave.WithNotifier(autosave.NotifierFuncs{
			OnSaved:  func(d autosave.Draft) { u.queue(func() { u.view.saved(d) }) },
			OnFailed: func(err error) { u.queue(func() { u.view.saveFailed(err) }) },
		}),
	)
	u.view.bind(u.editor, u.backend.User())
	u.app.SetFocus(u.view.content)
}

// detachEditor unbinds the current editor from the view and returns it.
func (u *UI) detachEditor() *autosave.Editor {
	e := u.editor
	u.editor = nil
	u.view.unbind()
	return e
}

func (u *UI) closeEditor(e *autosave.Editor) {
	ctx, cancel := context.WithTimeout(context.Background(), u.opts.RequestTimeout)
	defer cancel()
	if err := e.Close(ctx); err != nil {
		u.log.Warn("close editor", slog.String("error", err.Error()))
	}
}

// ---------------------------------------------------------------------------
// Actions
// ---------------------------------------------------------------------------

func (u *UI) save() {
	e := u.editor
	if e == nil {
		return
	}
	go func() {
		ctx, cancel := u.requestCtx()
		defer cancel()
		// Failures reach the view through the notifier.
		_ = e.Flush(ctx)
	}()
}

// reload replaces the draft with the user's items as stored on the server.
// Unsaved edits are dropped.
func (u *UI) reload() {
	e := u.editor
	if e == nil {
		return
	}
	u.view.toast("Reloading...")

	go func() {
		ctx, cancel := u.requestCtx()
		defer cancel()
		items, err := u.backend.GetCollectionItems(ctx)

		u.queue(func() {
			if u.editor != e {
				return
			}
			switch {
			case errors.Is(err, domain.ErrUnauthorized):
				u.detachEditor()
				go u.closeEditor(e)
				u.showLogin("Your session expired. Sign in again.")
				return
			case err != nil:
				u.log.Warn("reload items failed", slog.String("error", err.Error()))
				u.view.toast("[red]Reload failed. Try again.[-]")
				return
			}
			e.Reset(items)
			u.view.bind(e, u.backend.User())
			u.view.toast("Reloaded.")
		})
	}()
}

func (u *UI) signOut() {
	u.loads++
	e := u.detachEditor()
	u.showLogin("Signing out...")

	go func() {
		if e != nil {
			u.closeEditor(e)
		}
		ctx, cancel := u.requestCtx()
		defer cancel()
		if err := u.backend.Logout(ctx); err != nil {
			u.log.Warn("logout", slog.String("error", err.Error()))
		}
		u.queue(func() { u.login.setStatus("Signed out.") })
	}()
}

func (u *UI) quit() {
	u.loads++
	u.app.Stop()
}
