package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/sahildmk/intention-app/internal/autosave"
	"github.com/sahildmk/intention-app/internal/client"
)

const controlsText = "[ctrl-s] Save now  [ctrl-r] Reload  [ctrl-o] Sign out  [esc] Quit"

type editorView struct {
	ui       *UI
	root     *tview.Flex
	header   *tview.TextView
	content  *tview.TextArea
	start    *tview.InputField
	end      *tview.InputField
	status   *tview.TextView
	controls *tview.TextView

	editor *autosave.Editor
	user   client.User
	// loading suppresses change callbacks while widgets are filled from the draft.
	loading  bool
	toastSeq int
}

func newEditorView(u *UI) *editorView {
	v := &editorView{ui: u}

	v.header = tview.NewTextView().SetDynamicColors(true)
	v.content = tview.NewTextArea().SetPlaceholder("What do you intend to do?")
	v.content.SetBorder(true).SetTitle(" Intention ")
	v.content.SetChangedFunc(v.onContentChanged)

	v.start = tview.NewInputField().SetLabel("Start ").SetFieldWidth(6).
		SetAcceptanceFunc(acceptClock).
		SetChangedFunc(v.onStartChanged)
	v.end = tview.NewInputField().SetLabel("End ").SetFieldWidth(6).
		SetAcceptanceFunc(acceptClock).
		SetChangedFunc(v.onEndChanged)

	v.status = tview.NewTextView().SetDynamicColors(true)
	v.controls = tview.NewTextView().SetTextAlign(tview.AlignCenter).SetText(controlsText)

	times := tview.NewFlex().
		AddItem(v.start, 14, 0, false).
		AddItem(v.end, 0, 1, false)

	v.root = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(v.header, 1, 0, false).
		AddItem(v.content, 0, 1, true).
		AddItem(times, 1, 0, false).
		AddItem(v.status, 1, 0, false).
		AddItem(v.controls, 1, 0, false)
	v.root.SetInputCapture(v.capture)
	return v
}

func (v *editorView) capture(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyCtrlS:
		v.ui.save()
		return nil
	case tcell.KeyCtrlR:
		v.ui.reload()
		return nil
	case tcell.KeyCtrlO:
		v.ui.signOut()
		return nil
	case tcell.KeyEscape:
		v.ui.quit()
		return nil
	case tcell.KeyTab:
		v.cycleFocus()
		return nil
	}
	return event
}

func (v *editorView) cycleFocus() {
	switch {
	case v.content.HasFocus():
		v.ui.app.SetFocus(v.start)
	case v.start.HasFocus():
		v.ui.app.SetFocus(v.end)
	default:
		v.ui.app.SetFocus(v.content)
	}
}

// acceptClock admits partial HH:mm input.
func acceptClock(text string, _ rune) bool {
	if len(text) > len(autosave.ClockLayout) {
		return false
	}
	for _, r := range text {
		if (r < '0' || r > '9') && r != ':' {
			return false
		}
	}
	return true
}

// ---------------------------------------------------------------------------
// Binding
// ---------------------------------------------------------------------------

func (v *editorView) showLoading(user client.User) {
	v.user = user
	v.editor = nil
	v.header.SetText(v.headerText("loading"))
	v.status.SetText("Loading...")
}

// bind fills the widgets from e's draft without marking it edited.
func (v *editorView) bind(e *autosave.Editor, user client.User) {
	v.editor = e
	v.user = user

	d := e.Draft()
	v.loading = true
	v.content.SetText(d.Content, true)
	v.start.SetText(e.StartText())
	v.end.SetText(e.EndText())
	v.loading = false

	v.status.SetText("")
	v.refresh()
}

func (v *editorView) unbind() {
	v.editor = nil
}

func (v *editorView) refresh() {
	if v.editor == nil {
		return
	}
	v.header.SetText(v.headerText(v.editor.State().String()))
	v.end.SetLabel(fmt.Sprintf("End (min %s) ", v.editor.EndTimeMin().Format(autosave.ClockLayout)))
}

func (v *editorView) headerText(state string) string {
	who := v.user.Name
	if who == "" {
		who = v.user.Email
	}
	return fmt.Sprintf("[::b]%s[-:-:-]  [gray]%s[-]", tview.Escape(who), state)
}

// ---------------------------------------------------------------------------
// Edits
// ---------------------------------------------------------------------------

func (v *editorView) onContentChanged() {
	if v.loading || v.editor == nil {
		return
	}
	if err := v.editor.SetContent(v.content.GetText()); err != nil {
		v.toast("[red]" + tview.Escape(err.Error()) + "[-]")
	}
	v.refresh()
}

func (v *editorView) onStartChanged(text string) {
	v.onTimeChanged(text, v.editorSetStart)
}

func (v *editorView) onEndChanged(text string) {
	v.onTimeChanged(text, v.editorSetEnd)
}

func (v *editorView) editorSetStart(s string) error { return v.editor.SetStartTime(s) }

func (v *editorView) editorSetEnd(s string) error { return v.editor.SetEndTime(s) }

// onTimeChanged applies complete HH:mm values and ignores partial ones.
func (v *editorView) onTimeChanged(text string, apply func(string) error) {
	if v.loading || v.editor == nil {
		return
	}
	if len(text) < len(autosave.ClockLayout) || !strings.Contains(text, ":") {
		return
	}
	if err := apply(text); err != nil {
		v.toast("[red]Use HH:mm, for example 09:30.[-]")
		return
	}
	v.refresh()
}

// ---------------------------------------------------------------------------
// Toasts
// ---------------------------------------------------------------------------

func (v *editorView) saved(d autosave.Draft) {
	v.refresh()
	v.toast("[green]Saved " + v.ui.clock.Now().In(v.ui.opts.Location).Format("15:04:05") + "[-]")
}

func (v *editorView) saveFailed(err error) {
	v.refresh()
	v.toast("[red]Save failed: " + tview.Escape(err.Error()) + "[-]")
}

// toast shows message in the status line and clears it after toastTTL unless
// a newer toast replaced it.
func (v *editorView) toast(message string) {
	v.toastSeq++
	seq := v.toastSeq
	v.status.SetText(message)

	v.ui.clock.AfterFunc(toastTTL, func() {
		v.ui.queue(func() {
			if v.toastSeq == seq {
				v.status.SetText("")
			}
		})
	})
}
