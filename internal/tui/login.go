package tui

import (
	"errors"
	"strings"

	"github.com/rivo/tview"

	"github.com/sahildmk/intention-app/internal/domain"
)

const (
	fieldEmail    = "Email"
	fieldPassword = "Password"
	fieldName     = "Name"
)

type loginView struct {
	ui     *UI
	root   *tview.Flex
	form   *tview.Form
	status *tview.TextView
	busy   bool
}

func newLoginView(u *UI) *loginView {
	v := &loginView{ui: u}

	v.form = tview.NewForm().
		AddInputField(fieldEmail, "", 40, nil, nil).
		AddPasswordField(fieldPassword, "", 40, '*', nil).
		AddInputField(fieldName, "", 40, nil, nil).
		AddButton("Sign in", func() { v.submit(false) }).
		AddButton("Register", func() { v.submit(true) }).
		AddButton("Quit", u.quit)
	v.form.SetCancelFunc(u.quit)
	v.form.SetBorder(true).SetTitle(" Intention ")

	v.status = tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignCenter)
	hint := tview.NewTextView().SetTextAlign(tview.AlignCenter).
		SetText("Name is only needed to register.  [tab] Next  [esc] Quit")

	center := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(v.form, 11, 0, true).
		AddItem(v.status, 1, 0, false).
		AddItem(hint, 1, 0, false).
		AddItem(nil, 0, 1, false)
	v.root = tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(center, 60, 0, true).
		AddItem(nil, 0, 1, false)
	return v
}

func (v *loginView) text(label string) string {
	if field, ok := v.form.GetFormItemByLabel(label).(*tview.InputField); ok {
		return strings.TrimSpace(field.GetText())
	}
	return ""
}

func (v *loginView) reset(message string) {
	if field, ok := v.form.GetFormItemByLabel(fieldPassword).(*tview.InputField); ok {
		field.SetText("")
	}
	v.busy = false
	v.setStatus(message)
	v.form.SetFocus(0)
}

func (v *loginView) setStatus(message string) {
	v.status.SetText(message)
}

// submit signs in, or registers when register is set, in the background and
// opens the editor on success.
func (v *loginView) submit(register bool) {
	if v.busy {
		return
	}
	email, password, name := v.text(fieldEmail), v.text(fieldPassword), v.text(fieldName)
	if email == "" || password == "" {
		v.setStatus("[red]Email and password are required.[-]")
		return
	}
	if register && name == "" {
		v.setStatus("[red]Name is required to register.[-]")
		return
	}

	v.busy = true
	v.setStatus("Signing in...")
	u := v.ui

	go func() {
		ctx, cancel := u.requestCtx()
		defer cancel()

		var err error
		if register {
			_, err = u.backend.Register(ctx, email, name, password)
		} else {
			_, err = u.backend.Login(ctx, email, password)
		}

		u.queue(func() {
			v.busy = false
			if err != nil {
				v.setStatus("[red]" + loginMessage(err) + "[-]")
				return
			}
			u.openEditor()
		})
	}()
}

func loginMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return "Wrong email or password."
	case errors.Is(err, domain.ErrAlreadyExists):
		return "That email is already registered."
	case errors.Is(err, domain.ErrValidation):
		return "Check the email and use a password of at least 8 characters."
	default:
		return "Could not reach the server."
	}
}
