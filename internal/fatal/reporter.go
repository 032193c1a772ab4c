package fatal

import (
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// ErrDialogInit is logged when the modal could not be shown. The process
// still exits.
var ErrDialogInit = errors.New("fatal: dialog initialization failed")

// Dialog shows a blocking modal with a title and a body.
type Dialog interface {
	Show(title, body string) error
}

// DialogFunc adapts a function to Dialog.
type DialogFunc func(title, body string) error

// Show calls f(title, body).
func (f DialogFunc) Show(title, body string) error { return f(title, body) }

// Reporter is the single exit path for fatal errors. Abort must run on the
// goroutine that owns the terminal.
type Reporter struct {
	Logger *log.Logger
	Dialog Dialog
	Debug  bool

	// Exit terminates the process. Defaults to os.Exit.
	Exit func(code int)
}

// Abort logs e, shows it in the dialog and exits with status 1.
func (r *Reporter) Abort(e *Error) {
	logger := r.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger.Error(e.Summary, "message", e.Message, "origin", e.Origin())

	if r.Dialog != nil {
		if err := r.Dialog.Show(e.Summary, e.Display(r.Debug)); err != nil {
			logger.Error("fatal: cannot show dialog", "err", errors.Join(ErrDialogInit, err))
		}
	}

	exit := r.Exit
	if exit == nil {
		exit = os.Exit
	}
	exit(1)
}

// Notifier delivers a fatal error to the OS goroutine.
type Notifier interface {
	NotifyPanic(e *Error)
}

// Stopper lowers the running flag.
type Stopper interface {
	Stop() bool
}

// Raise is the fatal path for goroutines that cannot show a dialog: it
// lowers the running flag, then hands the error to the OS goroutine. It
// returns the Error that was sent, or nil for a nil err.
func Raise(n Notifier, s Stopper, err error) *Error {
	e := wrapAt(2, err)
	if e == nil {
		return nil
	}
	s.Stop()
	n.NotifyPanic(e)
	return e
}
