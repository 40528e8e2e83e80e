package widgets

import (
	"github.com/elves/ebind/pkg/editor"
	"github.com/elves/ebind/pkg/lens"
)

// AlertState is the state of an [Alert]: one of [InfoAlert], [WarningAlert],
// [ErrorAlert] and [Dismissed].
type AlertState interface {
	lens.Tagged
	alertState()
}

// Notice is the content of an alert that is showing.
type Notice struct {
	Title   string `yaml:"title"`
	Message string `yaml:"message"`
}

type (
	InfoAlert    struct{ Notice }
	WarningAlert struct{ Notice }
	ErrorAlert   struct{ Notice }
	// Dismissed is the state of an alert after it has been dismissed.
	Dismissed struct{}
)

func (InfoAlert) Tag() lens.Tag    { return "info" }
func (WarningAlert) Tag() lens.Tag { return "warning" }
func (ErrorAlert) Tag() lens.Tag   { return "error" }
func (Dismissed) Tag() lens.Tag    { return "dismissed" }

func (InfoAlert) alertState()    {}
func (WarningAlert) alertState() {}
func (ErrorAlert) alertState()   {}
func (Dismissed) alertState()    {}

// Events understood by [Alert].
type (
	// Dismiss moves the alert to the Dismissed state.
	Dismiss struct{}
	// Arm shows the alert again with the given state.
	Arm struct{ State AlertState }
)

// Alert is a union editor over an [AlertState]. While showing, the title and
// message of the notice can be edited. Once dismissed, it stays dismissed
// until re-armed according to its [RearmPolicy].
type Alert[R any] struct {
	*editor.Union[R, AlertState]
	cfg AlertConfig
}

var (
	titleAcc = lens.Field("title",
		func(n Notice) string { return n.Title },
		func(n Notice, s string) Notice { n.Title = s; return n })
	messageAcc = lens.Field("message",
		func(n Notice) string { return n.Message },
		func(n Notice, s string) Notice { n.Message = s; return n })
)

func noticeCase[R any, P AlertState](tag lens.Tag, get func(P) Notice, set func(P, Notice) P) editor.UnionCase[R, AlertState] {
	noticeAcc := lens.Func("", func(p P) (Notice, error) { return get(p), nil },
		func(p P, n Notice) (P, error) { return set(p, n), nil })
	return editor.Case[R, AlertState](tag, func(v lens.Var[R, P]) editor.Editor {
		nv := lens.Focus(v, noticeAcc)
		text := func(v lens.Var[R, string]) editor.Editor {
			return editor.NewText(v, editor.InputSpec[string]{})
		}
		return editor.NewRecord(
			editor.FieldOf(nv, "title", titleAcc, text),
			editor.FieldOf(nv, "message", messageAcc, text),
		).WithRole("notice")
	})
}

// NewAlert returns an alert editor for the state bound by v.
func NewAlert[R any](v lens.Var[R, AlertState], cfg AlertConfig) *Alert[R] {
	if cfg.Rearm == "" {
		cfg.Rearm = DefaultConfig().Alert.Rearm
	}
	u := editor.NewUnion(v,
		noticeCase[R]("info",
			func(a InfoAlert) Notice { return a.Notice },
			func(a InfoAlert, n Notice) InfoAlert { a.Notice = n; return a }),
		noticeCase[R]("warning",
			func(a WarningAlert) Notice { return a.Notice },
			func(a WarningAlert, n Notice) WarningAlert { a.Notice = n; return a }),
		noticeCase[R]("error",
			func(a ErrorAlert) Notice { return a.Notice },
			func(a ErrorAlert, n Notice) ErrorAlert { a.Notice = n; return a }),
		editor.Case[R, AlertState, Dismissed]("dismissed", nil),
	).WithRole("alert")
	return &Alert[R]{u, cfg}
}

// Dismissed reports whether the alert has been dismissed.
func (a *Alert[R]) Dismissed() bool {
	tag, _ := a.Active()
	return tag == Dismissed{}.Tag()
}

// Dismiss dismisses the alert. It reports whether the alert was showing.
func (a *Alert[R]) Dismiss() (bool, error) {
	if a.Dismissed() {
		return false, nil
	}
	if err := a.Var().Set(Dismissed{}); err != nil {
		return false, err
	}
	return true, nil
}

// Arm shows the alert with the given state. It is rejected unless the alert
// was configured with [RearmIntent].
func (a *Alert[R]) Arm(state AlertState) error {
	if a.cfg.Rearm != RearmIntent {
		return &editor.ValidationError{Path: a.Var().Path(), Reason: "alert can only be re-armed externally"}
	}
	if state == nil {
		return &editor.ValidationError{Path: a.Var().Path(), Reason: "no alert state to arm with"}
	}
	return a.Var().Set(state)
}

func (a *Alert[R]) Intent(ev editor.Event) editor.Result {
	switch ev := ev.(type) {
	case Dismiss:
		ok, err := a.Dismiss()
		if err != nil {
			return result(err)
		}
		if !ok {
			return editor.Result{Status: editor.Unused}
		}
		return editor.Result{Status: editor.Applied}
	case Arm:
		return result(a.Arm(ev.State))
	case editor.Select:
		// Selecting a variant is arming, except for selecting Dismissed.
		state, ok := ev.Value.(AlertState)
		if ok && state.Tag() != (Dismissed{}).Tag() {
			return result(a.Arm(state))
		}
	}
	return a.Union.Intent(ev)
}

func (a *Alert[R]) Present() editor.Node {
	n := a.Union.Present()
	n.Attrs = map[string]any{"dismissed": a.Dismissed(), "rearm": string(a.cfg.Rearm)}
	return n
}

func result(err error) editor.Result {
	return editor.Result{Status: editor.Classify(err), Err: err}
}
