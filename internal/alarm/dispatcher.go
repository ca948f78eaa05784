package alarm

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"focusgrid/internal/model"
)

// Notifier delivers a notice to the outside world. Delivery detail is out
// of the core's hands; failures are reported but never fatal.
type Notifier interface {
	Send(n Notice) error
}

type NoopNotifier struct{}

func (NoopNotifier) Send(Notice) error { return nil }

// ExecNotifier shells out to the platform notification tool.
type ExecNotifier struct{}

func (ExecNotifier) Send(n Notice) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Subtitle).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`,
			escapeAppleScript(n.Subtitle), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// Dispatcher gates notices on per-event settings before forwarding them.
// At most one delivery per detected transition.
type Dispatcher struct {
	notifier Notifier
}

func NewDispatcher(notifier Notifier) *Dispatcher {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &Dispatcher{notifier: notifier}
}

// Dispatch delivers the notice when its event is enabled. The boolean
// reports whether delivery was attempted; a disabled alarm suppresses the
// effect but the caller's counters still update.
func (d *Dispatcher) Dispatch(settings model.Settings, n Notice) (bool, error) {
	if !settings.AlarmFor(n.Event).Enabled {
		return false, nil
	}
	if err := d.notifier.Send(n); err != nil {
		return true, fmt.Errorf("alarm: deliver %s: %w", n.Event, err)
	}
	return true, nil
}
