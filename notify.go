package msgtrans

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnsupportedOS is returned by LocalNotifier on unsupported platforms.
var ErrUnsupportedOS = errors.New("notify: unsupported OS for local notifications")

// Notifier tells the developer about a watch pass that went wrong while the
// terminal is out of sight.
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

// cmdRunner abstracts exec.Cmd.Run for testing.
type cmdRunner interface {
	Run() error
}

type cmdFactory func(ctx context.Context, name string, args ...string) cmdRunner

func defaultCmdFactory(ctx context.Context, name string, args ...string) cmdRunner {
	return exec.CommandContext(ctx, name, args...)
}

// NewNotifier picks the notifier for the CLI flags: a user command template
// wins over desktop notifications, and neither yields NopNotifier.
func NewNotifier(cmdTemplate string, desktop bool) Notifier {
	switch {
	case cmdTemplate != "":
		return NewCmdNotifier(cmdTemplate)
	case desktop:
		return &LocalNotifier{}
	default:
		return &NopNotifier{}
	}
}

// LocalNotifier sends desktop notifications using OS-native commands.
// darwin: osascript, linux: notify-send, others: returns ErrUnsupportedOS.
type LocalNotifier struct {
	makeCmd cmdFactory
	forceOS string // for testing; empty = use runtime.GOOS
}

func (n *LocalNotifier) goos() string {
	if n.forceOS != "" {
		return n.forceOS
	}
	return runtime.GOOS
}

func (n *LocalNotifier) factory() cmdFactory {
	if n.makeCmd != nil {
		return n.makeCmd
	}
	return defaultCmdFactory
}

func (n *LocalNotifier) Notify(ctx context.Context, title, message string) error {
	mk := n.factory()

	switch n.goos() {
	case "darwin":
		script := fmt.Sprintf(`display notification %q with title %q`, message, title)
		return mk(ctx, "osascript", "-e", script).Run()
	case "linux":
		return mk(ctx, "notify-send", "--app-name=msgtrans", title, message).Run()
	default:
		return ErrUnsupportedOS
	}
}

// CmdNotifier executes a user-provided shell command for notifications.
// The template may contain {title} and {message} placeholders.
type CmdNotifier struct {
	cmdTemplate string
	makeCmd     cmdFactory
}

func NewCmdNotifier(cmdTemplate string) *CmdNotifier {
	return &CmdNotifier{cmdTemplate: cmdTemplate}
}

func (n *CmdNotifier) factory() cmdFactory {
	if n.makeCmd != nil {
		return n.makeCmd
	}
	return defaultCmdFactory
}

func (n *CmdNotifier) Notify(ctx context.Context, title, message string) error {
	expanded := strings.ReplaceAll(n.cmdTemplate, "{title}", title)
	expanded = strings.ReplaceAll(expanded, "{message}", message)
	return n.factory()(ctx, "sh", "-c", expanded).Run()
}

// NopNotifier is a no-op notifier for quiet mode or testing.
type NopNotifier struct{}

func (n *NopNotifier) Notify(_ context.Context, _, _ string) error {
	return nil
}

// NotifyReport sends one notification summarizing a pass that reported
// errors. Clean passes are not announced.
func NotifyReport(ctx context.Context, n Notifier, r *Report) error {
	errs := r.Count(SeverityError)
	if errs == 0 {
		return nil
	}
	var failed []string
	for _, ir := range r.Interfaces {
		if ir.Failed {
			failed = append(failed, ir.Interface)
		}
	}
	msg := fmt.Sprintf("%d error(s) in %s", errs, r.Root)
	if len(failed) > 0 {
		msg += ": " + strings.Join(failed, ", ")
	}
	return n.Notify(ctx, "msgtrans", msg)
}
