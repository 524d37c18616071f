package msgtrans

import (
	"errors"
	"fmt"
	"sync"
)

// Sentinel errors for the failure units of a generation pass.
var (
	ErrDiscovery = errors.New("msgtrans: cannot list translation files")
	ErrLoad      = errors.New("msgtrans: cannot load translation file")
	ErrEmit      = errors.New("msgtrans: cannot emit generated type")
	ErrScan      = errors.New("msgtrans: invalid message interface")
)

// Severity of a diagnostic.
type Severity int

const (
	SeverityNote Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityNote:
		return "note"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText lets reports print severities by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Diagnostic is one collected message.
type Diagnostic struct {
	Severity  Severity `json:"severity"`
	Interface string   `json:"interface,omitempty"`
	File      string   `json:"file,omitempty"`
	Key       string   `json:"key,omitempty"`
	Message   string   `json:"message"`
	Err       error    `json:"-"`
}

func (d Diagnostic) String() string {
	loc := d.Interface
	if d.File != "" {
		loc = d.File
	}
	if loc == "" {
		return d.Message
	}
	return loc + ": " + d.Message
}

// Diagnostics collects notes, warnings and errors for one unit of work. It is
// passed explicitly to every component and drained by the driver.
type Diagnostics struct {
	mu    sync.Mutex
	items []Diagnostic
}

// NewDiagnostics returns an empty collector.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{}
}

func (d *Diagnostics) add(diag Diagnostic) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.items = append(d.items, diag)
}

// Notef records an informational note.
func (d *Diagnostics) Notef(iface, file, format string, args ...any) {
	d.add(Diagnostic{Severity: SeverityNote, Interface: iface, File: file, Message: fmt.Sprintf(format, args...)})
}

// Warn records an advisory warning about a translation key.
func (d *Diagnostics) Warn(iface, file, key, msg string) {
	d.add(Diagnostic{Severity: SeverityWarning, Interface: iface, File: file, Key: key, Message: msg})
}

// Error records a failure of one unit (interface, file or class).
func (d *Diagnostics) Error(iface, file string, err error) {
	d.add(Diagnostic{Severity: SeverityError, Interface: iface, File: file, Message: err.Error(), Err: err})
}

// Len returns the number of collected diagnostics.
func (d *Diagnostics) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.items)
}

// Count returns the number of diagnostics of the given severity.
func (d *Diagnostics) Count(s Severity) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, it := range d.items {
		if it.Severity == s {
			n++
		}
	}
	return n
}

// Drain returns the collected diagnostics and resets the collector.
func (d *Diagnostics) Drain() []Diagnostic {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := d.items
	d.items = nil
	return out
}

// LogDiagnostics prints diagnostics through the console logger.
func LogDiagnostics(diags []Diagnostic, verbose bool) {
	for _, d := range diags {
		switch d.Severity {
		case SeverityError:
			LogError("%s", d)
		case SeverityWarning:
			LogWarn("%s", d)
		default:
			if verbose {
				LogNote("%s", d)
			}
		}
	}
}
