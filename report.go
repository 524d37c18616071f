package msgtrans

import (
	"encoding/json"
	"fmt"
	"io"
)

// ClassReport describes one emitted type.
type ClassReport struct {
	Type         string `json:"type"`
	Super        string `json:"super,omitempty"`
	Locale       string `json:"locale,omitempty"`
	Primary      bool   `json:"primary,omitempty"`
	Synthetic    bool   `json:"synthetic,omitempty"`
	Translations int    `json:"translations"`
	Source       string `json:"source,omitempty"`
}

// InterfaceReport groups the classes emitted for one message interface.
type InterfaceReport struct {
	Interface string        `json:"interface"`
	Kind      string        `json:"kind"`
	Classes   []ClassReport `json:"classes"`
	Failed    bool          `json:"failed,omitempty"`
}

// Report is the outcome of one generation pass.
type Report struct {
	RunID       string            `json:"run_id"`
	Root        string            `json:"root"`
	Interfaces  []InterfaceReport `json:"interfaces"`
	Diagnostics []Diagnostic      `json:"diagnostics"`
	Written     []string          `json:"written,omitempty"`
	Removed     []string          `json:"removed,omitempty"`
}

func newInterfaceReport(iface *MessageInterface, classes []ClassModel) InterfaceReport {
	r := InterfaceReport{Interface: iface.QualifiedName(), Kind: iface.Kind.String()}
	for _, c := range classes {
		r.Classes = append(r.Classes, ClassReport{
			Type:         c.QualifiedName(),
			Super:        c.QualifiedSuperName(),
			Locale:       c.Locale.String(),
			Primary:      c.Primary,
			Synthetic:    c.Synthetic,
			Translations: len(c.Translations),
			Source:       c.Source,
		})
	}
	return r
}

// Count returns the number of diagnostics of the given severity.
func (r *Report) Count(s Severity) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == s {
			n++
		}
	}
	return n
}

// Classes returns the total number of emitted types.
func (r *Report) Classes() int {
	n := 0
	for _, ir := range r.Interfaces {
		n += len(ir.Classes)
	}
	return n
}

// FormatReportJSON returns the report as a JSON document.
func FormatReportJSON(r *Report) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// PrintReport writes a human-readable summary of r to w.
func PrintReport(w io.Writer, r *Report, verbose bool) {
	color := colorize(w)
	for _, ir := range r.Interfaces {
		status := "✓"
		if ir.Failed {
			status = "✗"
		}
		if color && ir.Failed {
			status = ColorRed + status + ColorReset
		} else if color {
			status = ColorGreen + status + ColorReset
		}
		fmt.Fprintf(w, "  %s  %s (%s)\n", status, ir.Interface, ir.Kind)
		if !verbose {
			continue
		}
		for _, c := range ir.Classes {
			label := fmt.Sprintf(Msg("class_translations"), c.Translations)
			if c.Primary {
				label = Msg("class_primary")
			} else if c.Synthetic {
				label = Msg("class_synthetic")
			}
			fmt.Fprintf(w, "       %-40s %s\n", c.Type, label)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, Msg("summary")+"\n", len(r.Interfaces), r.Classes(), r.Count(SeverityWarning), r.Count(SeverityError))
}
