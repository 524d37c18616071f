package msgtrans

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// DoctorCheck represents the result of a single environment check.
type DoctorCheck struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
	Path     string `json:"path"`
	Version  string `json:"version"`
	Detail   string `json:"detail,omitempty"`
	OK       bool   `json:"ok"`
}

// RunDoctor checks the tools and project layout a generation pass over root
// relies on: the Go toolchain that compiles the generated code, the module
// that gives it an import path, and the project config.
func RunDoctor(ctx context.Context, root string) []DoctorCheck {
	commands := []struct {
		name     string
		required bool
		args     []string
	}{
		{"go", true, []string{"version"}},
		{"gofmt", false, nil},
	}

	checks := make([]DoctorCheck, 0, len(commands)+3)
	for _, cmd := range commands {
		check := DoctorCheck{
			Name:     cmd.name,
			Required: cmd.required,
		}

		path, err := exec.LookPath(cmd.name)
		if err != nil {
			checks = append(checks, check)
			continue
		}

		check.Path = path
		check.OK = true

		// best-effort, 500ms timeout
		if cmd.args != nil {
			vctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
			out, err := exec.CommandContext(vctx, path, cmd.args...).Output()
			cancel()
			if err == nil {
				check.Version = strings.SplitN(strings.TrimSpace(string(out)), "\n", 2)[0]
			}
		}

		checks = append(checks, check)
	}

	return append(checks, projectChecks(root)...)
}

func projectChecks(root string) []DoctorCheck {
	abs, err := filepath.Abs(root)
	if err != nil {
		return []DoctorCheck{{Name: "root", Required: true, Path: root, Detail: err.Error()}}
	}

	mod := DoctorCheck{Name: "go.mod", Required: true}
	if modPath, modRoot := findModule(abs); modPath != "" {
		mod.OK = true
		mod.Path = filepath.Join(modRoot, "go.mod")
		mod.Detail = modPath
	} else {
		mod.Detail = "no go.mod at or above " + abs
	}
	checks := []DoctorCheck{mod}

	cfgCheck := DoctorCheck{Name: "config", Required: true, Path: ProjectConfigPath(abs)}
	cfg, err := LoadProjectConfig(cfgCheck.Path)
	switch {
	case err != nil:
		cfgCheck.Detail = err.Error()
	default:
		cfgCheck.OK = true
		if _, statErr := os.Stat(cfgCheck.Path); statErr != nil {
			cfgCheck.Detail = "not present, defaults apply"
		} else if _, encErr := propertiesEncoding(cfg.Encoding); encErr != nil {
			cfgCheck.OK = false
			cfgCheck.Detail = encErr.Error()
		}
	}
	checks = append(checks, cfgCheck)

	if err == nil && cfg.TranslationRoot != "" {
		tr := cfg.TranslationRoot
		if !filepath.IsAbs(tr) {
			tr = filepath.Join(abs, tr)
		}
		trCheck := DoctorCheck{Name: "translation_root", Required: true, Path: tr}
		if info, statErr := os.Stat(tr); statErr != nil {
			trCheck.Detail = statErr.Error()
		} else if !info.IsDir() {
			trCheck.Detail = fmt.Sprintf("%s is not a directory", tr)
		} else {
			trCheck.OK = true
		}
		checks = append(checks, trCheck)
	}
	return checks
}

// DoctorOK reports whether every required check passed.
func DoctorOK(checks []DoctorCheck) bool {
	for _, c := range checks {
		if c.Required && !c.OK {
			return false
		}
	}
	return true
}

// FormatDoctorJSON returns the checks as a JSON array string.
func FormatDoctorJSON(checks []DoctorCheck) (string, error) {
	data, err := json.Marshal(checks)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
