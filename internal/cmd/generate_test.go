package cmd

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerateCommand_WritesTypes(t *testing.T) {
	// given
	root := writeFixture(t, map[string]string{
		"app/Messages.i18n_fr.properties": "Greeting=Bonjour, %s !\nfarewell=Au revoir\n",
	})

	// when
	_, err := execute(t, "generate", root)

	// then
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, name := range []string{
		"messages_bundle_gen.go",
		"messages_bundle_fr_gen.go",
		"messages_bundle_locales_gen.go",
	} {
		if _, err := os.Stat(filepath.Join(root, "app", name)); err != nil {
			t.Errorf("expected %s to be written: %v", name, err)
		}
	}
	data, err := os.ReadFile(filepath.Join(root, "app", "messages_bundle_fr_gen.go"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Au revoir") {
		t.Errorf("fr type missing translation:\n%s", data)
	}
}

func TestGenerateCommand_DryRunWritesNothing(t *testing.T) {
	// given
	root := writeFixture(t, map[string]string{
		"app/Messages.i18n_fr.properties": "Greeting=Bonjour, %s !\n",
	})

	// when
	_, err := execute(t, "generate", "--dry-run", root)

	// then
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	matches, _ := filepath.Glob(filepath.Join(root, "app", "*_gen.go"))
	if len(matches) != 0 {
		t.Errorf("dry run wrote %v", matches)
	}
}

func TestGenerateCommand_NoIndex(t *testing.T) {
	// given
	root := writeFixture(t, nil)

	// when
	_, err := execute(t, "generate", "--no-index", root)

	// then
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "app", "messages_bundle_locales_gen.go")); !os.IsNotExist(err) {
		t.Errorf("locale index should not be written, stat err = %v", err)
	}
}

func TestGenerateCommand_DisablingIndexRemovesIt(t *testing.T) {
	// given: a previous pass wrote the locale index
	root := writeFixture(t, nil)
	if _, err := execute(t, "generate", root); err != nil {
		t.Fatalf("first pass: %v", err)
	}
	index := filepath.Join(root, "app", "messages_bundle_locales_gen.go")
	if _, err := os.Stat(index); err != nil {
		t.Fatalf("index not written by first pass: %v", err)
	}

	// when
	_, err := execute(t, "generate", "--no-index", root)

	// then
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(index); !os.IsNotExist(err) {
		t.Errorf("stale index should be removed, stat err = %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "app", "messages_bundle_gen.go")); err != nil {
		t.Errorf("primary type should be kept: %v", err)
	}
}

func TestGenerateCommand_JSONOutput(t *testing.T) {
	// given
	root := writeFixture(t, map[string]string{
		"app/Messages.i18n_fr_FR.properties": "Greeting=Bonjour, %s !\n",
	})

	// when
	out, err := execute(t, "generate", "--dry-run", "-o", "json", root)

	// then
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var report struct {
		RunID      string `json:"run_id"`
		Interfaces []struct {
			Interface string `json:"interface"`
			Classes   []struct {
				Type      string `json:"type"`
				Synthetic bool   `json:"synthetic"`
			} `json:"classes"`
		} `json:"interfaces"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if report.RunID == "" {
		t.Error("run_id is empty")
	}
	if len(report.Interfaces) != 1 {
		t.Fatalf("interfaces = %d, want 1", len(report.Interfaces))
	}
	// primary, synthesized fr, fr_FR
	classes := report.Interfaces[0].Classes
	if len(classes) != 3 {
		t.Fatalf("classes = %+v, want 3", classes)
	}
	if !classes[1].Synthetic || !strings.HasSuffix(classes[1].Type, "MessagesBundle_fr") {
		t.Errorf("classes[1] = %+v, want synthesized MessagesBundle_fr", classes[1])
	}
}

func TestGenerateCommand_ProjectConfigTranslationRoot(t *testing.T) {
	// given: translations live in a separate tree named by the config file
	root := writeFixture(t, map[string]string{
		".msgtrans.yaml": "translation_root: i18n\n",
		"i18n/app/Messages.i18n_de.properties": "Greeting=Hallo, %s!\n",
	})

	// when
	_, err := execute(t, "generate", root)

	// then
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "app", "messages_bundle_de_gen.go")); err != nil {
		t.Errorf("de type not generated: %v", err)
	}
}

func TestGenerateCommand_ErrorsExitWithCode2(t *testing.T) {
	// given: a bundle method with no message directive
	root := writeFixture(t, map[string]string{
		"app/broken.go": "package app\n\n//msgtrans:bundle\ntype Broken interface {\n\tNoMessage() string\n}\n",
	})

	// when
	_, err := execute(t, "generate", "--dry-run", root)

	// then
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("err = %v, want ExitError", err)
	}
	if exitErr.Code != 2 {
		t.Errorf("Code = %d, want 2", exitErr.Code)
	}
}

func TestGenerateCommand_InvalidEncoding(t *testing.T) {
	// given
	root := writeFixture(t, nil)

	// when
	_, err := execute(t, "generate", "--encoding", "utf-16", root)

	// then
	if err == nil || !strings.Contains(err.Error(), "encoding") {
		t.Errorf("err = %v, want encoding error", err)
	}
}
