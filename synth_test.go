package msgtrans

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
)

func runSynth(t *testing.T, iface *MessageInterface, emitter *recordingEmitter) ([]ClassModel, *Diagnostics) {
	t.Helper()
	diags := NewDiagnostics()
	d := NewDiscovery("")
	s := NewSynthesizer(d, NewAggregator(d, "", diags), emitter, diags)
	classes, err := s.Generate(context.Background(), iface)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return classes, diags
}

func TestSynthesizer_FillsMissingAncestors(t *testing.T) {
	// given: only en_US_POSIX exists on disk
	dir := t.TempDir()
	iface := testBundle(dir, "Messages", "Greet=greet=Hello")
	writeFiles(t, dir, map[string]string{"Messages.i18n_en_US_POSIX.properties": "greet=Howdy\n"})
	e := &recordingEmitter{}

	// when
	classes, _ := runSynth(t, iface, e)

	// then
	want := []struct{ name, super string }{
		{"MessagesBundle_en", "MessagesBundle"},
		{"MessagesBundle_en_US", "MessagesBundle_en"},
		{"MessagesBundle_en_US_POSIX", "MessagesBundle_en_US"},
	}
	if len(classes) != len(want) {
		t.Fatalf("classes = %v, want %d", e.typeNames(), len(want))
	}
	for i, w := range want {
		c := classes[i]
		if c.TypeName != w.name || c.SuperTypeName != w.super {
			t.Errorf("classes[%d] = %s extends %s, want %s extends %s", i, c.TypeName, c.SuperTypeName, w.name, w.super)
		}
	}
	for _, c := range classes[:2] {
		if !c.Synthetic || len(c.Translations) != 0 {
			t.Errorf("%s: synthetic=%v translations=%d, want empty synthetic", c.TypeName, c.Synthetic, len(c.Translations))
		}
	}
	if classes[2].Translations.ByKey()["greet"] != "Howdy" {
		t.Errorf("POSIX translations = %v", classes[2].Translations.ByKey())
	}
}

func TestSynthesizer_ParentBeforeChild(t *testing.T) {
	// given: files whose directory order would put children first
	dir := t.TempDir()
	iface := testBundle(dir, "Messages", "Greet=greet=Hello")
	writeFiles(t, dir, map[string]string{
		"Messages.i18n_fr_CA.properties": "greet=Allo\n",
		"Messages.i18n_fr.properties":    "greet=Bonjour\n",
		"Messages.i18n_de_CH.properties": "greet=Grüezi\n",
	})
	e := &recordingEmitter{}

	// when
	runSynth(t, iface, e)

	// then
	pos := map[string]int{}
	for i, n := range e.typeNames() {
		pos[n] = i
	}
	for child, parent := range map[string]string{
		"MessagesBundle_fr_CA": "MessagesBundle_fr",
		"MessagesBundle_de_CH": "MessagesBundle_de",
	} {
		c, okc := pos[child]
		p, okp := pos[parent]
		if !okc || !okp || p > c {
			t.Errorf("%s (%d, %v) must follow %s (%d, %v)", child, c, okc, parent, p, okp)
		}
	}
	if len(e.classes) != 4 {
		t.Errorf("emitted %v, want 4 classes", e.typeNames())
	}
}

func TestSynthesizer_EachClassEmittedOnce(t *testing.T) {
	// given: two variants share the synthesized en and en_US
	dir := t.TempDir()
	iface := testBundle(dir, "Messages", "Greet=greet=Hello")
	writeFiles(t, dir, map[string]string{
		"Messages.i18n_en_US_POSIX.properties": "greet=a\n",
		"Messages.i18n_en_US_WIN.properties":   "greet=b\n",
	})
	e := &recordingEmitter{}

	// when
	runSynth(t, iface, e)

	// then
	seen := map[string]int{}
	for _, n := range e.typeNames() {
		seen[n]++
	}
	for n, count := range seen {
		if count != 1 {
			t.Errorf("%s emitted %d times", n, count)
		}
	}
	if len(seen) != 4 {
		t.Errorf("emitted %v, want en, en_US and two variants", e.typeNames())
	}
}

func TestSynthesizer_Idempotent(t *testing.T) {
	// given
	dir := t.TempDir()
	parent := testBundle(dir, "Parent", "M=k=default")
	child := childOf(dir, parent, "Own=own=mine")
	writeFiles(t, dir, map[string]string{
		"Parent.i18n_fr.properties":     "k=P\n",
		"Child.i18n_fr_FR.properties":   "own=à moi\n",
		"Child.i18n_es_419.properties":  "own=mío\n",
		"Child.i18n_en_US_X.properties": "k=x\n",
	})

	// when
	first, _ := runSynth(t, child, &recordingEmitter{})
	second, _ := runSynth(t, child, &recordingEmitter{})

	// then
	summary := func(cs []ClassModel) []string {
		var out []string
		for _, c := range cs {
			out = append(out, c.QualifiedName()+"<"+c.QualifiedSuperName())
			for _, m := range c.Translations.Methods() {
				out = append(out, "  "+m.ID()+"="+c.Translations[m])
			}
		}
		return out
	}
	if !reflect.DeepEqual(summary(first), summary(second)) {
		t.Errorf("passes differ:\n%v\n%v", summary(first), summary(second))
	}
}

func TestSynthesizer_LoadFailureSynthesizesParentForChild(t *testing.T) {
	// given: fr is malformed, fr_CA is fine
	dir := t.TempDir()
	iface := testBundle(dir, "Messages", "Greet=greet=Hello")
	writeFiles(t, dir, map[string]string{
		"Messages.i18n_fr.properties":    "greet=\\u00zz\n",
		"Messages.i18n_fr_CA.properties": "greet=Allo\n",
	})
	e := &recordingEmitter{}

	// when
	classes, diags := runSynth(t, iface, e)

	// then
	if len(classes) != 2 {
		t.Fatalf("classes = %v, want fr (empty) and fr_CA", e.typeNames())
	}
	if !classes[0].Synthetic || classes[0].TypeName != "MessagesBundle_fr" {
		t.Errorf("classes[0] = %+v, want synthesized fr", classes[0])
	}
	if diags.Count(SeverityError) != 1 {
		t.Errorf("errors = %d, want 1 (fr load)", diags.Count(SeverityError))
	}
}

func TestSynthesizer_EmitFailureSkipsDescendants(t *testing.T) {
	// given: the emitter rejects fr; fr_CA depends on it, de does not
	dir := t.TempDir()
	iface := testBundle(dir, "Messages", "Greet=greet=Hello")
	writeFiles(t, dir, map[string]string{
		"Messages.i18n_fr.properties":    "greet=Bonjour\n",
		"Messages.i18n_fr_CA.properties": "greet=Allo\n",
		"Messages.i18n_de.properties":    "greet=Hallo\n",
	})
	e := &recordingEmitter{fail: map[string]bool{"MessagesBundle_fr": true}}

	// when
	_, diags := runSynth(t, iface, e)

	// then
	if _, ok := e.class("MessagesBundle_fr_CA"); ok {
		t.Error("fr_CA must not be emitted without its superclass")
	}
	if _, ok := e.class("MessagesBundle_de"); !ok {
		t.Error("de should still be emitted")
	}
	if diags.Count(SeverityError) == 0 {
		t.Error("expected emit errors")
	}
}

func TestSynthesizer_DiscoveryFailureIsReturned(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("directory permissions are not enforced")
	}
	// given
	dir := filepath.Join(t.TempDir(), "locked")
	if err := os.Mkdir(dir, 0000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(dir, 0755) })
	iface := testBundle(dir, "Messages", "Greet=greet=Hello")
	diags := NewDiagnostics()
	d := NewDiscovery("")

	// when
	_, err := NewSynthesizer(d, NewAggregator(d, "", diags), &recordingEmitter{}, diags).Generate(context.Background(), iface)

	// then
	if err == nil {
		t.Error("expected discovery error")
	}
}
