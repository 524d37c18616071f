package msgtrans

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Synthesizer drives generation for one interface in parent-before-child
// order and fills gaps in the locale chain with empty classes.
type Synthesizer struct {
	discovery  *Discovery
	aggregator *Aggregator
	emitter    Emitter
	diags      *Diagnostics

	// state for one Generate call
	emitted map[string]bool
	failed  map[string]bool
	pending map[string]bool
	classes []ClassModel
}

// NewSynthesizer wires the collaborators of one interface pass.
func NewSynthesizer(d *Discovery, a *Aggregator, e Emitter, diags *Diagnostics) *Synthesizer {
	return &Synthesizer{discovery: d, aggregator: a, emitter: e, diags: diags}
}

// Generate emits one class per translation file of iface, plus an empty class
// for every missing intermediate locale, and returns the emitted classes in
// emission order. Only a discovery failure is returned as an error; all other
// failures are isolated to their file or class and reported to diags.
func (s *Synthesizer) Generate(ctx context.Context, iface *MessageInterface) ([]ClassModel, error) {
	s.emitted = make(map[string]bool)
	s.failed = make(map[string]bool)
	s.pending = make(map[string]bool)
	s.classes = nil

	files, err := s.discovery.Files(iface)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		s.generateFile(ctx, f)
	}
	return s.classes, nil
}

func (s *Synthesizer) generateFile(ctx context.Context, f TranslationFile) bool {
	iface := f.Interface
	name := iface.TypeNameFor(f.Name.Locale)
	if s.emitted[name] {
		return true
	}
	if s.failed[name] {
		return false
	}

	super, ok := s.ensureParent(ctx, iface, f.Name)
	if !ok {
		s.failed[name] = true
		s.diags.Error(iface.Name, f.Path, fmt.Errorf("%w %s: superclass %s was not generated", ErrEmit, name, super))
		return false
	}

	translations, err := s.aggregator.Translations(f)
	if err != nil {
		s.failed[name] = true
		s.diags.Error(iface.Name, f.Path, err)
		return false
	}

	return s.emit(ctx, ClassModel{
		Interface:     iface,
		TypeName:      name,
		SuperTypeName: super,
		Locale:        f.Name.Locale,
		Translations:  translations,
		Source:        f.Path,
	})
}

// ensureParent makes sure the superclass of a class named by fn exists in this
// pass and returns its type name.
func (s *Synthesizer) ensureParent(ctx context.Context, iface *MessageInterface, fn TranslationFileName) (string, bool) {
	parent := fn.Enclosing()
	super := iface.TypeNameFor(parent.Locale)
	if parent.IsBase() {
		// The primary type is emitted before any translation.
		return super, true
	}
	if parent == fn || parent.Locale.Depth() >= fn.Locale.Depth() {
		s.diags.Warn(iface.Name, fn.String(), "", fmt.Sprintf("locale chain of %s does not shrink, skipped", fn))
		return super, false
	}
	if s.emitted[super] {
		return super, true
	}
	if s.pending[super] {
		s.diags.Warn(iface.Name, fn.String(), "", fmt.Sprintf("cycle through %s, skipped", super))
		return super, false
	}
	s.pending[super] = true
	defer delete(s.pending, super)

	pf, found, err := s.discovery.Lookup(iface, parent)
	if err != nil {
		s.diags.Error(iface.Name, "", err)
		return super, false
	}
	if found && s.generateFile(ctx, pf) {
		return super, true
	}
	if found {
		s.diags.Warn(iface.Name, pf.Path, "", fmt.Sprintf("%s could not be generated, emitting it without translations", super))
		delete(s.failed, super)
	}
	return super, s.synthesize(ctx, iface, parent)
}

// synthesize emits an empty class for a locale that has no file on disk.
func (s *Synthesizer) synthesize(ctx context.Context, iface *MessageInterface, fn TranslationFileName) bool {
	name := iface.TypeNameFor(fn.Locale)
	if s.emitted[name] {
		return true
	}
	super, ok := s.ensureParent(ctx, iface, fn)
	if !ok {
		s.failed[name] = true
		return false
	}
	s.diags.Notef(iface.Name, "", "synthesizing empty %s for missing %s", name, fn)
	return s.emit(ctx, ClassModel{
		Interface:     iface,
		TypeName:      name,
		SuperTypeName: super,
		Locale:        fn.Locale,
		Translations:  TranslationKeyMap{},
		Synthetic:     true,
	})
}

func (s *Synthesizer) emit(ctx context.Context, c ClassModel) bool {
	ctx, span := tracer.Start(ctx, "msgtrans.class", trace.WithAttributes(
		attribute.String("msgtrans.class", c.QualifiedName()),
		attribute.String("msgtrans.super", c.QualifiedSuperName()),
		attribute.Bool("msgtrans.synthetic", c.Synthetic),
		attribute.Int("msgtrans.translations", len(c.Translations)),
	))
	defer span.End()

	if err := s.emitter.Emit(ctx, c); err != nil {
		s.failed[c.TypeName] = true
		s.diags.Error(c.Interface.Name, c.Source, fmt.Errorf("%w %s: %v", ErrEmit, c.QualifiedName(), err))
		span.RecordError(err)
		return false
	}
	s.emitted[c.TypeName] = true
	s.classes = append(s.classes, c)
	recordClass(ctx, c)
	return true
}
