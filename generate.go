package msgtrans

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type interfaceResult struct {
	report InterfaceReport
	diags  []Diagnostic
}

// Generate runs one pass over cfg.Root: scan message interfaces, then for each
// interface emit its primary type, its translations and its locale index.
// Interfaces run in parallel and share nothing; failures are isolated to the
// smallest unit and returned in the report's diagnostics. Only a failure to
// scan the tree, or cancellation, is returned as an error.
func Generate(ctx context.Context, cfg Config, emitter Emitter) (*Report, error) {
	report := &Report{RunID: uuid.NewString(), Root: cfg.Root}
	ctx, span := tracer.Start(ctx, "msgtrans.generate", trace.WithAttributes(
		attribute.String("msgtrans.run_id", report.RunID),
		attribute.String("msgtrans.root", cfg.Root),
	))
	defer span.End()

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	scanDiags := NewDiagnostics()
	ifaces, err := ScanTree(ctx, cfg.Root, workers, scanDiags)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("scan %s: %w", cfg.Root, err)
	}
	scanned := scanDiags.Drain()
	report.Diagnostics = append(report.Diagnostics, scanned...)

	results := make([]interfaceResult, len(ifaces))
	pool := pond.NewPool(workers, pond.WithContext(ctx))
	group := pool.NewGroup()
	for i, iface := range ifaces {
		group.Submit(func() {
			results[i] = generateInterface(ctx, cfg, iface, emitter)
		})
	}
	waitErr := group.Wait()
	pool.StopAndWait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if waitErr != nil {
		return nil, waitErr
	}

	for _, r := range results {
		report.Interfaces = append(report.Interfaces, r.report)
		report.Diagnostics = append(report.Diagnostics, r.diags...)
	}
	if e, ok := emitter.(*GoEmitter); ok {
		report.Written = e.Written()
		pruneDiags := NewDiagnostics()
		report.Removed = pruneStale(cfg.Root, e, ifaces, results, scanned, pruneDiags)
		report.Diagnostics = append(report.Diagnostics, pruneDiags.Drain()...)
	}
	recordDiagnostics(ctx, report.Diagnostics)
	span.SetAttributes(
		attribute.Int("msgtrans.interfaces", len(report.Interfaces)),
		attribute.Int("msgtrans.classes", report.Classes()),
	)
	return report, nil
}

// Check runs a pass that validates everything and writes nothing.
func Check(ctx context.Context, cfg Config) (*Report, error) {
	return Generate(ctx, cfg, NopEmitter{})
}

func generateInterface(ctx context.Context, cfg Config, iface *MessageInterface, emitter Emitter) interfaceResult {
	ctx, span := tracer.Start(ctx, "msgtrans.interface", trace.WithAttributes(
		attribute.String("msgtrans.interface", iface.QualifiedName()),
		attribute.String("msgtrans.kind", iface.Kind.String()),
	))
	defer span.End()

	diags := NewDiagnostics()
	fail := func(classes []ClassModel) interfaceResult {
		r := newInterfaceReport(iface, classes)
		r.Failed = true
		return interfaceResult{report: r, diags: diags.Drain()}
	}

	primary := PrimaryClass(iface)
	if err := emitter.Emit(ctx, primary); err != nil {
		span.RecordError(err)
		diags.Error(iface.Name, "", fmt.Errorf("%w %s: %v", ErrEmit, primary.QualifiedName(), err))
		return fail(nil)
	}
	recordClass(ctx, primary)

	disc := NewDiscovery(cfg.TranslationRoot)
	agg := NewAggregator(disc, cfg.Encoding, diags)
	syn := NewSynthesizer(disc, agg, emitter, diags)
	translated, err := syn.Generate(ctx, iface)
	classes := append([]ClassModel{primary}, translated...)
	if err != nil {
		span.RecordError(err)
		diags.Error(iface.Name, disc.Dir(iface), err)
		return fail(classes)
	}
	if len(translated) == 0 {
		diags.Notef(iface.Name, "", "no translation files in %s", disc.Dir(iface))
	}

	if cfg.Index {
		for _, c := range translated {
			if _, err := c.Locale.Tag(); err != nil {
				diags.Warn(iface.Name, c.Source, "", fmt.Sprintf("locale %s is not a BCP 47 tag, left out of the lookup: %v", c.Locale, err))
			}
		}
		if err := emitter.EmitIndex(ctx, iface, classes); err != nil {
			diags.Error(iface.Name, "", fmt.Errorf("%w %s locale index: %v", ErrEmit, iface.QualifiedName(), err))
		}
	}
	return interfaceResult{report: newInterfaceReport(iface, classes), diags: diags.Drain()}
}

// pruneStale removes generated files no interface of this pass produced, such
// as those of a removed or renamed interface. Packages that failed to scan and
// interfaces that reported errors keep their previous output.
func pruneStale(root string, e *GoEmitter, ifaces []*MessageInterface, results []interfaceResult, scanned []Diagnostic, diags *Diagnostics) []string {
	root, err := filepath.Abs(root)
	if err != nil {
		diags.Error("", root, err)
		return nil
	}
	dirs, err := packageDirs(root)
	if err != nil {
		diags.Error("", root, err)
		return nil
	}
	protected := make(map[string]bool)
	for _, d := range scanned {
		if d.Severity == SeverityError && d.File != "" {
			protected[d.File] = true
		}
	}
	if e.Dir != "" && len(protected) > 0 {
		return nil
	}
	var candidates []string
	for _, d := range dirs {
		if !protected[d] {
			candidates = append(candidates, d)
		}
	}

	var owned []string
	for i, r := range results {
		for _, d := range r.diags {
			if d.Severity != SeverityError {
				continue
			}
			dir := ifaces[i].Dir
			if e.Dir != "" {
				dir = e.Dir
			}
			owned = append(owned, filepath.Join(dir, filePrefix(ifaces[i])+"_"))
			break
		}
	}
	keep := func(path string) bool {
		for _, prefix := range owned {
			if strings.HasPrefix(path, prefix) {
				return true
			}
		}
		return false
	}
	return e.Prune(candidates, keep, diags)
}
