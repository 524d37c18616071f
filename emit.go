package msgtrans

import (
	"bytes"
	"context"
	"fmt"
	"go/format"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"text/template"
	"unicode"

	"golang.org/x/text/language"
)

// ImportPath is this package's import path, referenced by generated loggers.
const ImportPath = "github.com/hironow/msgtrans"

const generatedHeader = "// Code generated by msgtrans. DO NOT EDIT."

// Emitter turns class models into compilation units.
type Emitter interface {
	Emit(ctx context.Context, c ClassModel) error
	// EmitIndex writes the locale lookup for an interface's emitted classes.
	EmitIndex(ctx context.Context, iface *MessageInterface, classes []ClassModel) error
}

// GoEmitter writes Go source files next to the message interface.
type GoEmitter struct {
	// DryRun renders and formats sources without writing them.
	DryRun bool
	// Dir, when set, overrides the package directory as output location.
	Dir string

	mu      sync.Mutex
	written []string
}

// Written returns the paths written (or that would have been, in dry-run mode).
func (e *GoEmitter) Written() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := append([]string(nil), e.written...)
	sort.Strings(out)
	return out
}

func (e *GoEmitter) Emit(ctx context.Context, c ClassModel) error {
	src, err := RenderClass(c)
	if err != nil {
		return err
	}
	return e.write(c.Interface, ClassFileName(c), src)
}

func (e *GoEmitter) EmitIndex(ctx context.Context, iface *MessageInterface, classes []ClassModel) error {
	src, err := RenderIndex(iface, classes)
	if err != nil {
		return err
	}
	return e.write(iface, IndexFileName(iface), src)
}

func (e *GoEmitter) write(iface *MessageInterface, name string, src []byte) error {
	dir := iface.Dir
	if e.Dir != "" {
		dir = e.Dir
	}
	path := filepath.Join(dir, name)
	if !e.DryRun {
		if err := os.WriteFile(path, src, 0644); err != nil {
			return err
		}
	}
	e.mu.Lock()
	e.written = append(e.written, path)
	e.mu.Unlock()
	return nil
}

// Prune removes the msgtrans-generated files in dirs that e did not write,
// leaving files for which keep reports true. Only "*_gen.go" files starting
// with the generated header are candidates. Files that cannot be removed are
// reported to diags. Prune returns the removed paths (or those that would
// have been, in dry-run mode).
func (e *GoEmitter) Prune(dirs []string, keep func(path string) bool, diags *Diagnostics) []string {
	written := make(map[string]bool)
	for _, p := range e.Written() {
		written[p] = true
	}
	if e.Dir != "" {
		dirs = []string{e.Dir}
	}

	var removed []string
	for _, dir := range dirs {
		matches, err := filepath.Glob(filepath.Join(dir, "*_gen.go"))
		if err != nil {
			continue
		}
		for _, path := range matches {
			if written[path] || (keep != nil && keep(path)) || !isGenerated(path) {
				continue
			}
			if !e.DryRun {
				if err := os.Remove(path); err != nil {
					diags.Error("", path, fmt.Errorf("remove stale generated file: %w", err))
					continue
				}
			}
			removed = append(removed, path)
		}
	}
	sort.Strings(removed)
	return removed
}

// isGenerated reports whether the file at path starts with the msgtrans header.
func isGenerated(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	buf := make([]byte, len(generatedHeader))
	if _, err := io.ReadFull(f, buf); err != nil {
		return false
	}
	return string(buf) == generatedHeader
}

// NopEmitter accepts every class and writes nothing.
type NopEmitter struct{}

func (NopEmitter) Emit(context.Context, ClassModel) error { return nil }

func (NopEmitter) EmitIndex(context.Context, *MessageInterface, []ClassModel) error { return nil }

// ClassFileName is "<snake iface>_<kind>[_<locale>]_gen.go". The trailing
// "_gen" keeps locale suffixes from being read as GOOS/GOARCH constraints.
func ClassFileName(c ClassModel) string {
	base := filePrefix(c.Interface)
	if !c.Locale.IsRoot() {
		base += "_" + c.Locale.String()
	}
	return base + "_gen.go"
}

// filePrefix is the name prefix shared by every file generated for iface.
func filePrefix(iface *MessageInterface) string {
	return snakeCase(iface.Name) + "_" + iface.Kind.String()
}

// IndexFileName is "<snake iface>_<kind>_locales_gen.go".
func IndexFileName(iface *MessageInterface) string {
	return filePrefix(iface) + "_locales_gen.go"
}

type methodView struct {
	Receiver  string
	Name      string
	Signature string
	Body      string
}

type classView struct {
	Header      string
	Source      string
	Package     string
	Imports     []string
	Interface   string
	Type        string
	Super       string
	Locale      string
	Primary     bool
	Synthetic   bool
	Logger      bool
	Constructor string
	Methods     []methodView
}

var classTemplate = template.Must(template.New("class").Parse(`{{.Header}}
{{- if .Source}}
// Source: {{.Source}}
{{- end}}

package {{.Package}}
{{if .Imports}}
import (
{{- range .Imports}}
	{{.}}
{{- end}}
)
{{end}}
{{if .Primary}}
// {{.Type}} implements {{.Interface}} with its default messages.
type {{.Type}} struct {
{{- if .Logger}}
	msgtrans.BasicLogger
{{- end}}
}

var _ {{.Interface}} = {{.Type}}{}
{{- if .Logger}}

// {{.Constructor}} returns a {{.Type}} printing through l.
func {{.Constructor}}(l msgtrans.BasicLogger) {{.Type}} {
	return {{.Type}}{BasicLogger: l}
}
{{- end}}
{{- else}}
// {{.Type}} is the {{.Locale}} translation of {{.Interface}}.
{{- if .Synthetic}}
// It has no translations of its own and defers to {{.Super}}.
{{- end}}
type {{.Type}} struct {
	{{.Super}}
}
{{- end}}
{{range .Methods}}
func ({{.Receiver}}) {{.Name}}{{.Signature}} {
	{{.Body}}
}
{{end}}`))

// RenderClass renders and gofmts the source of one generated type.
func RenderClass(c ClassModel) ([]byte, error) {
	iface := c.Interface
	v := classView{
		Header:      generatedHeader,
		Package:     iface.PackageName,
		Interface:   iface.Name,
		Type:        c.TypeName,
		Super:       c.SuperTypeName,
		Locale:      c.Locale.String(),
		Primary:     c.Primary,
		Synthetic:   c.Synthetic,
		Logger:      iface.Kind == KindLogger,
		Constructor: exportedLike(iface.Name, "new", c.TypeName),
	}
	if c.Source != "" {
		v.Source = filepath.Base(c.Source)
	}

	imports := make(map[string]string)
	if c.Primary && v.Logger {
		imports[ImportPath] = ""
	}
	for _, m := range c.Translations.Methods() {
		mv, used := renderMethod(c.TypeName, iface.Kind, m, c.Translations[m])
		v.Methods = append(v.Methods, mv)
		for path, name := range used {
			imports[path] = name
		}
	}
	v.Imports = importLines(imports)

	var buf bytes.Buffer
	if err := classTemplate.Execute(&buf, v); err != nil {
		return nil, err
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", c.TypeName, err)
	}
	return src, nil
}

func renderMethod(typeName string, kind Kind, m *Method, message string) (methodView, map[string]string) {
	used := make(map[string]string)
	for _, imp := range m.Imports {
		used[imp.Path] = imp.Name
	}

	recv := "r"
	for paramNamed(m.Params, recv) {
		recv += "_"
	}

	var params, args []string
	variadic := ""
	for _, p := range m.Params {
		if p.Variadic {
			params = append(params, p.Name+" ..."+p.Type)
			variadic = p.Name
			continue
		}
		params = append(params, p.Name+" "+p.Type)
		args = append(args, p.Name)
	}
	sig := "(" + strings.Join(params, ", ") + ")"
	if m.Result != "" {
		sig += " " + m.Result
	}

	lit := strconv.Quote(message)
	var body string
	switch {
	case kind == KindLogger:
		used[ImportPath] = ""
		body = fmt.Sprintf("%s.Logf(msgtrans.%s, %s%s)", recv, m.Level.GoName(), lit, callArgs(args, variadic))
	case m.Result == "error" && len(m.Params) == 0:
		used["errors"] = ""
		body = "return errors.New(" + lit + ")"
	case m.Result == "error":
		used["fmt"] = ""
		body = "return fmt.Errorf(" + lit + callArgs(args, variadic) + ")"
	case len(m.Params) == 0:
		body = "return " + lit
	default:
		used["fmt"] = ""
		body = "return fmt.Sprintf(" + lit + callArgs(args, variadic) + ")"
	}

	receiver := typeName
	if kind == KindLogger {
		receiver = recv + " " + typeName
	}
	return methodView{Receiver: receiver, Name: m.Name, Signature: sig, Body: body}, used
}

func callArgs(args []string, variadic string) string {
	switch {
	case variadic == "" && len(args) == 0:
		return ""
	case variadic == "":
		return ", " + strings.Join(args, ", ")
	case len(args) == 0:
		return ", " + variadic + "..."
	default:
		return ", append([]any{" + strings.Join(args, ", ") + "}, " + variadic + "...)..."
	}
}

func paramNamed(params []Param, name string) bool {
	for _, p := range params {
		if p.Name == name {
			return true
		}
	}
	return false
}

func importLines(imports map[string]string) []string {
	paths := make([]string, 0, len(imports))
	for p := range imports {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	lines := make([]string, 0, len(paths))
	for _, p := range paths {
		if name := imports[p]; name != "" {
			lines = append(lines, name+" "+strconv.Quote(p))
			continue
		}
		lines = append(lines, strconv.Quote(p))
	}
	return lines
}

type indexCase struct {
	Index int
	Expr  string
}

type indexView struct {
	Header    string
	Package   string
	Logger    bool
	Interface string
	Primary   string
	Func      string
	TagsVar   string
	Matcher   string
	Select    string
	Tags      []string
	Cases     []indexCase
	Private   []privateTag
}

type privateTag struct {
	Index int
	Tag   string
}

var indexTemplate = template.Must(template.New("index").Parse(`{{.Header}}

package {{.Package}}

import (
{{- if .Logger}}
	"github.com/hironow/msgtrans"
{{- end}}
	"golang.org/x/text/language"
)

var {{.TagsVar}} = []language.Tag{
	language.Und,
{{- range .Tags}}
	language.MustParse({{printf "%q" .}}),
{{- end}}
}

var {{.Matcher}} = language.NewMatcher({{.TagsVar}})

// {{.Select}} returns the index in {{.TagsVar}} of the best match for tags.
{{- if .Private}}
// A private use locale is only selected when it is the first preference.
{{- end}}
func {{.Select}}(tags []language.Tag) int {
{{- if .Private}}
	if len(tags) > 0 {
		switch tags[0].String() {
{{- range .Private}}
		case {{printf "%q" .Tag}}:
			return {{.Index}}
{{- end}}
		}
	}
{{- end}}
	_, i, _ := {{.Matcher}}.Match(tags...)
	return i
}

{{if .Logger -}}
// {{.Func}} returns the {{.Interface}} translation best matching tags,
// printing through l.
func {{.Func}}(l msgtrans.BasicLogger, tags ...language.Tag) {{.Interface}} {
	switch {{.Select}}(tags) {
{{- range .Cases}}
	case {{.Index}}:
		return {{.Expr}}
{{- end}}
	}
	return {{.Primary}}{BasicLogger: l}
}
{{- else -}}
// {{.Func}} returns the {{.Interface}} translation best matching tags.
func {{.Func}}(tags ...language.Tag) {{.Interface}} {
	switch {{.Select}}(tags) {
{{- range .Cases}}
	case {{.Index}}:
		return {{.Expr}}
{{- end}}
	}
	return {{.Primary}}{}
}
{{- end}}
`))

// RenderIndex renders the locale lookup of an interface. Classes whose locale
// is not a valid BCP 47 tag, or duplicates an earlier tag, are left out.
func RenderIndex(iface *MessageInterface, classes []ClassModel) ([]byte, error) {
	primary := iface.PrimaryTypeName()
	v := indexView{
		Header:    generatedHeader,
		Package:   iface.PackageName,
		Logger:    iface.Kind == KindLogger,
		Interface: iface.Name,
		Primary:   primary,
		Func:      exportedLike(iface.Name, "lookup", primary),
		TagsVar:   lowerFirst(primary) + "Tags",
		Matcher:   lowerFirst(primary) + "Matcher",
		Select:    lowerFirst(primary) + "Index",
	}

	supers := make(map[string]string, len(classes))
	for _, c := range classes {
		supers[c.TypeName] = c.SuperTypeName
	}
	seen := make(map[language.Tag]bool)
	for _, c := range classes {
		if c.Primary || c.Locale.IsRoot() {
			continue
		}
		tag, err := c.Locale.Tag()
		if err != nil || seen[tag] {
			continue
		}
		seen[tag] = true
		v.Tags = append(v.Tags, tag.String())
		v.Cases = append(v.Cases, indexCase{Index: len(v.Tags), Expr: constructorExpr(c.TypeName, supers, primary, v.Logger)})
		if strings.Contains(tag.String(), "-x-") {
			v.Private = append(v.Private, privateTag{Index: len(v.Tags), Tag: tag.String()})
		}
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, v); err != nil {
		return nil, err
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format %s index: %w", iface.Name, err)
	}
	return src, nil
}

// constructorExpr builds the composite literal of a generated type. Bundles
// are usable as zero values; loggers nest down to the primary's sink.
func constructorExpr(typeName string, supers map[string]string, primary string, logger bool) string {
	if !logger {
		return typeName + "{}"
	}
	if typeName == primary {
		return primary + "{BasicLogger: l}"
	}
	super, ok := supers[typeName]
	if !ok || super == "" {
		super = primary
	}
	return typeName + "{" + constructorExpr(super, supers, primary, logger) + "}"
}

// exportedLike builds prefix+name, exported only when iface is exported.
func exportedLike(iface, prefix, name string) string {
	if iface != "" && unicode.IsUpper([]rune(iface)[0]) {
		return upperFirst(prefix) + upperFirst(name)
	}
	return prefix + upperFirst(name)
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// snakeCase turns "HTTPErrors" into "http_errors".
func snakeCase(s string) string {
	r := []rune(s)
	var b strings.Builder
	for i, c := range r {
		if unicode.IsUpper(c) {
			if i > 0 && (unicode.IsLower(r[i-1]) || (i+1 < len(r) && unicode.IsLower(r[i+1]) && unicode.IsUpper(r[i-1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(c))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}
