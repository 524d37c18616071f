package msgtrans

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

const directivePrefix = "//msgtrans:"

// BasicLoggerMarker stands for msgtrans.BasicLogger when embedded by a logger
// interface: a capability without translatable methods.
var BasicLoggerMarker = &MessageInterface{
	ImportPath:  ImportPath,
	PackageName: "msgtrans",
	Name:        "BasicLogger",
	Kind:        KindLogger,
	Marker:      true,
}

// ScanTree scans every package below root and returns its message interfaces
// sorted by qualified name. Invalid interfaces are reported to diags and left
// out; only a failure to walk root is returned.
func ScanTree(ctx context.Context, root string, workers int, diags *Diagnostics) ([]*MessageInterface, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	modPath, modRoot := findModule(root)

	dirs, err := packageDirs(root)
	if err != nil {
		return nil, err
	}

	results := make([][]*MessageInterface, len(dirs))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, dir := range dirs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ifaces, err := ScanPackage(root, dir, importPathOf(modPath, modRoot, dir), diags)
			if err != nil {
				diags.Error("", dir, err)
				return nil
			}
			results[i] = ifaces
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []*MessageInterface
	for _, r := range results {
		out = append(out, r...)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].QualifiedName() < out[b].QualifiedName() })
	return out, nil
}

// ScanPackage parses the Go files of dir, except tests and "_gen.go" output,
// and builds its message interfaces. A parse failure of the package is
// returned.
func ScanPackage(root, dir, importPath string, diags *Diagnostics) ([]*MessageInterface, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	fset := token.NewFileSet()
	s := &packageScanner{
		specs:  make(map[string]*ifaceSpec),
		built:  make(map[string]*MessageInterface),
		failed: make(map[string]bool),
		diags:  diags,
	}
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		rel = ""
	}
	s.base = MessageInterface{ImportPath: importPath, Dir: dir, RelDir: filepath.ToSlash(rel)}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") || strings.HasSuffix(name, "_gen.go") {
			continue
		}
		f, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ParseComments|parser.SkipObjectResolution)
		if err != nil {
			return nil, err
		}
		if s.base.PackageName == "" {
			s.base.PackageName = f.Name.Name
		} else if f.Name.Name != s.base.PackageName {
			continue
		}
		s.collect(f)
	}

	names := make([]string, 0, len(s.specs))
	for name, spec := range s.specs {
		if spec.directive != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var out []*MessageInterface
	for _, name := range names {
		if iface := s.build(name); iface != nil {
			out = append(out, iface)
		}
	}
	return out, nil
}

type ifaceSpec struct {
	name      string
	directive string
	typ       *ast.InterfaceType
	imports   map[string]string
	generic   bool
}

type packageScanner struct {
	base   MessageInterface
	specs  map[string]*ifaceSpec
	built  map[string]*MessageInterface
	failed map[string]bool
	diags  *Diagnostics
}

func (s *packageScanner) collect(f *ast.File) {
	imports := fileImports(f)
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, sp := range gd.Specs {
			ts := sp.(*ast.TypeSpec)
			it, ok := ts.Type.(*ast.InterfaceType)
			if !ok {
				continue
			}
			doc := ts.Doc
			if doc == nil && len(gd.Specs) == 1 {
				doc = gd.Doc
			}
			kind, _ := directive(doc, "bundle", "logger")
			s.specs[ts.Name.Name] = &ifaceSpec{
				name:      ts.Name.Name,
				directive: kind,
				typ:       it,
				imports:   imports,
				generic:   ts.TypeParams != nil && len(ts.TypeParams.List) > 0,
			}
		}
	}
}

func (s *packageScanner) fail(name string, err error) *MessageInterface {
	s.failed[name] = true
	s.diags.Error(name, s.base.Dir, fmt.Errorf("%w %s.%s: %v", ErrScan, s.base.ImportPath, name, err))
	return nil
}

// build returns the interface named name, building embedded interfaces first.
// It returns nil when the interface, or anything it embeds, is invalid.
func (s *packageScanner) build(name string) *MessageInterface {
	if iface, ok := s.built[name]; ok {
		return iface
	}
	if s.failed[name] {
		return nil
	}
	spec := s.specs[name]
	if spec.generic {
		return s.fail(name, errors.New("generic interfaces are not supported"))
	}

	iface := &MessageInterface{
		ImportPath:  s.base.ImportPath,
		PackageName: s.base.PackageName,
		Dir:         s.base.Dir,
		RelDir:      s.base.RelDir,
		Name:        name,
	}
	if spec.directive == "logger" {
		iface.Kind = KindLogger
	}
	// Registered before recursing so an embedding cycle terminates.
	s.built[name] = iface

	for _, field := range spec.typ.Methods.List {
		if len(field.Names) == 0 {
			ext, err := s.embedded(iface, spec, field.Type)
			if err != nil {
				delete(s.built, name)
				return s.fail(name, err)
			}
			iface.Extends = append(iface.Extends, ext)
			continue
		}
		ft, ok := field.Type.(*ast.FuncType)
		if !ok {
			continue
		}
		for _, n := range field.Names {
			m, err := buildMethod(iface, n.Name, field.Doc, ft, spec.imports)
			if err != nil {
				delete(s.built, name)
				return s.fail(name, err)
			}
			iface.Methods = append(iface.Methods, m)
		}
	}
	return iface
}

func (s *packageScanner) embedded(iface *MessageInterface, spec *ifaceSpec, expr ast.Expr) (*MessageInterface, error) {
	switch t := expr.(type) {
	case *ast.Ident:
		other, ok := s.specs[t.Name]
		if !ok || other.directive == "" {
			return nil, fmt.Errorf("embeds %s which is not a message interface", t.Name)
		}
		ext := s.build(t.Name)
		if ext == nil {
			return nil, fmt.Errorf("embeds invalid message interface %s", t.Name)
		}
		if ext.Kind != iface.Kind {
			return nil, fmt.Errorf("%s %s cannot embed %s %s", iface.Kind, iface.Name, ext.Kind, ext.Name)
		}
		return ext, nil
	case *ast.SelectorExpr:
		if x, ok := t.X.(*ast.Ident); ok && spec.imports[x.Name] == ImportPath && t.Sel.Name == BasicLoggerMarker.Name {
			if iface.Kind != KindLogger {
				return nil, fmt.Errorf("only logger interfaces may embed %s", BasicLoggerMarker.QualifiedName())
			}
			return BasicLoggerMarker, nil
		}
	}
	return nil, fmt.Errorf("unsupported embedded type %s", types.ExprString(expr))
}

func buildMethod(iface *MessageInterface, name string, doc *ast.CommentGroup, ft *ast.FuncType, imports map[string]string) (*Method, error) {
	msg, ok := directive(doc, "message")
	if !ok {
		return nil, fmt.Errorf("method %s has no //msgtrans:message directive", name)
	}
	m := &Method{Name: name, Key: name, Message: msg, Level: LevelInfo, Interface: iface}
	if key, ok := directive(doc, "key"); ok && key != "" {
		m.Key = key
	}
	if lvl, ok := directive(doc, "level"); ok {
		level, valid := ParseLevel(lvl)
		if !valid {
			return nil, fmt.Errorf("method %s has unknown level %q", name, lvl)
		}
		m.Level = level
	}

	used := make(map[string]bool)
	if ft.Params != nil {
		for _, field := range ft.Params.List {
			typ := field.Type
			variadic := false
			if e, ok := typ.(*ast.Ellipsis); ok {
				typ, variadic = e.Elt, true
				if ts := types.ExprString(typ); ts != "any" && ts != "interface{}" {
					return nil, fmt.Errorf("method %s: variadic parameter must be ...any, got ...%s", name, ts)
				}
			}
			for _, path := range selectorImports(typ, imports) {
				if !used[path] {
					used[path] = true
					m.Imports = append(m.Imports, importFor(path, imports))
				}
			}
			names := field.Names
			if len(names) == 0 {
				names = []*ast.Ident{{Name: "_"}}
			}
			for _, n := range names {
				pname := n.Name
				if pname == "_" {
					pname = "p" + strconv.Itoa(len(m.Params))
				}
				m.Params = append(m.Params, Param{Name: pname, Type: types.ExprString(typ), Variadic: variadic})
			}
		}
	}

	var results []string
	if ft.Results != nil {
		for _, field := range ft.Results.List {
			n := len(field.Names)
			if n == 0 {
				n = 1
			}
			for i := 0; i < n; i++ {
				results = append(results, types.ExprString(field.Type))
			}
		}
	}
	switch iface.Kind {
	case KindLogger:
		if len(results) != 0 {
			return nil, fmt.Errorf("logger method %s must not return values", name)
		}
	default:
		if len(results) != 1 || (results[0] != "string" && results[0] != "error") {
			return nil, fmt.Errorf("bundle method %s must return string or error", name)
		}
		m.Result = results[0]
	}
	return m, nil
}

// directive returns the value of the first //msgtrans:<name> line in doc.
func directive(doc *ast.CommentGroup, names ...string) (string, bool) {
	if doc == nil {
		return "", false
	}
	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, directivePrefix) {
			continue
		}
		rest := strings.TrimPrefix(c.Text, directivePrefix)
		word, value, _ := strings.Cut(rest, " ")
		for _, n := range names {
			if word != n {
				continue
			}
			if len(names) > 1 {
				return n, true
			}
			return strings.TrimSpace(value), true
		}
	}
	return "", false
}

// fileImports maps local package names to import paths.
func fileImports(f *ast.File) map[string]string {
	out := make(map[string]string)
	for _, imp := range f.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		name := path.Base(p)
		if imp.Name != nil {
			name = imp.Name.Name
		}
		out[name] = p
	}
	return out
}

func importFor(p string, imports map[string]string) Import {
	for name, ip := range imports {
		if ip == p && name != path.Base(p) {
			return Import{Name: name, Path: p}
		}
	}
	return Import{Path: p}
}

func selectorImports(expr ast.Expr, imports map[string]string) []string {
	var out []string
	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if x, ok := sel.X.(*ast.Ident); ok {
			if p, ok := imports[x.Name]; ok {
				out = append(out, p)
			}
		}
		return false
	})
	return out
}

// packageDirs lists directories below root holding Go files.
func packageDirs(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if p != root && (name == "vendor" || name == "testdata" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
			return filepath.SkipDir
		}
		matches, _ := filepath.Glob(filepath.Join(p, "*.go"))
		if len(matches) > 0 {
			dirs = append(dirs, p)
		}
		return nil
	})
	return dirs, err
}

// findModule walks up from dir to the nearest go.mod and returns its module
// path and directory.
func findModule(dir string) (string, string) {
	for d := dir; ; d = filepath.Dir(d) {
		if mod := readModulePath(filepath.Join(d, "go.mod")); mod != "" {
			return mod, d
		}
		if filepath.Dir(d) == d {
			return "", dir
		}
	}
}

func readModulePath(gomod string) string {
	f, err := os.Open(gomod)
	if err != nil {
		return ""
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if rest, ok := strings.CutPrefix(line, "module"); ok && (rest == "" || rest[0] == ' ' || rest[0] == '\t') {
			mod := strings.TrimSpace(rest)
			if unq, err := strconv.Unquote(mod); err == nil {
				mod = unq
			}
			return mod
		}
	}
	return ""
}

func importPathOf(modPath, modRoot, dir string) string {
	rel, err := filepath.Rel(modRoot, dir)
	if err != nil || strings.HasPrefix(rel, "..") {
		return ""
	}
	rel = filepath.ToSlash(rel)
	switch {
	case modPath == "":
		if rel == "." {
			return ""
		}
		return rel
	case rel == ".":
		return modPath
	default:
		return modPath + "/" + rel
	}
}
