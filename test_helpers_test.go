package msgtrans

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func containsStr(s, substr string) bool {
	return strings.Contains(s, substr)
}

// writeFiles writes name → content pairs below root, creating directories.
func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

// testBundle builds an in-memory bundle interface in dir. Each method is
// given as "Name=key=default message"; an empty key means the method name.
func testBundle(dir, name string, methods ...string) *MessageInterface {
	iface := &MessageInterface{
		ImportPath:  "example.com/app",
		PackageName: "app",
		Dir:         dir,
		RelDir:      ".",
		Name:        name,
	}
	for _, spec := range methods {
		parts := strings.SplitN(spec, "=", 3)
		m := &Method{Name: parts[0], Key: parts[1], Message: parts[2], Result: "string", Interface: iface}
		if m.Key == "" {
			m.Key = m.Name
		}
		iface.Methods = append(iface.Methods, m)
	}
	return iface
}

func methodNamed(iface *MessageInterface, name string) *Method {
	for _, m := range iface.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// recordingEmitter keeps every class it is asked to emit. Types listed in
// fail are rejected.
type recordingEmitter struct {
	mu      sync.Mutex
	classes []ClassModel
	indexes map[string][]ClassModel
	fail    map[string]bool
}

func (e *recordingEmitter) Emit(_ context.Context, c ClassModel) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.fail[c.TypeName] {
		return errors.New("rejected")
	}
	e.classes = append(e.classes, c)
	return nil
}

func (e *recordingEmitter) EmitIndex(_ context.Context, iface *MessageInterface, classes []ClassModel) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.indexes == nil {
		e.indexes = make(map[string][]ClassModel)
	}
	e.indexes[iface.QualifiedName()] = classes
	return nil
}

func (e *recordingEmitter) typeNames() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.classes))
	for i, c := range e.classes {
		out[i] = c.TypeName
	}
	return out
}

func (e *recordingEmitter) class(name string) (ClassModel, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, c := range e.classes {
		if c.TypeName == name {
			return c, true
		}
	}
	return ClassModel{}, false
}
