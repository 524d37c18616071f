package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

const fixtureMessages = `package app

//msgtrans:bundle
type Messages interface {
	//msgtrans:message Hello, %s!
	Greeting(name string) string

	//msgtrans:message Goodbye
	//msgtrans:key farewell
	Farewell() string
}
`

// writeFixture creates a one-package module under t.TempDir and returns its root.
func writeFixture(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	all := map[string]string{
		"go.mod":          "module example.com/app\n\ngo 1.26\n",
		"app/messages.go": fixtureMessages,
	}
	for name, content := range files {
		all[name] = content
	}
	for name, content := range all {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("MSGTRANS_QUIET", "1")
	root := NewRootCommand()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(new(bytes.Buffer))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}
