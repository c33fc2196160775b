package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/bethropolis/dupline/internal/app"
)

func TestRunBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("foo bar\nfoo"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	a, err := app.NewApp(app.Options{FilePath: path})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	defer a.Close()

	sels, err := parseSelections("1:1-1:4")
	if err != nil {
		t.Fatalf("parseSelections() error = %v", err)
	}
	a.SetSelections(sels)

	var out bytes.Buffer
	if err := runBatch(a, "duplicate-line-right", true, &out); err != nil {
		t.Fatalf("runBatch() error = %v", err)
	}
	want := "foo foo bar\nfoo\n-- selections: 1:5-1:8\n-- occurrences: 3 Reps\n"
	if out.String() != want {
		t.Errorf("output =\n%s\nwant\n%s", out.String(), want)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "foo foo bar\nfoo" {
		t.Errorf("written file = %q", data)
	}

	if err := runBatch(a, "no-such-command", false, &out); err == nil {
		t.Error("unknown command should fail")
	}
}
