package internal

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/starford/upfront/internal/apperr"
	"github.com/starford/upfront/internal/models"
	"github.com/starford/upfront/internal/testutil"
)

type runResult struct {
	err    error
	stdout string
	stderr string
}

func runEdit(t *testing.T, path, field, value, input string) runResult {
	t.Helper()
	cfg := NewDefaultConfig()
	cfg.Output.Color = "never"
	var stdout, stderr bytes.Buffer
	err := Run(context.Background(),
		WithConfig(cfg),
		WithRequest(models.EditRequest{Path: path, Field: field, Value: value}),
		WithIO(strings.NewReader(input), &stdout, &stderr),
	)
	return runResult{err: err, stdout: stdout.String(), stderr: stderr.String()}
}

func TestRun_ConfirmedSave(t *testing.T) {
	for _, input := range []string{"y\n", "Y\n", "yes\n"} {
		path := testutil.WriteNote(t, "---\ntitle: Old\n---\nBody stays.\n")
		res := runEdit(t, path, "title", "New", input)
		if res.err != nil {
			t.Fatalf("Run(%q): %v", input, res.err)
		}
		if got := testutil.ReadNote(t, path); got != "---\ntitle: New\n---\nBody stays.\n" {
			t.Errorf("file = %q", got)
		}
		if !strings.Contains(res.stdout, `Field "title" updated in `+path) {
			t.Errorf("stdout = %q", res.stdout)
		}
	}
}

func TestRun_Declined(t *testing.T) {
	original := "---\ntitle: Old\n---\nBody\n"
	for _, input := range []string{"n\n", "\n", ""} {
		path := testutil.WriteNote(t, original)
		res := runEdit(t, path, "title", "New", input)
		if res.err != nil {
			t.Fatalf("Run(%q): %v", input, res.err)
		}
		if got := testutil.ReadNote(t, path); got != original {
			t.Errorf("file modified on decline: %q", got)
		}
		if !strings.Contains(res.stdout, "Changes discarded") {
			t.Errorf("stdout = %q", res.stdout)
		}
	}
}

func TestRun_OutputShowsDiff(t *testing.T) {
	path := testutil.WriteNote(t, "---\ntitle: Old\n---\nBody\n")
	res := runEdit(t, path, "title", "New", "n\n")
	want := []string{
		"Old content:\n---\ntitle: Old\n---\nBody\n" + separator + "\n\n",
		"New content:\n  ---\n- title: Old\n+ title: New\n  ---\n  Body\n",
		"Save changes? [y/N] ",
	}
	for _, w := range want {
		if !strings.Contains(res.stdout, w) {
			t.Errorf("stdout missing %q:\n%s", w, res.stdout)
		}
	}
}

func TestRun_FieldNotFound(t *testing.T) {
	original := "---\ntitle: Old\n---\nBody\n"
	path := testutil.WriteNote(t, original)
	res := runEdit(t, path, "author", "Me", "y\n")
	if !errors.Is(res.err, apperr.ErrFieldNotFound) {
		t.Fatalf("err = %v, want ErrFieldNotFound", res.err)
	}
	if apperr.ExitCode(res.err) != 1 {
		t.Error("field not found should exit 1")
	}
	if got := testutil.ReadNote(t, path); got != original {
		t.Errorf("file modified: %q", got)
	}
}

func TestRun_NoFrontmatterEchoesContent(t *testing.T) {
	original := "# No frontmatter here\n"
	path := testutil.WriteNote(t, original)
	res := runEdit(t, path, "title", "New", "y\n")
	if !errors.Is(res.err, apperr.ErrNoFrontmatter) {
		t.Fatalf("err = %v, want ErrNoFrontmatter", res.err)
	}
	if !strings.Contains(res.stdout, original) {
		t.Errorf("stdout should echo the note: %q", res.stdout)
	}
}

func TestRun_OverwritesList(t *testing.T) {
	path := testutil.WriteNote(t, "---\ntags:\n  - one\n  - two\ntitle: T\n---\nBody\n")
	res := runEdit(t, path, "tags", "solo", "y\n")
	if res.err != nil {
		t.Fatalf("Run: %v", res.err)
	}
	got := testutil.ReadNote(t, path)
	if got != "---\ntags: solo\ntitle: T\n---\nBody\n" {
		t.Errorf("file = %q", got)
	}
}

func TestRun_InvalidYAML(t *testing.T) {
	original := "---\ntitle: [broken\n---\nBody\n"
	path := testutil.WriteNote(t, original)
	res := runEdit(t, path, "title", "x", "y\n")
	if !errors.Is(res.err, apperr.ErrYAMLParse) {
		t.Fatalf("err = %v, want ErrYAMLParse", res.err)
	}
	if res.stdout != "" {
		t.Errorf("parse failure should print nothing to stdout: %q", res.stdout)
	}
}

func TestRun_InvalidRequest(t *testing.T) {
	res := runEdit(t, "", "title", "x", "y\n")
	if !errors.Is(res.err, apperr.ErrUsage) {
		t.Fatalf("err = %v, want ErrUsage", res.err)
	}
}

func TestRun_RequiresConfig(t *testing.T) {
	if err := Run(context.Background()); err == nil {
		t.Fatal("Run without config should fail")
	}
}

func TestRun_DebugLogsToStderr(t *testing.T) {
	path := testutil.WriteNote(t, "---\ntitle: Old\n---\n")
	cfg := NewDefaultConfig()
	cfg.App.LogLevel = slog.LevelDebug
	cfg.App.LogFormat = LogFormatJSON
	var stdout, stderr bytes.Buffer
	err := Run(context.Background(),
		WithConfig(cfg),
		WithRequest(models.EditRequest{Path: path, Field: "title", Value: "New"}),
		WithIO(strings.NewReader("n\n"), &stdout, &stderr),
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(stderr.String(), `"msg":"note loaded"`) {
		t.Errorf("stderr = %q", stderr.String())
	}
	if strings.Contains(stdout.String(), "note loaded") {
		t.Error("logs leaked to stdout")
	}
}

func TestRun_SameValueSaysSo(t *testing.T) {
	original := "---\ntitle: Same\n---\nBody\n"
	path := testutil.WriteNote(t, original)
	res := runEdit(t, path, "title", "Same", "n\n")
	if res.err != nil {
		t.Fatalf("Run: %v", res.err)
	}
	if !strings.Contains(res.stdout, `Field "title" already holds this value`) {
		t.Errorf("stdout = %q", res.stdout)
	}
	if strings.Contains(res.stdout, "+ ") || strings.Contains(res.stdout, "- ") {
		t.Errorf("diff should be all unchanged: %q", res.stdout)
	}
}

func TestRun_ChangedValueHasNoSameValueNotice(t *testing.T) {
	path := testutil.WriteNote(t, "---\ntitle: Old\n---\nBody\n")
	res := runEdit(t, path, "title", "New", "n\n")
	if strings.Contains(res.stdout, "already holds this value") {
		t.Errorf("unexpected notice: %q", res.stdout)
	}
}

func TestRun_InvalidUTF8Rejected(t *testing.T) {
	original := "---\ntitle: Old\n---\nbad \xff bytes\n"
	path := testutil.WriteNote(t, original)
	res := runEdit(t, path, "title", "New", "y\n")
	if !errors.Is(res.err, apperr.ErrRead) {
		t.Fatalf("err = %v, want ErrRead", res.err)
	}
	if got := testutil.ReadNote(t, path); got != original {
		t.Errorf("file modified: %q", got)
	}
}
