//go:build smoke

package main

import (
	"errors"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smileynet/contactbook/internal/api/apitest"
	"github.com/smileynet/contactbook/internal/contact"
)

// TestSmoke_Binary exercises the built binary end-to-end against the fake
// backend, checking output and exit codes.
//
// Subtests run sequentially and depend on the first subtest building the binary.
func TestSmoke_Binary(t *testing.T) {
	projectRoot := findProjectRoot(t)
	binary := filepath.Join(t.TempDir(), "contactbook")
	home := t.TempDir()

	run := func(args ...string) (string, int) {
		t.Helper()
		cmd := exec.Command(binary, args...)
		cmd.Dir = t.TempDir()
		cmd.Env = append(os.Environ(), "HOME="+home)
		out, err := cmd.CombinedOutput()
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(out), exitErr.ExitCode()
		}
		if err != nil {
			t.Fatalf("running %v: %v", args, err)
		}
		return string(out), 0
	}

	t.Run("go build produces a contactbook binary", func(t *testing.T) {
		cmd := exec.Command("go", "build",
			"-ldflags", "-X main.version=smoke-test -X main.commit=abc1234 -X main.date=2026-01-01",
			"-o", binary, "./cmd/contactbook")
		cmd.Dir = projectRoot
		out, err := cmd.CombinedOutput()
		if err != nil {
			t.Fatalf("go build failed: %v\n%s", err, out)
		}
	})

	t.Run("version prints version commit and date", func(t *testing.T) {
		out, _ := run("--version")
		for _, want := range []string{"smoke-test", "abc1234", "2026-01-01"} {
			if !strings.Contains(out, want) {
				t.Errorf("version output = %q, want to contain %q", out, want)
			}
		}
	})

	t.Run("no args exits non-zero with usage", func(t *testing.T) {
		out, code := run()
		if code == 0 {
			t.Fatal("expected non-zero exit code when no command provided")
		}
		if !strings.Contains(out, "list") && !strings.Contains(out, "expected") {
			t.Errorf("expected usage or error output, got: %q", out)
		}
	})

	t.Run("list add delete round trip", func(t *testing.T) {
		backend := apitest.NewBackend(t, contact.Contact{ID: "1", Name: "Ada", Phone: "555-0100"})

		out, code := run("--api-url", backend.URL, "list")
		if code != exitSuccess || !strings.Contains(out, "Ada") {
			t.Fatalf("list: code %d, output:\n%s", code, out)
		}

		out, code = run("--api-url", backend.URL, "add", "Grace", "555-0101")
		if code != exitSuccess || !strings.Contains(out, "Grace") {
			t.Fatalf("add: code %d, output:\n%s", code, out)
		}

		out, code = run("--api-url", backend.URL, "delete", "1", "--yes")
		if code != exitSuccess || strings.Contains(out, "555-0100") {
			t.Fatalf("delete: code %d, output:\n%s", code, out)
		}
	})

	t.Run("invalid phone exits with setup code", func(t *testing.T) {
		backend := apitest.NewBackend(t)
		out, code := run("--api-url", backend.URL, "add", "Ada", "12")
		if code != exitSetup {
			t.Errorf("exit code = %d, want %d\n%s", code, exitSetup, out)
		}
		if backend.Total() != 0 {
			t.Errorf("backend requests = %d, want 0", backend.Total())
		}
	})

	t.Run("backend failure exits with backend code", func(t *testing.T) {
		backend := apitest.NewBackend(t)
		backend.Fail(apitest.RouteList, http.StatusServiceUnavailable)

		out, code := run("--api-url", backend.URL, "list")
		if code != exitBackend {
			t.Errorf("exit code = %d, want %d\n%s", code, exitBackend, out)
		}
		if !strings.Contains(out, "No contacts yet") || !strings.Contains(out, "error:") {
			t.Errorf("output should carry the empty list and the error:\n%s", out)
		}
	})

	t.Run("ui refuses without a terminal", func(t *testing.T) {
		out, code := run("ui")
		if code != exitSetup || !strings.Contains(out, "terminal") {
			t.Errorf("ui: code %d, output %q", code, out)
		}
	})
}

func findProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}
