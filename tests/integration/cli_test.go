package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestMain builds the stacked binary once before running tests.
func TestMain(m *testing.M) {
	projectRoot, err := FindProjectRoot()
	if err != nil {
		buildErr = err
		os.Exit(1)
	}

	tmpDir, err := os.MkdirTemp("", "stacked-test-*")
	if err != nil {
		buildErr = err
		os.Exit(1)
	}
	stackedBin = filepath.Join(tmpDir, "stacked")

	cmd := exec.Command("go", "build", "-o", stackedBin, "./cmd/stacked")
	cmd.Dir = projectRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		buildErr = &BuildError{Err: err, Output: string(output)}
		os.Exit(1)
	}

	code := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}

var backends = []string{"sqlite", "jsonl"}

// TestStackLifecycle walks one stack through add, list, show, update and
// delete against each durable backend.
func TestStackLifecycle(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			env := NewTestEnv(t, backend)
			env.MustRun("init")

			if _, err := os.Stat(env.DataDir); os.IsNotExist(err) {
				t.Fatal("data directory not created")
			}

			added := ParseJSON[Stack](t, env.MustRun("add", "--json",
				"--name", "App1",
				"--description", "weekend project",
				"--layer", "Supabase:Database",
				"--layer", "Vercel:Frontend",
			).Stdout)
			if added.ID == "" {
				t.Fatal("expected an id")
			}
			if len(added.ColorPalette) != 20 {
				t.Errorf("palette has %d entries, want 20", len(added.ColorPalette))
			}

			list := ParseJSON[[]Stack](t, env.MustRun("list", "--json").Stdout)
			if len(list) != 1 || list[0].ID != added.ID {
				t.Fatalf("list = %+v, want the added stack", list)
			}

			shown := ParseJSON[Stack](t, env.MustRun("show", added.ID, "--json").Stdout)
			if shown.Description != "weekend project" {
				t.Errorf("description = %q", shown.Description)
			}

			env.MustRun("update", added.ID, "--name", "App One")
			shown = ParseJSON[Stack](t, env.MustRun("show", added.ID, "--json").Stdout)
			if shown.ProjectName != "App One" {
				t.Errorf("name = %q, want App One", shown.ProjectName)
			}
			if shown.UpdatedAt == nil {
				t.Error("updatedAt not set after update")
			}
			if strings.Join(shown.ColorPalette, ",") != strings.Join(added.ColorPalette, ",") {
				t.Error("palette changed on update")
			}

			res := env.Run("n\n", "delete", added.ID)
			if res.ExitCode != 0 || !strings.Contains(res.Stdout, "Cancelled.") {
				t.Errorf("declined delete: exit %d, stdout %q", res.ExitCode, res.Stdout)
			}
			env.MustRun("delete", added.ID, "--yes")
			if out := env.MustRun("list").Stdout; out != "No stacks found.\n" {
				t.Errorf("list after delete = %q", out)
			}
		})
	}
}

// TestPersistsAcrossInvocations checks data and display mode survive
// separate processes.
func TestPersistsAcrossInvocations(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			env := NewTestEnv(t, backend)
			env.MustRun("add", "--name", "App1", "--layer", "Vercel:Frontend")
			env.MustRun("add", "--name", "App2", "--layer", "AWS:Backend")
			env.MustRun("theme", "dark")

			if got := len(ParseJSON[[]Stack](t, env.MustRun("list", "--json").Stdout)); got != 2 {
				t.Errorf("stored %d stacks, want 2", got)
			}
			if out := env.MustRun("theme").Stdout; out != "dark\n" {
				t.Errorf("theme = %q, want dark", out)
			}
		})
	}
}

func TestExitCodes(t *testing.T) {
	env := NewTestEnv(t, "jsonl")

	res := env.Run("", "add", "--name", "App1")
	if res.ExitCode != 1 {
		t.Errorf("validation failure exit = %d, want 1", res.ExitCode)
	}
	if !strings.Contains(res.Stderr, "Please add at least one layer") {
		t.Errorf("stderr = %q", res.Stderr)
	}

	res = env.Run("not json", "import", "-")
	if res.ExitCode != 2 {
		t.Errorf("corrupt import exit = %d, want 2", res.ExitCode)
	}

	res = env.Run("", "update", "missing", "--name", "X")
	if res.ExitCode != 0 {
		t.Errorf("missing update exit = %d, want 0", res.ExitCode)
	}
}

func TestExportImportBetweenBackends(t *testing.T) {
	src := NewTestEnv(t, "jsonl")
	src.MustRun("add", "--name", "App1", "--layer", "Vercel:Frontend")
	exported := src.MustRun("export").Stdout

	dst := NewTestEnv(t, "sqlite")
	res := dst.Run(exported, "import", "-")
	if res.ExitCode != 0 || res.Stdout != "Imported 1 stack(s), skipped 0\n" {
		t.Fatalf("import: exit %d, stdout %q, stderr %q", res.ExitCode, res.Stdout, res.Stderr)
	}
	list := ParseJSON[[]Stack](t, dst.MustRun("list", "--json").Stdout)
	if len(list) != 1 || list[0].ProjectName != "App1" {
		t.Errorf("imported list = %+v", list)
	}
}
