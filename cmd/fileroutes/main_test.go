package main

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/fileroutes/internal/config"
	"github.com/vango-dev/fileroutes/internal/errors"
)

// newProject writes a compact project with the given view files and returns
// its config path.
func newProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	cfg := config.New()
	cfg.Compact = true
	cfg.Indent = ""
	path := filepath.Join(dir, config.ConfigFileName)
	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	for name, content := range files {
		file := filepath.Join(dir, filepath.FromSlash(config.DefaultViews), filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(file, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return path
}

func page(title string) string {
	return "package views\n\nconst Title = \"" + title + "\"\n\nfunc Page() {}\n"
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--env-file", "", "--no-color"))
	err := cmd.Execute()
	return out.String(), err
}

func codeOf(err error) string {
	var ce *errors.CodedError
	if stderrors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

func TestGenStdout(t *testing.T) {
	path := newProject(t, map[string]string{
		"about.go":          page("About"),
		"friends/[user].go": page("User"),
	})

	out, err := run(t, "gen", "--config", path, "--stdout")
	if err != nil {
		t.Fatalf("gen error = %v", err)
	}

	want := `[{"route":"about","title":"About","params":{}},` +
		`{"route":"friends","params":{},"children":[{"route":":user","title":"User","params":{":user":"Required"}}]}]` + "\n"
	if out != want {
		t.Errorf("gen --stdout =\n%s\nwant\n%s", out, want)
	}

	output := filepath.Join(filepath.Dir(path), filepath.FromSlash(config.DefaultOutput))
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Errorf("gen --stdout wrote %s", output)
	}
}

func TestGenCheck(t *testing.T) {
	path := newProject(t, map[string]string{"about.go": page("About")})

	_, err := run(t, "gen", "--config", path, "--check")
	if got := codeOf(err); got != "E146" {
		t.Fatalf("gen --check before gen: code = %q, want E146 (err = %v)", got, err)
	}

	out, err := run(t, "gen", "--config", path)
	if err != nil {
		t.Fatalf("gen error = %v", err)
	}
	if !strings.Contains(out, "Generated") {
		t.Errorf("gen output = %q, want a Generated message", out)
	}

	if _, err := run(t, "gen", "--config", path, "--check"); err != nil {
		t.Errorf("gen --check after gen error = %v", err)
	}

	out, err = run(t, "gen", "--config", path)
	if err != nil {
		t.Fatalf("second gen error = %v", err)
	}
	if !strings.Contains(out, "up to date") {
		t.Errorf("second gen output = %q, want up to date", out)
	}
}

func TestGenFlagConflict(t *testing.T) {
	_, err := run(t, "gen", "--stdout", "--check")
	if got := codeOf(err); got != "E147" {
		t.Errorf("code = %q, want E147", got)
	}
}

func TestGenReportsRouteErrors(t *testing.T) {
	path := newProject(t, map[string]string{"users/a:b.go": page("Bad")})

	_, err := run(t, "gen", "--config", path, "--stdout")
	if got := codeOf(err); got != "E170" {
		t.Errorf("code = %q, want E170 (err = %v)", got, err)
	}
}

func TestScanJSON(t *testing.T) {
	path := newProject(t, map[string]string{"about.go": page("About")})

	out, err := run(t, "scan", "--config", path, "--format", "json")
	if err != nil {
		t.Fatalf("scan error = %v", err)
	}
	if !strings.Contains(out, `"About"`) {
		t.Errorf("scan output = %s, want the About title", out)
	}

	if _, err := run(t, "scan", "--config", path, "--format", "toml"); codeOf(err) != "E147" {
		t.Errorf("scan --format toml error = %v, want E147", err)
	}
}

func TestVersionShort(t *testing.T) {
	out, err := run(t, "version", "-s")
	if err != nil {
		t.Fatal(err)
	}
	if out != version+"\n" {
		t.Errorf("version -s = %q, want %q", out, version+"\n")
	}
}
