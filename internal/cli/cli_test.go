package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/chartgrid/pkg/observability"
	"github.com/matzehuels/chartgrid/pkg/server"
)

// execute runs the CLI with args and returns what it wrote to its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	defer observability.Reset()

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"render", "pick", "explore", "serve", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "chart.svg")
	if _, err := execute(t, "render", "testdata/chart.toml", "-o", out, "-f", "svg,png", "--no-cache"); err != nil {
		t.Fatalf("render error = %v", err)
	}
	svg, err := os.ReadFile(filepath.Join(dir, "chart.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("chart.svg is not an SVG")
	}
	png, err := os.ReadFile(filepath.Join(dir, "chart.png"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("chart.png is not a PNG")
	}
}

func TestRenderCommandStdout(t *testing.T) {
	got, err := execute(t, "render", "testdata/chart.toml", "-o", "-")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	if !strings.Contains(got, "<svg") {
		t.Error("stdout should hold the SVG")
	}

	if _, err := execute(t, "render", "testdata/chart.toml", "-o", "-", "-f", "svg,png"); err == nil {
		t.Error("stdout with several formats should fail")
	}
}

func TestRenderCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad format", []string{"render", "testdata/chart.toml", "-f", "gif"}},
		{"missing file", []string{"render", "testdata/missing.toml"}},
		{"no args", []string{"render"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Errorf("%v should fail", tt.args)
			}
		})
	}
}

func TestPickCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"title", []string{"--x", "200", "--y", "10"}, `title "Latency"`},
		{"outside", []string{"--x=-10", "--y=-10"}, "none"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, append([]string{"pick", "testdata/chart.toml"}, tt.args...)...)
			if err != nil {
				t.Fatalf("pick error = %v", err)
			}
			if strings.TrimSpace(got) != tt.want {
				t.Errorf("pick = %q, want %q", strings.TrimSpace(got), tt.want)
			}
		})
	}
}

func TestPickCommandJSON(t *testing.T) {
	got, err := execute(t, "pick", "testdata/chart.toml", "--x", "200", "--y", "150", "--json")
	if err != nil {
		t.Fatalf("pick error = %v", err)
	}
	var res server.PickResult
	if err := json.Unmarshal([]byte(got), &res); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, got)
	}
	if !res.Hit || res.Kind != "plot-area" || res.X == nil || res.YLeft == nil {
		t.Errorf("pick = %+v, want a plot-area hit", res)
	}
}

func TestPickCommandRequiresCoordinates(t *testing.T) {
	if _, err := execute(t, "pick", "testdata/chart.toml", "--x", "1"); err == nil {
		t.Error("pick without --y should fail")
	}
}

func TestCachePathCommand(t *testing.T) {
	got, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(strings.TrimSpace(got), appName) {
		t.Errorf("cache path = %q, should end with %q", got, appName)
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, s := range shellCompletions {
		t.Run(s.name, func(t *testing.T) {
			got, err := execute(t, "completion", s.name)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(got, appName) {
				t.Errorf("%s completion should mention the app name", s.name)
			}
			if !strings.Contains(completionHelp(), s.install) {
				t.Errorf("help is missing the %s install line", s.name)
			}
		})
	}

	if _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("expected an error for an unsupported shell")
	}
}

func TestCacheClearCommand(t *testing.T) {
	got, err := execute(t, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "Cache is empty") {
		t.Errorf("cache clear on a fresh dir = %q", got)
	}
}
