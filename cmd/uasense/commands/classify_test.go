package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/uasense/uasense/pkg/classify"
)

const edgeBundleYAML = `user_agent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.2210.91"
vendor: ""
`

func writeBundle(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "probe.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write bundle: %v", err)
	}
	return path
}

func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if stdin != "" {
		cmd.SetIn(strings.NewReader(stdin))
	}
	cmd.SetArgs(append(args, "--no-workspace"))
	err := cmd.Execute()
	return out.String(), err
}

func TestClassifyCommand_JSONFromFile(t *testing.T) {
	bundle := writeBundle(t, edgeBundleYAML)

	out, err := runCommand(t, "", "classify", "--signals", bundle, "--output", "json")
	if err != nil {
		t.Fatalf("command failed: %v\n%s", err, out)
	}

	var payload struct {
		Result classify.DetectionResult `json:"result"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if payload.Result.Label != classify.LabelEdge {
		t.Fatalf("expected Edge, got %q", payload.Result.Label)
	}
	if payload.Result.Version != "120.0.2210.91" {
		t.Fatalf("unexpected version %q", payload.Result.Version)
	}
	if payload.Result.OS != "Windows" {
		t.Fatalf("unexpected OS %q", payload.Result.OS)
	}
}

func TestClassifyCommand_FromStdin(t *testing.T) {
	out, err := runCommand(t, edgeBundleYAML, "classify", "--output", "json")
	if err != nil {
		t.Fatalf("command failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, `"label": "Edge"`) {
		t.Fatalf("expected Edge in output:\n%s", out)
	}
}

func TestClassifyCommand_EmptyStdinIsUsageError(t *testing.T) {
	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs([]string{"classify", "--no-workspace"})

	err := cmd.Execute()
	if !errors.Is(err, classify.ErrSignalsRequired) {
		t.Fatalf("expected ErrSignalsRequired, got %v", err)
	}
	if classify.ExitCode(err) != 2 {
		t.Fatalf("expected usage exit code 2, got %d", classify.ExitCode(err))
	}
}

func TestClassifyCommand_DeviceOnly(t *testing.T) {
	bundle := writeBundle(t, `user_agent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)"`)

	out, err := runCommand(t, "", "classify", "--signals", bundle, "--device", "--output", "json")
	if err != nil {
		t.Fatalf("command failed: %v\n%s", err, out)
	}

	var payload map[string]string
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if payload["device"] != "mobile" {
		t.Fatalf("expected mobile, got %q", payload["device"])
	}
}

func TestClassifyCommand_ResolveVersion(t *testing.T) {
	bundle := writeBundle(t, edgeBundleYAML)

	out, err := runCommand(t, "", "classify", "--signals", bundle, "--resolve-version", "Chrome", "--output", "json")
	if err != nil {
		t.Fatalf("command failed: %v\n%s", err, out)
	}

	var payload map[string]string
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if payload["version"] != "120.0.0.0" {
		t.Fatalf("expected Chrome token version, got %q", payload["version"])
	}
}

func TestClassifyCommand_ResolveVersionRejectsBadLabel(t *testing.T) {
	bundle := writeBundle(t, edgeBundleYAML)

	_, err := runCommand(t, "", "classify", "--signals", bundle, "--resolve-version", "Netscape")
	if err == nil {
		t.Fatalf("expected error for unknown label")
	}
}

func TestClassifyCommand_PolicyDeniesUnknownClient(t *testing.T) {
	bundle := writeBundle(t, `user_agent: "###"`)

	_, err := runCommand(t, "", "classify", "--signals", bundle, "--policy")
	if err == nil {
		t.Fatalf("expected policy denial for unidentifiable client")
	}
}
