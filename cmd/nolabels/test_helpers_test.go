package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nolabels/internal/config"
	"nolabels/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

// setupCLITestEnv writes a config pointing at temp directories and seeds the
// default label store with the sample terms.
func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("NOLABELS_STORE_DSN", "")

	configPath := filepath.Join(base, "nolabels.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func (e *cliTestEnv) seed(t *testing.T) {
	t.Helper()
	testsupport.MustCreateStore(t, e.cfg, testsupport.SampleTerms()...)
}

func runCLI(t *testing.T, args []string, configPath string, stdin io.Reader) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath, "--log-level", "error")
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	labels := make([]string, 0, len(cfg.Query.Labels))
	for _, l := range cfg.Query.Labels {
		labels = append(labels, fmt.Sprintf("%q", l))
	}
	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q

[store]
driver = %q
database = %q

[discovery]
base_url = %q

[query]
language = %q
labels = [%s]

[server]
bind = %q
`,
		cfg.Paths.DataDir,
		cfg.Paths.LogDir,
		cfg.Store.Driver,
		cfg.Store.Database,
		cfg.Discovery.BaseURL,
		cfg.Query.Language,
		strings.Join(labels, ", "),
		cfg.Server.Bind,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
