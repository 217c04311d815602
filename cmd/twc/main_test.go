package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap/zaptest"

	"twc/common"
	"twc/config"
	"twc/state"
)

func runDumpConfig(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error: %v", err)
	}
	cfg.Compiler.Mode = common.InlineModeScoped

	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Cfg, env.Log = cfg, zaptest.NewLogger(t)

	var out bytes.Buffer
	app := &cli.Command{
		Name:   "twc",
		Writer: &out,
		Commands: []*cli.Command{
			{
				Name:   "dumpconfig",
				Action: outputConfiguration,
				Flags:  []cli.Flag{&cli.BoolFlag{Name: "default"}},
			},
		},
	}
	err = app.Run(ctx, append([]string{"twc", "dumpconfig"}, args...))
	return out.String(), err
}

func TestOutputConfiguration(t *testing.T) {
	out, err := runDumpConfig(t)
	if err != nil {
		t.Fatalf("dumpconfig error: %v", err)
	}
	if !strings.Contains(out, "mode: scoped") {
		t.Errorf("actual configuration expected:\n%s", out)
	}

	out, err = runDumpConfig(t, "--default")
	if err != nil {
		t.Fatalf("dumpconfig --default error: %v", err)
	}
	if !strings.Contains(out, "mode: none") {
		t.Errorf("default configuration expected:\n%s", out)
	}
}

func TestOutputConfiguration_File(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "twc.yaml")
	out, err := runDumpConfig(t, fname, "extra")
	if err != nil {
		t.Fatalf("dumpconfig error: %v", err)
	}
	if out != "" {
		t.Errorf("nothing expected on output, got %q", out)
	}
	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := config.LoadConfiguration(fname); err != nil {
		t.Errorf("written configuration does not load: %v\n%s", err, data)
	}
}
