package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"
)

type testConfig struct {
	OutDir  string `env:"CMD_TEST_OUT_DIR" envDefault:"."`
	Workers int    `env:"CMD_TEST_WORKERS" envDefault:"2"`
}

func TestParseConfigReadsEnvAndFlags(t *testing.T) {
	t.Setenv("NUMS_CMD_TEST_OUT_DIR", "env-dir")
	t.Setenv("NUMS_CMD_TEST_WORKERS", "6")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfgRef := testConfig{}
	if err := ParseConfig(&cfgRef); err != nil {
		t.Fatalf("load config defaults: %v", err)
	}
	fs.StringVar(&cfgRef.OutDir, "out", cfgRef.OutDir, "output directory")
	fs.IntVar(&cfgRef.Workers, "workers", cfgRef.Workers, "workers")

	if err := ParseArgs(fs, []string{"-out", "flag-dir"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfgRef.OutDir != "flag-dir" {
		t.Fatalf("expected flag value for out dir, got %q", cfgRef.OutDir)
	}
	if cfgRef.Workers != 6 {
		t.Fatalf("expected env workers, got %d", cfgRef.Workers)
	}
}

func TestParseConfigFromArgsReadsEnvAndFlags(t *testing.T) {
	t.Setenv("NUMS_CMD_TEST_WORKERS", "3")

	cfgRef := testConfig{}
	fs := flag.NewFlagSet("configargs", flag.ContinueOnError)
	fs.StringVar(&cfgRef.OutDir, "out", "", "output directory")
	if err := ParseConfigFromArgs(&cfgRef, fs, []string{"-out", "reports"}); err != nil {
		t.Fatalf("parse config and args: %v", err)
	}
	if cfgRef.OutDir != "reports" {
		t.Fatalf("expected parsed flag out dir, got %q", cfgRef.OutDir)
	}
	if cfgRef.Workers != 3 {
		t.Fatalf("expected env workers, got %d", cfgRef.Workers)
	}
}

func TestParseArgsRejectsNilParser(t *testing.T) {
	if err := ParseArgs(nil, []string{}); err == nil {
		t.Fatal("expected parse args to reject nil parser")
	}
}

func TestParseConfigRejectsNilTarget(t *testing.T) {
	if err := ParseConfig[testConfig](nil); err == nil {
		t.Fatal("expected nil target error")
	}
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	if err := RunWithTelemetry(context.Background(), "", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetry(context.Background(), ServiceGaps, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}

func TestRunWithTelemetryReturnsRunError(t *testing.T) {
	t.Setenv("NUMS_OTEL_ENDPOINT", "")

	want := errors.New("boom")
	got := RunWithTelemetry(context.Background(), ServiceNums, func(context.Context) error { return want })
	if !errors.Is(got, want) {
		t.Fatalf("error = %v, want %v", got, want)
	}
}
