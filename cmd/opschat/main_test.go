package main

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"opschat/pkg/config"
)

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-config", "/tmp/c.json", "-endpoint", "http://ops:5000", "-plain"}, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags() error: %v", err)
	}
	if opts.configPath != "/tmp/c.json" || opts.endpoint != "http://ops:5000" || !opts.plain || opts.showVersion {
		t.Errorf("Unexpected options %+v", opts)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	opts, err := parseFlags(nil, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags() error: %v", err)
	}
	if opts.configPath != config.GetConfigPath() {
		t.Errorf("Expected default config path, got %q", opts.configPath)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	if _, err := parseFlags([]string{"-nope"}, io.Discard); err == nil {
		t.Error("Expected error for unknown flag")
	}
	if _, err := parseFlags([]string{"extra"}, io.Discard); err == nil {
		t.Error("Expected error for positional argument")
	}
	if _, err := parseFlags([]string{"-h"}, io.Discard); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("Expected flag.ErrHelp, got %v", err)
	}
}

func noEnv(string) (string, bool) { return "", false }

func TestLoadConfig_Layering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	env := func(key string) (string, bool) {
		switch key {
		case config.EnvEndpoint:
			return "http://from-env:5000", true
		case config.EnvLogLevel:
			return "debug", true
		}
		return "", false
	}

	cfg, err := loadConfig(options{configPath: path}, env)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Endpoint != "http://from-env:5000" || cfg.LogLevel != "debug" {
		t.Errorf("Expected env overrides, got endpoint=%q level=%q", cfg.Endpoint, cfg.LogLevel)
	}

	cfg, err = loadConfig(options{configPath: path, endpoint: "http://from-flag:5000"}, env)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Endpoint != "http://from-flag:5000" {
		t.Errorf("Expected flag to win, got %q", cfg.Endpoint)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	_, err := loadConfig(options{configPath: path, endpoint: "ftp://ops"}, noEnv)
	if err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Errorf("Expected invalid config error, got %v", err)
	}
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-version"}, nil, &stdout, &stderr); code != 0 {
		t.Fatalf("Expected exit code 0, got %d (stderr %q)", code, stderr.String())
	}
	if !strings.HasPrefix(stdout.String(), "opschat version ") {
		t.Errorf("Unexpected version output %q", stdout.String())
	}
}

func TestRun_BadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-bogus"}, nil, &stdout, &stderr); code != 2 {
		t.Errorf("Expected exit code 2, got %d", code)
	}
}
