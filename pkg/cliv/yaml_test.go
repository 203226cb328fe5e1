// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliv

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const testSchema = `
name: tundra
description: Deploys tundras
default-command: deploy
allow-positionals: true
options:
  verbose:
    type: boolean
    short: v
    description: Chatty output
  region:
    type: string
    env: TUNDRA_REGION
    default: eu-west-1
    choices: [eu-west-1, us-east-1]
commands:
  deploy:
    description: Deploy the thing
    options:
      replicas:
        type: number
        short: r
        default: 2
      confirm:
        type: boolean
        negatable: true
        default: true
`

func TestFromYAML(t *testing.T) {
	cfg, err := FromYAML([]byte(testSchema))
	if err != nil {
		t.Fatalf("FromYAML() error = %v", err)
	}
	if cfg.Name != "tundra" || cfg.DefaultCommand != "deploy" || !cfg.AllowPositionals {
		t.Errorf("top-level fields not carried: %+v", cfg)
	}
	if diff := cmp.Diff([]any{"eu-west-1", "us-east-1"}, cfg.Options["region"].Choices); diff != "" {
		t.Errorf("region choices mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.Commands["deploy"].Options["replicas"].Default; got != float64(2) {
		t.Errorf("replicas default = %v (%T), want float64 2", got, got)
	}
}

func TestFromYAMLParses(t *testing.T) {
	cfg, err := FromYAML([]byte(testSchema))
	if err != nil {
		t.Fatalf("FromYAML() error = %v", err)
	}
	cfg.ThrowOnError = true
	cfg.Exit = func(int) {}

	res, err := ParseArgs(context.Background(), cfg,
		[]string{"-v", "deploy", "--no-confirm", "-r", "5"},
		map[string]string{"TUNDRA_REGION": "us-east-1"})
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	want := map[string]any{
		"verbose":  true,
		"region":   "us-east-1",
		"replicas": float64(5),
		"confirm":  false,
	}
	for name, v := range want {
		if got := res.Options[name]; got != v {
			t.Errorf("%s = %v, want %v", name, got, v)
		}
	}
	if res.Command != "deploy" {
		t.Errorf("Command = %q, want %q", res.Command, "deploy")
	}
}

func TestFromYAMLBadType(t *testing.T) {
	_, err := FromYAML([]byte("options:\n  mode:\n    type: enum\n"))
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %v, want *ConfigError", err)
	}
	if !strings.Contains(cerr.Error(), "enum") {
		t.Errorf("error %q does not name the bad type", cerr.Error())
	}
}

func TestFromYAMLBadSyntax(t *testing.T) {
	_, err := FromYAML([]byte("options: ["))
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %v, want *ConfigError", err)
	}
}
