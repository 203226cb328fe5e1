// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliv

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testConfig() Config {
	return Config{
		Name: "app",
		Options: map[string]Option{
			"verbose": {Type: TypeBoolean, Short: "v"},
			"output":  {Type: TypeString, Short: "o"},
			"level":   {Type: TypeNumber, Short: "l"},
		},
		Commands: map[string]Command{
			"build": {Description: "Build it", Options: map[string]Option{
				"minify": {Type: TypeBoolean, Short: "m"},
				"out":    {Type: TypeString},
			}},
		},
		ThrowOnError: true,
		Exit:         func(int) {},
	}
}

func mustParse(t *testing.T, cfg Config, args []string, env map[string]string) *Result {
	t.Helper()
	res, err := ParseArgs(context.Background(), cfg, args, env)
	if err != nil {
		t.Fatalf("ParseArgs(%v) error = %v", args, err)
	}
	return res
}

func TestParseLongFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want map[string]any
	}{
		{
			name: "boolean presence",
			args: []string{"--verbose"},
			want: map[string]any{"verbose": true},
		},
		{
			name: "string with equals",
			args: []string{"--output=dist"},
			want: map[string]any{"output": "dist"},
		},
		{
			name: "string with following token",
			args: []string{"--output", "dist"},
			want: map[string]any{"output": "dist"},
		},
		{
			name: "number coercion",
			args: []string{"--level", "3"},
			want: map[string]any{"level": float64(3)},
		},
		{
			name: "negative number consumed as value",
			args: []string{"--level", "-2.5"},
			want: map[string]any{"level": -2.5},
		},
		{
			name: "uppercase flag name lowered",
			args: []string{"--OUTPUT", "dist"},
			want: map[string]any{"output": "dist"},
		},
		{
			name: "boolean consumes literal",
			args: []string{"--verbose", "no"},
			want: map[string]any{"verbose": false},
		},
		{
			name: "boolean equals literal",
			args: []string{"--verbose=yes"},
			want: map[string]any{"verbose": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := mustParse(t, testConfig(), tt.args, nil)
			if diff := cmp.Diff(tt.want, res.GlobalOptions); diff != "" {
				t.Errorf("GlobalOptions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseBooleanDoesNotSwallowFlag(t *testing.T) {
	res := mustParse(t, testConfig(), []string{"--verbose", "--output", "dist"}, nil)
	want := map[string]any{"verbose": true, "output": "dist"}
	if diff := cmp.Diff(want, res.GlobalOptions); diff != "" {
		t.Errorf("GlobalOptions mismatch (-want +got):\n%s", diff)
	}
}

func TestParseShortStacking(t *testing.T) {
	cfg := Config{
		Name: "app",
		Options: map[string]Option{
			"alpha": {Type: TypeBoolean, Short: "x"},
			"beta":  {Type: TypeBoolean, Short: "y"},
			"gamma": {Type: TypeString, Short: "z"},
		},
		ThrowOnError: true,
		Exit:         func(int) {},
	}

	res := mustParse(t, cfg, []string{"-xyz", "value"}, nil)
	want := map[string]any{"alpha": true, "beta": true, "gamma": "value"}
	if diff := cmp.Diff(want, res.GlobalOptions); diff != "" {
		t.Errorf("GlobalOptions mismatch (-want +got):\n%s", diff)
	}

	res = mustParse(t, cfg, []string{"-xyz=value"}, nil)
	if got := res.Options["gamma"]; got != "value" {
		t.Errorf("gamma = %v, want %q", got, "value")
	}

	_, err := ParseArgs(context.Background(), cfg, []string{"-zx", "value"}, nil)
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Kind != StackedNonBoolean {
		t.Fatalf("stacked non-boolean error = %v, want StackedNonBoolean", err)
	}
}

func TestParseNegation(t *testing.T) {
	cfg := Config{
		Name: "app",
		Options: map[string]Option{
			"flag": {Type: TypeBoolean, Negatable: true, Default: true},
		},
		ThrowOnError: true,
		Exit:         func(int) {},
	}

	tests := []struct {
		name string
		args []string
		want bool
	}{
		{name: "default true", args: nil, want: true},
		{name: "negated", args: []string{"--no-flag"}, want: false},
		{name: "double negation", args: []string{"--no-flag=false"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := mustParse(t, cfg, tt.args, nil)
			if got := res.Options["flag"]; got != tt.want {
				t.Errorf("flag = %v, want %v", got, tt.want)
			}
		})
	}

	// Negation of a non-negatable boolean stays unknown.
	cfg.Options = map[string]Option{"flag": {Type: TypeBoolean}}
	_, err := ParseArgs(context.Background(), cfg, []string{"--no-flag"}, nil)
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Kind != UnknownOption {
		t.Fatalf("negating non-negatable = %v, want UnknownOption", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantKind ParseErrorKind
	}{
		{name: "unknown long flag", args: []string{"--nope"}, wantKind: UnknownOption},
		{name: "unknown short flag", args: []string{"-q"}, wantKind: UnknownOption},
		{name: "missing string value", args: []string{"--output"}, wantKind: MissingValue},
		{name: "missing number value", args: []string{"--level"}, wantKind: MissingValue},
		{name: "flag-like token not consumed", args: []string{"--output", "--verbose"}, wantKind: MissingValue},
		{name: "bad number", args: []string{"--level", "abc"}, wantKind: NotANumber},
		{name: "bad boolean literal", args: []string{"--verbose=maybe"}, wantKind: BadBooleanLiteral},
		{name: "bare token without positionals", args: []string{"stray"}, wantKind: UnknownArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArgs(context.Background(), testConfig(), tt.args, nil)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error = %v, want *ParseError", err)
			}
			if perr.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v (error: %v)", perr.Kind, tt.wantKind, err)
			}
		})
	}
}

func TestParseSuggestions(t *testing.T) {
	_, err := ParseArgs(context.Background(), testConfig(), []string{"--verbos"}, nil)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if perr.Suggestion != "--verbose" {
		t.Errorf("Suggestion = %q, want %q", perr.Suggestion, "--verbose")
	}

	_, err = ParseArgs(context.Background(), testConfig(), []string{"buidl"}, nil)
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if perr.Suggestion != "build" {
		t.Errorf("Suggestion = %q, want %q", perr.Suggestion, "build")
	}
}

func TestParsePositionals(t *testing.T) {
	cfg := testConfig()
	cfg.AllowPositionals = true

	res := mustParse(t, cfg, []string{"one", "--verbose", "two"}, nil)
	if diff := cmp.Diff([]string{"one", "two"}, res.Positionals); diff != "" {
		t.Errorf("Positionals mismatch (-want +got):\n%s", diff)
	}

	// Everything after "--" lands in positionals verbatim.
	res = mustParse(t, cfg, []string{"--verbose", "--", "--output", "-x", "plain"}, nil)
	if diff := cmp.Diff([]string{"--output", "-x", "plain"}, res.Positionals); diff != "" {
		t.Errorf("Positionals mismatch (-want +got):\n%s", diff)
	}
	if got := res.Options["verbose"]; got != true {
		t.Errorf("verbose = %v, want true", got)
	}
	if _, set := res.Options["output"]; set {
		t.Error("output was resolved from behind the terminator")
	}

	// Without positionals the terminator's tail is rejected.
	cfg.AllowPositionals = false
	_, err := ParseArgs(context.Background(), cfg, []string{"--", "stray"}, nil)
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Kind != UnknownArgument {
		t.Fatalf("error = %v, want UnknownArgument", err)
	}
}

func TestParseCommandScopes(t *testing.T) {
	res := mustParse(t, testConfig(), []string{"--verbose", "build", "--minify"}, nil)
	if res.Command != "build" {
		t.Errorf("Command = %q, want %q", res.Command, "build")
	}
	if res.IsDefaultCommand {
		t.Error("IsDefaultCommand = true, want false")
	}
	if diff := cmp.Diff(map[string]any{"verbose": true}, res.GlobalOptions); diff != "" {
		t.Errorf("GlobalOptions mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{"minify": true}, res.CommandOptions); diff != "" {
		t.Errorf("CommandOptions mismatch (-want +got):\n%s", diff)
	}
	want := map[string]any{"verbose": true, "minify": true}
	if diff := cmp.Diff(want, res.Options); diff != "" {
		t.Errorf("Options union mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCommandIsolation(t *testing.T) {
	cfg := testConfig()
	cfg.Commands["deploy"] = Command{Options: map[string]Option{
		"target": {Type: TypeString},
	}}

	// A command option is unresolvable globally.
	_, err := ParseArgs(context.Background(), cfg, []string{"--minify"}, nil)
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Kind != UnknownOption {
		t.Fatalf("global --minify = %v, want UnknownOption", err)
	}

	// And unresolvable under a sibling command.
	_, err = ParseArgs(context.Background(), cfg, []string{"deploy", "--minify"}, nil)
	if !errors.As(err, &perr) || perr.Kind != UnknownOption {
		t.Fatalf("deploy --minify = %v, want UnknownOption", err)
	}
	if perr.Command != "deploy" {
		t.Errorf("error Command = %q, want %q", perr.Command, "deploy")
	}
}
