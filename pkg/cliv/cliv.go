// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/cliv-dev/cliv/pkg/dotenv"
	"github.com/cliv-dev/cliv/pkg/tui"
)

// OptionType is the declared type of an option's value.
type OptionType string

const (
	TypeString  OptionType = "string"
	TypeNumber  OptionType = "number"
	TypeBoolean OptionType = "boolean"
)

// Scope identifies which option table a value resolved against.
type Scope string

const (
	ScopeGlobal  Scope = "global"
	ScopeCommand Scope = "command"
)

// Option declares a single named, typed value the program accepts.
type Option struct {
	// Type is required and immutable: string, number or boolean.
	Type OptionType
	// Short is an optional single-letter alias, unique within its scope.
	Short       string
	Description string
	Required    bool
	// Default must be a value of the declared type (numbers may be any
	// Go integer or float; they are normalized to float64).
	Default any
	// Env names an environment variable consulted when no flag was given.
	Env string
	// Choices restricts the value to a closed list of the declared type.
	Choices []any
	// Validate rejects a value by returning a non-nil error; the error
	// message is surfaced as the rejection reason.
	Validate func(value any) error
	// Negatable enables a synthetic --no-<name> counterpart.
	// Boolean options only.
	Negatable bool
	// Hidden excludes the option from help output, not from parsing.
	Hidden bool
}

// Command declares a subcommand and its own independently scoped options.
type Command struct {
	Description string
	Options     map[string]Option
}

// PromptFunc supplies a value for a required option that no flag,
// environment variable or default resolved. It is called sequentially, one
// option at a time, with a snapshot of the result built so far. The
// returned value must be of the option's declared type.
type PromptFunc func(ctx context.Context, name string, opt Option, scope Scope, current *Result) (any, error)

// Config is the root declarative description of a program's interface.
// It is defensively copied by Parse; the caller's maps are never mutated.
type Config struct {
	// Name and Description head the generated help text. Name defaults
	// to the invoked binary's base name.
	Name        string
	Description string

	Options        map[string]Option
	Commands       map[string]Command
	DefaultCommand string

	// AllowPositionals collects bare tokens into Result.Positionals
	// instead of failing with an unknown-argument error.
	AllowPositionals bool
	// DisableHelp suppresses the synthetic help option in every scope.
	DisableHelp bool
	// DisablePrompts turns unresolved required options into a
	// ResolutionError instead of invoking the prompt collaborator.
	DisablePrompts bool
	// Prompt overrides the default interactive prompt collaborator.
	Prompt PromptFunc
	// PromptTimeout bounds each prompt, retries included. Default 120s.
	PromptTimeout time.Duration
	// ThrowOnError returns errors to the caller instead of printing the
	// message plus help text and terminating with status 1.
	ThrowOnError bool

	// Truthy and Falsy override the boolean literal sets
	// (default true/yes/1 and false/no/0, case-insensitive).
	Truthy []string
	Falsy  []string

	// Stdin, Stdout and Stderr default to the process streams. Help goes
	// to Stdout, errors and prompts to Stderr.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Exit is the terminator invoked on the help (status 0) and error
	// (status 1) paths. Defaults to os.Exit.
	Exit func(code int)
}

// Result is the fully resolved outcome of a Parse call.
type Result struct {
	// Command is the selected command name, empty when none matched and
	// no default was configured.
	Command string
	// IsDefaultCommand is true only when no command token was found in
	// the input and DefaultCommand was substituted.
	IsDefaultCommand bool
	// Options is the union of GlobalOptions and CommandOptions.
	Options        map[string]any
	GlobalOptions  map[string]any
	CommandOptions map[string]any
	// Positionals holds bare tokens in input order; nil unless
	// AllowPositionals is set.
	Positionals []string
}

// Parse resolves the live process arguments and environment against cfg.
func Parse(ctx context.Context, cfg Config) (*Result, error) {
	return ParseArgs(ctx, cfg, os.Args[1:], dotenv.Environ())
}

// ParseArgs resolves an explicit argument list and environment map against
// cfg. On success the Result is complete: every declared option that could
// be resolved is present and validated. On failure no partial Result is
// returned; unless ThrowOnError is set, the error is printed with the full
// help text and cfg.Exit(1) is invoked. A triggered help prints to Stdout,
// invokes cfg.Exit(0) and returns ErrHelp.
func ParseArgs(ctx context.Context, cfg Config, args []string, env map[string]string) (*Result, error) {
	applyDefaults(&cfg)

	p, err := newProgram(cfg, env)
	if err == nil {
		err = p.run(ctx, args)
	}
	if err == nil {
		return p.res, nil
	}
	if errors.Is(err, ErrHelp) {
		cfg.Exit(0)
		return nil, ErrHelp
	}
	if cfg.ThrowOnError {
		return nil, err
	}
	col := tui.NewColorizer(cfg.Stderr)
	fmt.Fprintln(cfg.Stderr, col.Error("error: "+err.Error()))
	fmt.Fprint(cfg.Stderr, p.renderHelp(""))
	cfg.Exit(1)
	return nil, err
}

// HelpText renders help for cfg, scoped to command when non-empty. It is a
// pure function of the configuration: nothing is printed and no terminator
// runs.
func HelpText(cfg Config, command string) string {
	applyDefaults(&cfg)
	p, _ := newProgram(cfg, nil)
	return p.renderHelp(command)
}

func applyDefaults(cfg *Config) {
	if cfg.Name == "" {
		cfg.Name = filepath.Base(os.Args[0])
	}
	if cfg.Stdin == nil {
		cfg.Stdin = os.Stdin
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	if cfg.Exit == nil {
		cfg.Exit = os.Exit
	}
	if cfg.PromptTimeout <= 0 {
		cfg.PromptTimeout = 120 * time.Second
	}
	if len(cfg.Truthy) == 0 {
		cfg.Truthy = []string{"true", "yes", "1"}
	}
	if len(cfg.Falsy) == 0 {
		cfg.Falsy = []string{"false", "no", "0"}
	}
}

// run drives the pipeline: split, parse both segments, help check,
// finalize.
func (p *program) run(ctx context.Context, args []string) error {
	seg := p.split(args)
	p.res.Command = seg.command
	p.res.IsDefaultCommand = seg.isDefault

	if err := p.parseSegment(seg.programArgs, p.globalTable()); err != nil {
		return err
	}
	if seg.command != "" {
		if err := p.parseSegment(seg.commandArgs, p.commandTable(seg.command)); err != nil {
			return err
		}
	}

	if target, hit := p.helpHit(); hit {
		fmt.Fprint(p.cfg.Stdout, p.renderHelp(target))
		return ErrHelp
	}

	return p.finalize(ctx)
}
