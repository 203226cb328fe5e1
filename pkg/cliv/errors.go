// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliv

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ErrHelp is returned by ParseArgs after help output was rendered and the
// terminator ran. Callers with a non-exiting terminator should treat it as
// a successful stop, not a failure.
var ErrHelp = errors.New("help requested")

// ConfigError reports a bad declarative configuration: naming violations,
// duplicate short aliases, a dangling default command or a negation
// conflict. It is raised before any token is parsed.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Msg
}

// ParseErrorKind discriminates the failure modes of token parsing.
type ParseErrorKind int

const (
	UnknownOption ParseErrorKind = iota
	UnknownArgument
	MissingValue
	BadBooleanLiteral
	NotANumber
	StackedNonBoolean
)

// ParseError reports a token that could not be resolved against the
// in-scope option table.
type ParseError struct {
	Kind ParseErrorKind
	// Token is the offending token as written.
	Token string
	// Option is the resolved long option name, when one was identified.
	Option string
	// Command is the command scope, empty for the global scope.
	Command string
	// Suggestion is a close in-scope name, when one exists.
	Suggestion string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	switch e.Kind {
	case UnknownOption:
		fmt.Fprintf(&b, "unknown option: %s", e.Token)
	case UnknownArgument:
		fmt.Fprintf(&b, "unknown argument: %s", e.Token)
	case MissingValue:
		fmt.Fprintf(&b, "missing value for option --%s", e.Option)
	case BadBooleanLiteral:
		fmt.Fprintf(&b, "invalid boolean %q for option --%s", e.Token, e.Option)
	case NotANumber:
		fmt.Fprintf(&b, "invalid number %q for option --%s", e.Token, e.Option)
	case StackedNonBoolean:
		fmt.Fprintf(&b, "option -%s takes a value and must be last in %s", e.Option, e.Token)
	default:
		fmt.Fprintf(&b, "cannot parse %s", e.Token)
	}
	if e.Command != "" {
		fmt.Fprintf(&b, " (command %q)", e.Command)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, ", did you mean %s?", e.Suggestion)
	}
	return b.String()
}

// ResolutionError reports required options that stayed unresolved while
// prompting was disabled. Missing lists every such option in the scope.
type ResolutionError struct {
	// Command is empty when the global scope is affected.
	Command string
	Missing []string
}

func (e *ResolutionError) Error() string {
	scope := "global"
	if e.Command != "" {
		scope = fmt.Sprintf("command %q", e.Command)
	}
	return fmt.Sprintf("missing required option(s) for %s: %s", scope, strings.Join(e.Missing, ", "))
}

// ValidationError reports a resolved value that failed the type check, the
// choices check or the custom validator.
type ValidationError struct {
	Option  string
	Command string
	Value   any
	Reason  string
}

func (e *ValidationError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("invalid value %v for option --%s of command %q: %s", e.Value, e.Option, e.Command, e.Reason)
	}
	return fmt.Sprintf("invalid value %v for option --%s: %s", e.Value, e.Option, e.Reason)
}

// PromptError reports a prompt collaborator failure: timeout or an
// underlying I/O error. It is fatal; the pipeline does not retry.
type PromptError struct {
	Option string
	Err    error
}

func (e *PromptError) Error() string {
	return fmt.Sprintf("prompt for option --%s failed: %v", e.Option, e.Err)
}

func (e *PromptError) Unwrap() error {
	return e.Err
}

// suggestion threshold tuned for single-word flag names.
const maxSuggestDistance = 2

// suggest returns the closest candidate within edit distance 2, or "".
func suggest(name string, candidates []string) string {
	best := ""
	bestDist := maxSuggestDistance + 1
	for _, cand := range candidates {
		if cand == "" {
			continue
		}
		if d := levenshtein.ComputeDistance(name, cand); d < bestDist {
			best, bestDist = cand, d
		}
	}
	return best
}
