// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliv

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cliv-dev/cliv/pkg/prompt"
	"github.com/cliv-dev/cliv/pkg/tui"
)

// defaultPrompt is the built-in prompt collaborator: it prints a labeled
// question to Stderr, reads one line from Stdin, and loops on wrong type,
// failed choice check or failed custom validation. The context deadline
// set by the finalizer bounds the whole exchange, retries included; a
// deadline hit surfaces as the collaborator's error and the pipeline
// fails with a PromptError.
func (p *program) defaultPrompt(ctx context.Context, name string, opt Option, scope Scope, current *Result) (any, error) {
	col := tui.NewColorizer(p.cfg.Stderr)
	// One Liner for the whole run: a fresh buffered reader per prompt
	// would swallow input the previous prompt buffered ahead.
	if p.liner == nil {
		p.liner = prompt.NewLiner(p.cfg.Stdin)
	}

	label := promptLabel(name, opt, col)
	for {
		fmt.Fprint(p.cfg.Stderr, label)
		line, err := p.liner.ReadLine(ctx)
		if err != nil {
			return nil, err
		}
		v, reason := p.coerceInput(opt, strings.TrimSpace(line))
		if reason == "" {
			reason = p.answerRejection(opt, v)
		}
		if reason != "" {
			fmt.Fprintln(p.cfg.Stderr, col.Error(reason))
			continue
		}
		return v, nil
	}
}

func promptLabel(name string, opt Option, col tui.Colorizer) string {
	var b strings.Builder
	b.WriteString(col.Bold(name))
	if opt.Description != "" {
		b.WriteString(" ")
		b.WriteString(col.Dim("("+opt.Description+")"))
	}
	if len(opt.Choices) > 0 {
		b.WriteString(" ")
		b.WriteString(col.Dim(formatChoices(opt.Choices)))
	}
	b.WriteString(": ")
	return b.String()
}

// coerceInput turns one typed line into a value of the option's declared
// type. A non-empty reason asks the user to try again.
func (p *program) coerceInput(opt Option, line string) (v any, reason string) {
	switch opt.Type {
	case TypeBoolean:
		if lit, ok := p.boolLiteral(line); ok {
			return lit, ""
		}
		return nil, fmt.Sprintf("please answer %s or %s", joinLiterals(p.cfg.Truthy), joinLiterals(p.cfg.Falsy))
	case TypeNumber:
		n, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, fmt.Sprintf("%q is not a number", line)
		}
		return n, ""
	default:
		if line == "" && opt.Required {
			return nil, "a value is required"
		}
		return line, ""
	}
}

// answerRejection applies the choices and custom-validation rules so the
// user retries inline instead of failing the pipeline.
func (p *program) answerRejection(opt Option, v any) string {
	if len(opt.Choices) > 0 {
		found := false
		for _, c := range opt.Choices {
			if normalizeValue(opt.Type, c) == v {
				found = true
				break
			}
		}
		if !found {
			return fmt.Sprintf("choose one of %s", formatChoices(opt.Choices))
		}
	}
	if opt.Validate != nil {
		if err := opt.Validate(v); err != nil {
			return err.Error()
		}
	}
	return ""
}

func joinLiterals(lits []string) string {
	return strings.Join(lits, "/")
}
