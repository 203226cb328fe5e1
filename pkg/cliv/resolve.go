// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliv

import (
	"context"
	"fmt"
	"strconv"
)

// queuedPrompt is one required option awaiting the prompt collaborator.
type queuedPrompt struct {
	name string
	opt  Option
	tab  scopeTable
}

// finalize runs the three finalization passes over the active scopes:
// environment/default application, validation, then prompting.
func (p *program) finalize(ctx context.Context) error {
	var queue []queuedPrompt

	// Pass 1: env fallback, then default, for every option the token
	// parser left unset. Global scope resolves before the command scope.
	for _, tab := range p.tables() {
		var missing []string
		for _, name := range tab.optionNames() {
			if _, set := p.scopeMap(tab)[name]; set {
				continue
			}
			opt := tab.options[name]
			if v, ok := p.envValue(opt); ok {
				p.store(tab, name, v)
				continue
			}
			if opt.Default != nil {
				p.store(tab, name, normalizeValue(opt.Type, opt.Default))
				continue
			}
			if opt.Required {
				missing = append(missing, name)
				queue = append(queue, queuedPrompt{name: name, opt: opt, tab: tab})
			}
		}
		if len(missing) > 0 && p.cfg.DisablePrompts {
			return &ResolutionError{Command: tab.command, Missing: missing}
		}
	}

	// Pass 2: re-validate every value present in the result, whatever
	// its source.
	for _, tab := range p.tables() {
		m := p.scopeMap(tab)
		for _, name := range tab.optionNames() {
			v, set := m[name]
			if !set {
				continue
			}
			if err := p.checkValue(tab, name, tab.options[name], v); err != nil {
				return err
			}
		}
	}

	// Pass 3: prompt sequentially for whatever is still missing, global
	// queue before command queue, validating each answer on arrival.
	promptFn := p.cfg.Prompt
	if promptFn == nil {
		promptFn = p.defaultPrompt
	}
	for _, q := range queue {
		pctx, cancel := context.WithTimeout(ctx, p.cfg.PromptTimeout)
		v, err := promptFn(pctx, q.name, q.opt, q.tab.scope, p.res)
		cancel()
		if err != nil {
			return &PromptError{Option: q.name, Err: err}
		}
		v = normalizeValue(q.opt.Type, v)
		if err := p.checkValue(q.tab, q.name, q.opt, v); err != nil {
			return err
		}
		p.store(q.tab, q.name, v)
	}
	return nil
}

// envValue coerces the option's bound environment variable, if any.
// An uncoercible value leaves the option unresolved so the declared
// default can still apply.
func (p *program) envValue(opt Option) (any, bool) {
	if opt.Env == "" || p.env == nil {
		return nil, false
	}
	s, present := p.env[opt.Env]
	if !present {
		return nil, false
	}
	switch opt.Type {
	case TypeBoolean:
		if s == "" {
			return true, true
		}
		if lit, ok := p.boolLiteral(s); ok {
			return lit, true
		}
		return nil, false
	case TypeNumber:
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		return n, true
	default:
		return s, true
	}
}

// checkValue re-runs the full validation for one resolved value: declared
// type, choices membership, custom validator.
func (p *program) checkValue(tab scopeTable, name string, opt Option, v any) error {
	if !typeMatches(opt.Type, v) {
		return &ValidationError{
			Option:  name,
			Command: tab.command,
			Value:   v,
			Reason:  fmt.Sprintf("expected a %s", opt.Type),
		}
	}
	if len(opt.Choices) > 0 {
		found := false
		for _, c := range opt.Choices {
			if normalizeValue(opt.Type, c) == v {
				found = true
				break
			}
		}
		if !found {
			return &ValidationError{
				Option:  name,
				Command: tab.command,
				Value:   v,
				Reason:  fmt.Sprintf("not one of the allowed choices %s", formatChoices(opt.Choices)),
			}
		}
	}
	if opt.Validate != nil {
		if err := opt.Validate(v); err != nil {
			return &ValidationError{
				Option:  name,
				Command: tab.command,
				Value:   v,
				Reason:  err.Error(),
			}
		}
	}
	return nil
}

func typeMatches(t OptionType, v any) bool {
	switch t {
	case TypeBoolean:
		_, ok := v.(bool)
		return ok
	case TypeNumber:
		_, ok := v.(float64)
		return ok
	default:
		_, ok := v.(string)
		return ok
	}
}

// normalizeValue widens Go integer literals to float64 for number options
// so declared defaults and choices compare cleanly with parsed values.
func normalizeValue(t OptionType, v any) any {
	if t != TypeNumber {
		return v
	}
	switch n := v.(type) {
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint64:
		return float64(n)
	case float32:
		return float64(n)
	default:
		return v
	}
}

func formatChoices(choices []any) string {
	out := ""
	for i, c := range choices {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprint(c)
	}
	return "[" + out + "]"
}
