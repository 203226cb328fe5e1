// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliv

import (
	"strconv"
	"strings"
)

// parseSegment walks one segment's tokens against its scope table,
// writing resolved values into the in-progress Result.
func (p *program) parseSegment(tokens []string, tab scopeTable) error {
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch {
		case tok == "--":
			return p.takePositionals(tokens[i+1:], tab)

		case strings.HasPrefix(tok, "--"):
			consumed, err := p.parseLong(tok, tokens, i, tab)
			if err != nil {
				return err
			}
			i += consumed

		case strings.HasPrefix(tok, "-") && len(tok) > 1 && !isNumeric(tok):
			consumed, err := p.parseShort(tok, tokens, i, tab)
			if err != nil {
				return err
			}
			i += consumed

		default:
			if !p.cfg.AllowPositionals {
				return &ParseError{
					Kind:       UnknownArgument,
					Token:      tok,
					Command:    tab.command,
					Suggestion: p.suggestToken(tok, tab),
				}
			}
			p.res.Positionals = append(p.res.Positionals, tok)
		}
	}
	return nil
}

// takePositionals handles everything behind the "--" terminator: the
// tokens land in Positionals verbatim, never reinterpreted as options.
func (p *program) takePositionals(rest []string, tab scopeTable) error {
	if !p.cfg.AllowPositionals {
		if len(rest) > 0 {
			return &ParseError{Kind: UnknownArgument, Token: rest[0], Command: tab.command}
		}
		return nil
	}
	p.res.Positionals = append(p.res.Positionals, rest...)
	return nil
}

// parseLong resolves --name and --name=value forms, including the
// synthetic --no-<name> negation for negatable booleans.
func (p *program) parseLong(tok string, tokens []string, i int, tab scopeTable) (consumed int, err error) {
	name := tok[2:]
	value := ""
	hasValue := false
	if idx := strings.Index(name, "="); idx >= 0 {
		value = name[idx+1:]
		name = name[:idx]
		hasValue = true
	}
	name = strings.ToLower(name)

	opt, storeName, invert, ok := tab.lookupLong(name)
	if !ok {
		return 0, &ParseError{
			Kind:       UnknownOption,
			Token:      "--" + name,
			Command:    tab.command,
			Suggestion: p.suggestOption(name, tab),
		}
	}
	return p.resolveValue(tab, storeName, opt, invert, value, hasValue, tokens, i)
}

// parseShort resolves -x and stacked -xyz forms. Every letter except the
// last must be a boolean option and is set true in place; the last letter
// is the primary option and may take an =value suffix or a trailing
// value token.
func (p *program) parseShort(tok string, tokens []string, i int, tab scopeTable) (consumed int, err error) {
	body := tok[1:]
	value := ""
	hasValue := false
	if idx := strings.Index(body, "="); idx >= 0 {
		value = body[idx+1:]
		body = body[:idx]
		hasValue = true
	}

	letters := strings.Split(body, "")
	for j, letter := range letters {
		name, ok := tab.shorts[letter]
		if !ok {
			return 0, &ParseError{
				Kind:    UnknownOption,
				Token:   "-" + letter,
				Command: tab.command,
			}
		}
		opt := tab.options[name]
		if j < len(letters)-1 {
			if opt.Type != TypeBoolean {
				return 0, &ParseError{
					Kind:    StackedNonBoolean,
					Token:   tok,
					Option:  letter,
					Command: tab.command,
				}
			}
			p.store(tab, name, true)
			continue
		}
		return p.resolveValue(tab, name, opt, false, value, hasValue, tokens, i)
	}
	return 0, nil
}

// resolveValue coerces and stores one option's value. consumed reports how
// many following tokens were eaten as the value.
func (p *program) resolveValue(tab scopeTable, name string, opt Option, invert bool, value string, hasValue bool, tokens []string, i int) (consumed int, err error) {
	switch opt.Type {
	case TypeBoolean:
		b := true
		switch {
		case hasValue:
			lit, ok := p.boolLiteral(value)
			if !ok {
				return 0, &ParseError{Kind: BadBooleanLiteral, Token: value, Option: name, Command: tab.command}
			}
			b = lit
		case i+1 < len(tokens):
			// A following token is consumed only when it reads as a
			// boolean literal, so booleans never swallow the next flag.
			if lit, ok := p.boolLiteral(tokens[i+1]); ok {
				b = lit
				consumed = 1
			}
		}
		if invert {
			b = !b
		}
		p.store(tab, name, b)
		return consumed, nil

	case TypeNumber:
		raw, consumed, perr := p.takeValue(name, opt, value, hasValue, tokens, i, tab)
		if perr != nil {
			return 0, perr
		}
		n, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil {
			return 0, &ParseError{Kind: NotANumber, Token: raw, Option: name, Command: tab.command}
		}
		p.store(tab, name, n)
		return consumed, nil

	default: // TypeString
		raw, consumed, perr := p.takeValue(name, opt, value, hasValue, tokens, i, tab)
		if perr != nil {
			return 0, perr
		}
		p.store(tab, name, raw)
		return consumed, nil
	}
}

// takeValue yields the value for a non-boolean option: the =value suffix
// when present, otherwise the following token. A following token that
// looks like another flag is not consumed (negative numbers are fine for
// number options), surfacing as a missing-value error instead.
func (p *program) takeValue(name string, opt Option, value string, hasValue bool, tokens []string, i int, tab scopeTable) (raw string, consumed int, err error) {
	if hasValue {
		return value, 0, nil
	}
	if i+1 < len(tokens) {
		next := tokens[i+1]
		if next != "--" && (!strings.HasPrefix(next, "-") || (opt.Type == TypeNumber && isNumeric(next))) {
			return next, 1, nil
		}
	}
	return "", 0, &ParseError{Kind: MissingValue, Option: name, Command: tab.command}
}

// boolLiteral matches a token against the configured truthy/falsy sets,
// case-insensitively.
func (p *program) boolLiteral(tok string) (value, ok bool) {
	lower := strings.ToLower(tok)
	if p.truthy[lower] {
		return true, true
	}
	if p.falsy[lower] {
		return false, true
	}
	return false, false
}

// isNumeric reports whether s reads as a decimal number, optionally
// signed, so tokens like "-5" or "-3.14" are treated as values rather
// than flags.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	start := 0
	if s[0] == '-' || s[0] == '+' {
		if len(s) == 1 {
			return false
		}
		start = 1
	}
	hasDigit := false
	hasDot := false
	for i := start; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			hasDigit = true
		case s[i] == '.':
			if hasDot {
				return false
			}
			hasDot = true
		default:
			return false
		}
	}
	return hasDigit
}

// suggestOption proposes a close long name for an unknown --flag.
func (p *program) suggestOption(name string, tab scopeTable) string {
	cands := tab.optionNames()
	if s := suggest(name, cands); s != "" {
		return "--" + s
	}
	return ""
}

// suggestToken proposes either a command or an in-scope option for an
// unexpected bare token.
func (p *program) suggestToken(tok string, tab scopeTable) string {
	lower := strings.ToLower(tok)
	cands := make([]string, 0, len(p.commands))
	for name := range p.commands {
		cands = append(cands, name)
	}
	if s := suggest(lower, cands); s != "" {
		return s
	}
	if s := suggest(lower, tab.optionNames()); s != "" {
		return "--" + s
	}
	return ""
}
