// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliv

import (
	"fmt"
	"regexp"
	"sort"
)

// namePattern governs option and command names: lowercase, letter first,
// then letters, digits, hyphens or underscores.
var namePattern = regexp.MustCompile(`^[a-z][a-z0-9-_]*$`)

// validate checks the declarative configuration before any token is
// parsed. It inspects the user-declared tables only; the synthetic help
// option is injected afterwards and never conflicts by construction.
func (p *program) validate() error {
	if dc := p.cfg.DefaultCommand; dc != "" {
		if _, ok := p.commands[dc]; !ok {
			return &ConfigError{Msg: fmt.Sprintf("default command %q is not a declared command", dc)}
		}
	}

	if err := validateScope("global", p.globals); err != nil {
		return err
	}

	names := make([]string, 0, len(p.commands))
	for name := range p.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !namePattern.MatchString(name) {
			return &ConfigError{Msg: fmt.Sprintf("command name %q must match %s", name, namePattern)}
		}
		if err := validateScope(fmt.Sprintf("command %q", name), p.commands[name].Options); err != nil {
			return err
		}
	}
	return nil
}

func validateScope(scope string, options map[string]Option) error {
	names := make([]string, 0, len(options))
	for name := range options {
		names = append(names, name)
	}
	sort.Strings(names)

	shorts := make(map[string]string)
	for _, name := range names {
		opt := options[name]
		if !namePattern.MatchString(name) {
			return &ConfigError{Msg: fmt.Sprintf("option name %q in %s scope must match %s", name, scope, namePattern)}
		}
		switch opt.Type {
		case TypeString, TypeNumber, TypeBoolean:
		default:
			return &ConfigError{Msg: fmt.Sprintf("option %q in %s scope has unknown type %q", name, scope, opt.Type)}
		}
		if opt.Short != "" {
			if len(opt.Short) != 1 || !isAlpha(opt.Short[0]) {
				return &ConfigError{Msg: fmt.Sprintf("short alias %q of option %q in %s scope must be one letter", opt.Short, name, scope)}
			}
			if prev, dup := shorts[opt.Short]; dup {
				return &ConfigError{Msg: fmt.Sprintf("short alias %q claimed by both %q and %q in %s scope", opt.Short, prev, name, scope)}
			}
			shorts[opt.Short] = name
		}
		if opt.Negatable {
			if opt.Type != TypeBoolean {
				return &ConfigError{Msg: fmt.Sprintf("option %q in %s scope is negatable but not boolean", name, scope)}
			}
			if _, clash := options["no-"+name]; clash {
				return &ConfigError{Msg: fmt.Sprintf("negatable option %q in %s scope collides with declared option %q", name, scope, "no-"+name)}
			}
		}
	}
	return nil
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
