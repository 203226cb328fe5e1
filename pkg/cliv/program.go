// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliv

import (
	"sort"
	"strings"

	"github.com/cliv-dev/cliv/pkg/prompt"
)

// program carries the validated, read-only lookup state threaded through
// the pipeline, plus the single Result being built.
type program struct {
	cfg Config
	env map[string]string

	// Cloned option tables with the synthetic help injected; the
	// caller's Config is never touched after newProgram returns.
	globals  map[string]Option
	commands map[string]Command

	injectedGlobalHelp bool
	injectedCmdHelp    map[string]bool

	globalShorts map[string]string
	cmdShorts    map[string]map[string]string

	truthy map[string]bool
	falsy  map[string]bool

	// liner is the built-in prompt's line reader, created on first use.
	liner *prompt.Liner

	res *Result
}

// scopeTable is the read-only lookup context for parsing one segment.
type scopeTable struct {
	scope   Scope
	command string
	options map[string]Option
	shorts  map[string]string
}

// newProgram clones the configuration, validates it, injects the synthetic
// help option and builds the per-scope short-alias tables. The returned
// program is usable for help rendering even when validation failed.
func newProgram(cfg Config, env map[string]string) (*program, error) {
	p := &program{
		cfg:             cfg,
		env:             env,
		globals:         cloneOptions(cfg.Options),
		commands:        make(map[string]Command, len(cfg.Commands)),
		injectedCmdHelp: make(map[string]bool),
		cmdShorts:       make(map[string]map[string]string),
		truthy:          literalSet(cfg.Truthy),
		falsy:           literalSet(cfg.Falsy),
		res: &Result{
			Options:        make(map[string]any),
			GlobalOptions:  make(map[string]any),
			CommandOptions: make(map[string]any),
		},
	}
	for name, cmd := range cfg.Commands {
		p.commands[name] = Command{
			Description: cmd.Description,
			Options:     cloneOptions(cmd.Options),
		}
	}

	err := p.validate()
	p.injectHelp()

	p.globalShorts = shortTable(p.globals)
	for name, cmd := range p.commands {
		p.cmdShorts[name] = shortTable(cmd.Options)
	}
	return p, err
}

func cloneOptions(src map[string]Option) map[string]Option {
	dst := make(map[string]Option, len(src)+1)
	for name, opt := range src {
		dst[name] = opt
	}
	return dst
}

func literalSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = true
	}
	return set
}

func shortTable(options map[string]Option) map[string]string {
	shorts := make(map[string]string)
	for name, opt := range options {
		if opt.Short != "" {
			shorts[opt.Short] = name
		}
	}
	return shorts
}

// injectHelp adds the synthetic boolean help option to the global scope
// and every command scope. The short alias "h" is granted only when no
// declared option in the same scope already claims it, and a scope where
// the user declared their own "help" option is left alone.
func (p *program) injectHelp() {
	if p.cfg.DisableHelp {
		return
	}
	if _, exists := p.globals["help"]; !exists {
		p.globals["help"] = helpOption(shortFree(p.globals, "h"))
		p.injectedGlobalHelp = true
	}
	for name, cmd := range p.commands {
		if _, exists := cmd.Options["help"]; exists {
			continue
		}
		cmd.Options["help"] = helpOption(shortFree(cmd.Options, "h"))
		p.injectedCmdHelp[name] = true
	}
}

func helpOption(withShort bool) Option {
	opt := Option{
		Type:        TypeBoolean,
		Description: "Show help",
	}
	if withShort {
		opt.Short = "h"
	}
	return opt
}

func shortFree(options map[string]Option, short string) bool {
	for _, opt := range options {
		if opt.Short == short {
			return false
		}
	}
	return true
}

func (p *program) globalTable() scopeTable {
	return scopeTable{
		scope:   ScopeGlobal,
		options: p.globals,
		shorts:  p.globalShorts,
	}
}

func (p *program) commandTable(name string) scopeTable {
	return scopeTable{
		scope:   ScopeCommand,
		command: name,
		options: p.commands[name].Options,
		shorts:  p.cmdShorts[name],
	}
}

// tables returns the active scopes in resolution order: global first, then
// the selected command.
func (p *program) tables() []scopeTable {
	tabs := []scopeTable{p.globalTable()}
	if p.res.Command != "" {
		tabs = append(tabs, p.commandTable(p.res.Command))
	}
	return tabs
}

// scopeMap returns the result sub-map a table's values land in.
func (p *program) scopeMap(tab scopeTable) map[string]any {
	if tab.scope == ScopeCommand {
		return p.res.CommandOptions
	}
	return p.res.GlobalOptions
}

// store writes a resolved value into the unified options map and the
// table's scope-specific map.
func (p *program) store(tab scopeTable, name string, value any) {
	p.res.Options[name] = value
	p.scopeMap(tab)[name] = value
}

// lookupLong resolves a lowercased long flag name against the table,
// falling back to stripping a leading "no-" for negatable booleans.
// invert reports that the negated form was used.
func (tab scopeTable) lookupLong(name string) (opt Option, storeName string, invert, ok bool) {
	if opt, ok := tab.options[name]; ok {
		return opt, name, false, true
	}
	if base, found := strings.CutPrefix(name, "no-"); found {
		if opt, ok := tab.options[base]; ok && opt.Type == TypeBoolean && opt.Negatable {
			return opt, base, true, true
		}
	}
	return Option{}, "", false, false
}

// optionNames returns the table's option names in deterministic
// (lexical) order; declaration order is not observable on Go maps.
func (tab scopeTable) optionNames() []string {
	names := make([]string, 0, len(tab.options))
	for name := range tab.options {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// helpHit reports whether an auto-injected help flag resolved true, and
// for which scope. Command help wins over root help, and a user-declared
// help option never triggers the built-in rendering.
func (p *program) helpHit() (target string, hit bool) {
	if p.res.Command != "" && p.injectedCmdHelp[p.res.Command] {
		if on, _ := p.res.CommandOptions["help"].(bool); on {
			return p.res.Command, true
		}
	}
	if p.injectedGlobalHelp {
		if on, _ := p.res.GlobalOptions["help"].(bool); on {
			return "", true
		}
	}
	return "", false
}
