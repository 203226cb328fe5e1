// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliv

import (
	"fmt"
	"sort"
	"strings"
)

// renderHelp formats help text for the root configuration, or for one
// command when target is non-empty. It reads only the validated lookup
// state; nothing is printed and nothing is mutated.
//
// Root help lists the global options, then the default command's options
// when one is configured, then the command list. Command help lists the
// command's own options first, then the global options, and no command
// list.
func (p *program) renderHelp(target string) string {
	var b strings.Builder

	if target != "" {
		if _, ok := p.commands[target]; !ok {
			target = ""
		}
	}

	if target == "" {
		b.WriteString(p.cfg.Name)
		if p.cfg.Description != "" {
			b.WriteString(" - ")
			b.WriteString(p.cfg.Description)
		}
		b.WriteString("\n\n")
		b.WriteString("USAGE:\n")
		fmt.Fprintf(&b, "    %s [OPTIONS]", p.cfg.Name)
		if len(p.commands) > 0 {
			b.WriteString(" COMMAND")
		}
		if p.cfg.AllowPositionals {
			b.WriteString(" [ARGS...]")
		}
		b.WriteString("\n\n")

		writeOptionSection(&b, "GLOBAL OPTIONS:", p.globals)
		if dc := p.cfg.DefaultCommand; dc != "" {
			writeOptionSection(&b, fmt.Sprintf("OPTIONS (%s):", dc), p.commands[dc].Options)
		}
		p.writeCommandList(&b)
		return b.String()
	}

	cmd := p.commands[target]
	if cmd.Description != "" {
		b.WriteString(cmd.Description)
		b.WriteString("\n\n")
	}
	b.WriteString("USAGE:\n")
	fmt.Fprintf(&b, "    %s %s [OPTIONS]", p.cfg.Name, target)
	if p.cfg.AllowPositionals {
		b.WriteString(" [ARGS...]")
	}
	b.WriteString("\n\n")

	writeOptionSection(&b, "OPTIONS:", cmd.Options)
	writeOptionSection(&b, "GLOBAL OPTIONS:", p.globals)
	return b.String()
}

func writeOptionSection(b *strings.Builder, header string, options map[string]Option) {
	names := make([]string, 0, len(options))
	for name, opt := range options {
		if opt.Hidden {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return
	}
	sort.Strings(names)

	b.WriteString(header)
	b.WriteString("\n")
	for _, name := range names {
		opt := options[name]
		flagStr := optionColumn(name, opt)
		if opt.Description != "" || opt.Required || opt.Default != nil {
			fmt.Fprintf(b, "%-34s %s", flagStr, opt.Description)
		} else {
			b.WriteString(flagStr)
		}
		if opt.Required {
			b.WriteString(" (required)")
		}
		if opt.Default != nil {
			fmt.Fprintf(b, " (default: %v)", opt.Default)
		}
		b.WriteString("\n")
		if len(opt.Choices) > 0 {
			fmt.Fprintf(b, "        possible values: %s\n", strings.Trim(formatChoices(opt.Choices), "[]"))
		}
	}
	b.WriteString("\n")
}

// optionColumn builds the left column: short alias, long name, bound
// environment variable, and a type annotation omitted for booleans.
func optionColumn(name string, opt Option) string {
	var b strings.Builder
	if opt.Short != "" {
		fmt.Fprintf(&b, "    -%s, --%s", opt.Short, name)
	} else {
		fmt.Fprintf(&b, "        --%s", name)
	}
	if opt.Env != "" {
		fmt.Fprintf(&b, " [$%s]", opt.Env)
	}
	if opt.Type != TypeBoolean {
		fmt.Fprintf(&b, " <%s>", opt.Type)
	}
	return b.String()
}

func (p *program) writeCommandList(b *strings.Builder) {
	if len(p.commands) == 0 {
		return
	}
	names := make([]string, 0, len(p.commands))
	for name := range p.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	b.WriteString("COMMANDS:\n")
	for _, name := range names {
		label := name
		if name == p.cfg.DefaultCommand {
			label += " (default)"
		}
		fmt.Fprintf(b, "    %-16s %s\n", label, p.commands[name].Description)
	}
	b.WriteString("\n")
}
