// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliv

import "strings"

// segments is the outcome of the single-pass command scan.
type segments struct {
	programArgs []string
	command     string
	commandArgs []string
	isDefault   bool
}

// split scans the token list left-to-right, case-insensitively, for the
// first token equal to a declared command name. Tokens before it form the
// program segment, tokens after it the command segment. With no match the
// whole list goes to DefaultCommand when one is configured, otherwise to
// the program segment. Scanning stops at the "--" terminator so tokens
// behind it are never promoted to commands.
//
// Known limitation: a flag value that equals a command name (for example
// "--output build" when a "build" command exists) is classified as the
// command boundary. Single-pass scanning cannot tell the two apart.
func (p *program) split(args []string) segments {
	for i, tok := range args {
		if tok == "--" {
			break
		}
		lower := strings.ToLower(tok)
		if _, ok := p.commands[lower]; ok {
			return segments{
				programArgs: args[:i],
				command:     lower,
				commandArgs: args[i+1:],
			}
		}
	}
	if p.cfg.DefaultCommand != "" {
		return segments{
			command:     p.cfg.DefaultCommand,
			commandArgs: args,
			isDefault:   true,
		}
	}
	return segments{programArgs: args}
}
