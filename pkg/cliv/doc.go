// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cliv resolves command-line options for programs with subcommands.
//
// A program declares its interface once as data: global options, commands
// with their own options, and a handful of behavioral knobs. Parse then
// consumes raw arguments plus an environment map and returns a fully
// resolved, typed Result. A value for each declared option is found in
// precedence order:
//
//	flag > environment variable > declared default > interactive prompt
//
// Options are typed (string, number, boolean) and every resolved value is
// re-validated against the declared type, choice list, and custom
// validator before the Result is returned.
//
// # Basic usage
//
//	cfg := cliv.Config{
//	    Options: map[string]cliv.Option{
//	        "verbose": {Type: cliv.TypeBoolean, Short: "v", Description: "Enable verbose output"},
//	    },
//	    Commands: map[string]cliv.Command{
//	        "build": {Description: "Build the project", Options: map[string]cliv.Option{
//	            "out": {Type: cliv.TypeString, Required: true, Env: "BUILD_OUT"},
//	        }},
//	    },
//	}
//	res, err := cliv.Parse(ctx, cfg)
//
// # Flag syntax
//
//   - Long flags: --name, --name=value, --name value
//   - Short flags: -v, -o=file, -o file
//   - Stacked shorts: -xyz value (all but the last must be boolean)
//   - Negation: --no-name sets a negatable boolean to false
//   - "--" stops flag parsing; later tokens are positionals
//
// Boolean flags only consume a following token when it is one of the
// configured truthy or falsy literals (true/yes/1, false/no/0 by default),
// so a boolean never accidentally swallows the next flag.
//
// # Commands
//
// The first token matching a declared command name (case-insensitively)
// splits the argument list: tokens before it resolve against the global
// options, tokens after it against the command's options. When no command
// token is present, DefaultCommand (if set) receives the whole list and
// Result.IsDefaultCommand is set. Note that a flag *value* that happens to
// equal a command name is still treated as the command boundary; this is a
// known limitation of single-pass scanning.
//
// # Help
//
// Unless disabled, a boolean "help" option is injected into the global
// scope and every command scope, taking the short alias "h" only when no
// declared option in that scope already uses it. A triggered help renders
// to stdout and terminates with status 0; any pipeline error prints one
// highlighted line plus the full help text and terminates with status 1.
// Set ThrowOnError to receive errors instead, and Exit to intercept
// termination (useful in tests).
package cliv
