// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tui holds the presentation details of console sinks: deciding
// whether a destination supports color and styling the engine's error
// lines and prompt labels. Styling is a property of the sink, never part
// of the resolution pipeline's contract.
package tui

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Colorizer styles text for one destination writer. The zero value never
// colors.
type Colorizer struct {
	enabled bool
	err     *color.Color
	bold    *color.Color
	dim     *color.Color
}

// NewColorizer decides styling for w. Color is disabled when NO_COLOR is
// set, when TERM is empty or "dumb", or when w is not a terminal.
func NewColorizer(w io.Writer) Colorizer {
	if os.Getenv("NO_COLOR") != "" {
		return Colorizer{}
	}
	if t := os.Getenv("TERM"); t == "" || t == "dumb" {
		return Colorizer{}
	}
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return Colorizer{}
	}
	c := Colorizer{
		enabled: true,
		err:     color.New(color.FgRed, color.Bold),
		bold:    color.New(color.Bold),
		dim:     color.New(color.Faint),
	}
	c.err.EnableColor()
	c.bold.EnableColor()
	c.dim.EnableColor()
	return c
}

// Error styles a highlighted error line.
func (c Colorizer) Error(s string) string {
	if !c.enabled {
		return s
	}
	return c.err.Sprint(s)
}

// Bold emphasizes a label.
func (c Colorizer) Bold(s string) string {
	if !c.enabled {
		return s
	}
	return c.bold.Sprint(s)
}

// Dim de-emphasizes supplementary text.
func (c Colorizer) Dim(s string) string {
	if !c.enabled {
		return s
	}
	return c.dim.Sprint(s)
}
