// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package prompt acquires single lines of interactive input with
// deadline support. A Liner owns one buffered reader over its input
// stream; each ReadLine call acquires the stream for exactly one line and
// releases it on every exit path, including timeouts, so a later call can
// re-acquire it safely.
package prompt

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

type lineResult struct {
	line string
	err  error
}

// Liner reads lines from a single input stream, one at a time.
type Liner struct {
	r *bufio.Reader

	mu sync.Mutex
	// pending holds the in-flight read left behind by a timed-out
	// ReadLine. The blocked goroutine still owns the stream; the next
	// ReadLine adopts its result instead of starting a second reader.
	pending chan lineResult
}

// NewLiner wraps in for line-at-a-time reads.
func NewLiner(in io.Reader) *Liner {
	return &Liner{r: bufio.NewReader(in)}
}

// ReadLine returns the next line without its trailing newline. It honors
// ctx: on cancellation or deadline the call returns ctx.Err() while the
// underlying read stays pending for the next call to adopt. A final
// unterminated line at EOF is returned without error; EOF with no data
// surfaces as io.EOF.
func (l *Liner) ReadLine(ctx context.Context) (string, error) {
	l.mu.Lock()
	ch := l.pending
	if ch == nil {
		ch = make(chan lineResult, 1)
		l.pending = ch
		go func() {
			line, err := l.r.ReadString('\n')
			line = strings.TrimRight(line, "\r\n")
			if err == io.EOF && line != "" {
				err = nil
			}
			ch <- lineResult{line: line, err: err}
		}()
	}
	l.mu.Unlock()

	select {
	case res := <-ch:
		l.mu.Lock()
		l.pending = nil
		l.mu.Unlock()
		return res.line, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Interactive reports whether in is a terminal.
func Interactive(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
