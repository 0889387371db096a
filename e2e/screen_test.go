//go:build e2e && unix

package main

import (
	"regexp"
	"sync"
)

// escapes matches the terminal control sequences Bubble Tea writes: CSI and
// OSC sequences, charset and keypad switches, and carriage returns.
var escapes = regexp.MustCompile(
	`\x1b\[[0-9;?]*[ -/]*[@-~]|\x1b\][^\x07]*\x07|\x1b[()][A-Za-z]|\x1b[=>]|\r`,
)

func stripEscapes(s string) string {
	return escapes.ReplaceAllString(s, "")
}

// screen keeps the last size bytes an app wrote to its terminal
type screen struct {
	mu      sync.Mutex
	data    []byte
	next    int
	wrapped bool
}

func newScreen(size int) *screen {
	return &screen{data: make([]byte, size)}
}

func (s *screen) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	written := len(p)
	for len(p) > 0 {
		n := copy(s.data[s.next:], p)
		p = p[n:]
		s.next += n
		if s.next == len(s.data) {
			s.next = 0
			s.wrapped = true
		}
	}
	return written, nil
}

// Raw returns everything kept so far, oldest byte first
func (s *screen) Raw() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.wrapped {
		return string(s.data[:s.next])
	}
	return string(s.data[s.next:]) + string(s.data[:s.next])
}

// Plain is Raw without control sequences
func (s *screen) Plain() string {
	return stripEscapes(s.Raw())
}
