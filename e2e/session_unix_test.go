//go:build e2e && unix

package main

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/require"
)

const (
	keyEnter = "\r"
	keyCtrlC = "\x03"
	keySpace = " "
	keyShare = "s"
	keyQuit  = "q"
)

// binPath is set by TestMain once the app is built
var binPath string

// session is one photogrid process attached to a pseudo terminal
type session struct {
	t      *testing.T
	home   string
	cmd    *exec.Cmd
	tty    *os.File
	screen *screen
	exited chan error
}

// startSession runs photogrid in a 120x40 terminal with its own HOME.
// The session is closed when the test ends.
func startSession(t *testing.T, args ...string) *session {
	t.Helper()
	home := t.TempDir()

	argv := append([]string{"--log-file", filepath.Join(home, "photogrid.log")}, args...)
	cmd := exec.Command(binPath, argv...)
	cmd.Dir = home
	cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C",
		"HOME="+home,
		"XDG_CONFIG_HOME="+filepath.Join(home, ".config"),
		"FLICKR_API_KEY=",
	)

	tty, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: 40, Cols: 120})
	require.NoError(t, err, "start photogrid")

	s := &session{
		t:      t,
		home:   home,
		cmd:    cmd,
		tty:    tty,
		screen: newScreen(1 << 20),
		exited: make(chan error, 1),
	}
	go func() { _, _ = io.Copy(s.screen, tty) }()
	go func() { s.exited <- cmd.Wait() }()
	t.Cleanup(s.close)
	return s
}

func (s *session) send(keys string) {
	s.t.Helper()
	_, err := s.tty.Write([]byte(keys))
	require.NoError(s.t, err, "write %q", keys)
}

// search opens the prompt, types query and submits it
func (s *session) search(query string) {
	s.t.Helper()
	s.send("/")
	time.Sleep(100 * time.Millisecond)
	s.send(query + keyEnter)
}

// waitFor polls the plain screen until match accepts it
func (s *session) waitFor(match func(plain string) bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if match(s.screen.Plain()) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(25 * time.Millisecond)
	}
}

// sees reports whether text shows up within three seconds
func (s *session) sees(text string) bool {
	return s.waitFor(func(plain string) bool {
		return strings.Contains(plain, text)
	}, 3*time.Second)
}

// expect fails the test, keeping the screen tail, when text never shows up
func (s *session) expect(text, why string) {
	s.t.Helper()
	if !s.sees(text) {
		s.fail(why)
	}
}

// fail writes the last 4 KiB of plain output next to the test and stops it
func (s *session) fail(why string) {
	s.t.Helper()
	tail := s.screen.Plain()
	if len(tail) > 4096 {
		tail = tail[len(tail)-4096:]
	}
	path := filepath.Join(s.t.TempDir(), "screen.txt")
	if err := os.WriteFile(path, []byte(tail), 0o644); err == nil {
		s.t.Logf("screen tail saved to %s", path)
	}
	s.t.Fatal(why)
}

// waitExit reports whether the process ended within timeout
func (s *session) waitExit(timeout time.Duration) bool {
	select {
	case <-s.exited:
		return true
	case <-time.After(timeout):
		return false
	}
}

func (s *session) close() {
	// closing the pty hangs up the child
	_ = s.tty.Close()
	_ = s.cmd.Process.Kill()
	s.waitExit(time.Second)
}
