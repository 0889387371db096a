package share

import (
	"errors"
	"io"
	"os/exec"
	"path/filepath"
	"runtime"
)

var (
	execCommand = exec.Command
	lookPath    = exec.LookPath
)

// Reveal shows path in the platform file manager
func Reveal(path string) error {
	if path == "" {
		return errors.New("empty path")
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	cmd, args, err := commandForReveal(runtime.GOOS, path)
	if err != nil {
		return err
	}
	c := execCommand(cmd, args...)
	c.Stdout = io.Discard
	c.Stderr = io.Discard
	return c.Run()
}

func commandForReveal(goos string, path string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{"-R", path}, nil
	case "windows":
		return "explorer.exe", []string{"/select," + filepath.Clean(path)}, nil
	default:
		dir := filepath.Dir(path)
		for _, opener := range []string{"xdg-open", "gio"} {
			if _, err := lookPath(opener); err != nil {
				continue
			}
			if opener == "gio" {
				return "gio", []string{"open", dir}, nil
			}
			return opener, []string{dir}, nil
		}
		return "", nil, errors.New("no file manager opener found (need xdg-open or gio)")
	}
}
