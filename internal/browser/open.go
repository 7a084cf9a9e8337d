package browser

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Open opens the specified URL in the user's default browser.
// $BROWSER, when set, is used instead of the platform opener.
func Open(rawURL string) error {
	cmd, err := command(runtime.GOOS, os.Getenv("BROWSER"), rawURL)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("browser.Open: %w", err)
	}
	return nil
}

func command(goos, override, rawURL string) (*exec.Cmd, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("browser.Open: refusing to open %q", rawURL)
	}
	if fields := strings.Fields(override); len(fields) > 0 {
		return exec.Command(fields[0], append(fields[1:], rawURL)...), nil
	}
	switch goos {
	case "darwin":
		return exec.Command("open", rawURL), nil
	case "linux", "freebsd", "openbsd":
		return exec.Command("xdg-open", rawURL), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL), nil
	default:
		return nil, fmt.Errorf("unsupported OS: %s", goos)
	}
}
