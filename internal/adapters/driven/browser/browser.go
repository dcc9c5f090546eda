// Package browser opens URLs with the platform's default handler.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driven"
)

// Ensure Opener implements the interface.
var _ driven.URLOpener = (*Opener)(nil)

// Opener starts the system browser without waiting for it.
type Opener struct {
	goos  string
	start func(name string, args ...string) error
}

// New creates an opener for the running platform.
func New() *Opener {
	return &Opener{
		goos: runtime.GOOS,
		start: func(name string, args ...string) error {
			return exec.Command(name, args...).Start()
		},
	}
}

// Open opens an http or https URL.
func (o *Opener) Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("cannot open %q: %w", rawURL, domain.ErrInvalidInput)
	}

	name, args, err := command(o.goos, rawURL)
	if err != nil {
		return err
	}
	if err := o.start(name, args...); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}

// command returns the launcher for goos.
func command(goos, target string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{target}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{target}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}
