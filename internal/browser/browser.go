// Package browser opens project and issue pages in the user's browser.
package browser

import (
	"fmt"
	"io"

	"github.com/pkg/browser"

	"github.com/danielolaszy/gli/internal/logging"
)

// Opener opens a URL.
type Opener func(url string) error

// Browser opens URLs, printing each one first so it can be copied when no
// browser is available.
type Browser struct {
	out  io.Writer
	open Opener
}

// New returns a Browser using the system browser.
func New(out io.Writer) *Browser {
	return NewWithOpener(out, browser.OpenURL)
}

// NewWithOpener returns a Browser delegating to open.
func NewWithOpener(out io.Writer, open Opener) *Browser {
	return &Browser{out: out, open: open}
}

// Open prints url and opens it.
func (b *Browser) Open(url string) error {
	fmt.Fprintf(b.out, "Opening %s\n", url)
	logging.Debug("opening browser", "url", url)

	if err := b.open(url); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}
