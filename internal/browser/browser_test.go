package browser

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	var out bytes.Buffer
	var opened []string
	b := NewWithOpener(&out, func(url string) error {
		opened = append(opened, url)
		return nil
	})

	require.NoError(t, b.Open("https://github.com/acme/widgets"))
	assert.Equal(t, []string{"https://github.com/acme/widgets"}, opened)
	assert.Equal(t, "Opening https://github.com/acme/widgets\n", out.String())
}

func TestOpenFailure(t *testing.T) {
	cause := errors.New("no browser")
	b := NewWithOpener(&bytes.Buffer{}, func(string) error { return cause })

	err := b.Open("https://github.com/acme/widgets")
	assert.ErrorIs(t, err, cause)
}
