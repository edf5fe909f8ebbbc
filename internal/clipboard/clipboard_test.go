package clipboard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystemClipboardPreferred(t *testing.T) {
	var buf bytes.Buffer
	var copied string

	c := New(&buf, nil)
	c.system = func(text string) error {
		copied = text
		return nil
	}

	c.Copy("hello")

	assert.Equal(t, "hello", copied)
	assert.Zero(t, buf.Len(), "no fallback when the system clipboard works")
}

func TestFallbackEmitsOSC52(t *testing.T) {
	var buf bytes.Buffer

	c := New(&buf, nil)
	c.system = func(string) error { return errors.New("no clipboard utility") }

	c.Copy("copy me")

	encoded := base64.StdEncoding.EncodeToString([]byte("copy me"))
	assert.Contains(t, buf.String(), encoded)
	assert.Contains(t, buf.String(), "\x1b]52;")
}

func TestNilTerminalSwallowsFailure(t *testing.T) {
	c := New(nil, nil)
	c.system = func(string) error { return errors.New("nope") }

	// Must not panic; the affordance degrades to a no-op.
	c.Copy("lost")
}
