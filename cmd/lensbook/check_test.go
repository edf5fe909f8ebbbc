package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const checkFixture = `title: Acme Brand Book
sections:
  - id: intro
    title: Introduction
    blocks:
      - text: Welcome.
nav:
  - label: Intro
    target: intro
`

func TestCheckCommandAcceptsValidDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.yaml")
	require.NoError(t, os.WriteFile(path, []byte(checkFixture), 0o644))

	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"check", path})

	require.NoError(t, root.Execute())
	require.Contains(t, buf.String(), "1 sections")
	require.Contains(t, buf.String(), "ok")
}

func TestCheckCommandRejectsUnknownTarget(t *testing.T) {
	bad := `title: Acme
sections:
  - id: intro
    title: Introduction
nav:
  - label: Missing
    target: nowhere
`
	path := filepath.Join(t.TempDir(), "book.yaml")
	require.NoError(t, os.WriteFile(path, []byte(bad), 0o644))

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"check", path})

	require.Error(t, root.Execute())
}
