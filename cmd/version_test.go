package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_PrintsToolName(t *testing.T) {
	cmd := newVersionCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "filegrab")
}
