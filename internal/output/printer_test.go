package output

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintln_WritesFullLine(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(WithWriter(&buf))

	require.NoError(t, p.Println("Hello, world"))
	assert.Equal(t, "Hello, world\n", buf.String())
}

func TestPrintln_FlushesBufferedWriter(t *testing.T) {
	var buf bytes.Buffer
	bw := bufio.NewWriterSize(&buf, 4096)
	p := NewPrinter(WithWriter(bw))

	require.NoError(t, p.Println("prompt before read"))
	assert.Equal(t, "prompt before read\n", buf.String())
}

func TestPrint_NoTrailingNewline(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(WithWriter(&buf))

	require.NoError(t, p.Print("path: "))
	assert.Equal(t, "path: ", buf.String())
}
