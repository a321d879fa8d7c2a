package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("  a@x.com  \n"))

	got, err := GetSimpleText(reader, "Enter email", &out)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got)
	assert.Contains(t, out.String(), "Enter email")
}

func TestGetSimpleText_EOFWithPartialLine(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("no-newline"))

	got, err := GetSimpleText(reader, "Enter email", &out)
	require.NoError(t, err)
	assert.Equal(t, "no-newline", got)
}

func TestGetSimpleText_EOFEmpty(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader(""))

	_, err := GetSimpleText(reader, "Enter email", &out)
	assert.Error(t, err)
}

func TestGetMultiline(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("first line\nsecond line\n\nignored\n"))

	got, err := GetMultiline(reader, "Write your post", &out)
	require.NoError(t, err)
	assert.Equal(t, "first line\nsecond line", got)
}

func TestGetPassword_StubbedTerminal(t *testing.T) {
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte("secret1"), nil }
	t.Cleanup(func() { readPassword = orig })

	var out bytes.Buffer
	got, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, "secret1", got)
	assert.Contains(t, out.String(), "Enter password")
}
