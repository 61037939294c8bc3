package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText_TrimsLine(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("  me@example.com  \n"))

	got, err := GetSimpleText(r, "Enter email", &out)
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", got)
	assert.Contains(t, out.String(), "Enter email")
}

func TestGetSimpleText_PartialLineOnEOF(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("me@example.com"))

	got, err := GetSimpleText(r, "Enter email", &out)
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", got)
}

func TestGetSimpleText_EmptyInputErrors(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader(""))

	_, err := GetSimpleText(r, "Enter email", &out)
	assert.Error(t, err)
}
