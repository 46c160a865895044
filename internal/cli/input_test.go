package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMultiline(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"double enter", "a\nb\n\n\n", "a\nb"},
		{"eof without blank line", "only line", "only line"},
		{"crlf", "x\r\ny\r\n\r\n", "x\ny"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetMultiline(bufio.NewReader(strings.NewReader(tt.input)), "Enter text", &out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Enter text")
		})
	}
}

func TestScanMultiline(t *testing.T) {
	sc := bufio.NewScanner(strings.NewReader("first\nsecond\n\nnext command\n"))
	var out bytes.Buffer

	got, err := ScanMultiline(sc, "Write", &out)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond", got)

	require.True(t, sc.Scan())
	assert.Equal(t, "next command", sc.Text())
}

func TestGetPassphrase(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	readPassword = func(int) ([]byte, error) { return []byte("pw"), nil }
	var out bytes.Buffer
	got, err := GetPassphrase(&out)
	require.NoError(t, err)
	assert.Equal(t, []byte("pw"), got)
	assert.Contains(t, out.String(), "Passphrase:")

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetPassphrase(&out)
	assert.Error(t, err)
}
