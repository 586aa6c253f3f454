package cli

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectLines(t *testing.T, r io.Reader) ([]string, error) {
	t.Helper()
	var got []string
	err := eachLine(r, func(line string) bool {
		got = append(got, line)
		return true
	})
	return got, err
}

func TestEachLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"trailing newline", "check all\nbye\n", []string{"check all", "bye"}},
		{"no trailing newline", "check all\nbye", []string{"check all", "bye"}},
		{"crlf", "check all\r\n\r\nbye\r\n", []string{"check all", "", "bye"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := collectLines(t, strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEachLine_BeyondScannerLimit(t *testing.T) {
	long := strings.Repeat("x", 256*1024)
	got, err := collectLines(t, strings.NewReader(long+"\nadd item Towel / 3\n"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Len(t, got[0], len(long))
	assert.Equal(t, "add item Towel / 3", got[1])
}

func TestEachLine_StopsWhenToldTo(t *testing.T) {
	calls := 0
	err := eachLine(strings.NewReader("a\nb\nc\n"), func(string) bool {
		calls++
		return calls < 2
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("device gone") }

func TestEachLine_ReadError(t *testing.T) {
	_, err := collectLines(t, failingReader{})
	assert.EqualError(t, err, "device gone")
}
