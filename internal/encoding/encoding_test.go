package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfreitas/tally/internal/encoding"
)

func decode(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.NewReader(bytes.NewReader(input))
	require.NoError(t, err)

	out, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(out)
}

func TestNewReader(t *testing.T) {
	type testCase struct {
		name  string
		input []byte
		want  string
	}

	tests := []testCase{
		{
			name:  "PlainASCII",
			input: []byte("date,amount\n2025-01-02,100\n"),
			want:  "date,amount\n2025-01-02,100\n",
		},
		{
			name:  "UTF8Passthrough",
			input: []byte("Café,100\n"),
			want:  "Café,100\n",
		},
		{
			name:  "UTF8BOMStripped",
			input: append([]byte{0xEF, 0xBB, 0xBF}, []byte("date,amount\n")...),
			want:  "date,amount\n",
		},
		{
			name: "UTF16LEWithBOM",
			input: []byte{
				0xFF, 0xFE,
				'h', 0x00, 'i', 0x00,
			},
			want: "hi",
		},
		{
			// "Café" in Windows-1252: é = 0xE9, invalid as UTF-8.
			name:  "Windows1252Fallback",
			input: []byte{'C', 'a', 'f', 0xE9, ',', '4', '0'},
			want:  "Café,40",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decode(t, tt.input))
		})
	}
}

func TestNewReader_Empty(t *testing.T) {
	assert.Equal(t, "", decode(t, nil))
}
