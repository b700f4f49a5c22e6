package encoding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dealdesk/internal/encoding"
)

func TestToUTF8(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{
			name:  "Passthrough",
			input: []byte("<p>Buyer: José Muñoz</p>"),
			want:  "<p>Buyer: José Muñoz</p>",
		},
		{
			name:  "StripsUTF8BOM",
			input: append([]byte{0xEF, 0xBB, 0xBF}, []byte("jurisdiction: TX\n")...),
			want:  "jurisdiction: TX\n",
		},
		{
			name:  "UTF16LE",
			input: []byte{0xFF, 0xFE, 'O', 0, 'K', 0},
			want:  "OK",
		},
		{
			// "Señor García" in Windows-1252.
			name:  "Latin1",
			input: []byte{'S', 'e', 0xF1, 'o', 'r', ' ', 'G', 'a', 'r', 'c', 0xED, 'a'},
			want:  "Señor García",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := encoding.ToUTF8(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}
