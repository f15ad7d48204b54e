package frame

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal(t *testing.T) {
	t.Run("layout", func(t *testing.T) {
		got, err := Marshal(File{Name: "a.txt", MIME: "text/plain", Payload: []byte{0x01, 0x02}})
		require.NoError(t, err)
		exp := []byte{0xFF, 0xFF, 5, 10}
		exp = append(exp, "a.txt"...)
		exp = append(exp, "text/plain"...)
		exp = append(exp, 0x01, 0x02)
		assert.Equal(t, exp, got)
	})

	t.Run("empty", func(t *testing.T) {
		got, err := Marshal(File{})
		require.NoError(t, err)
		assert.Equal(t, []byte{0xFF, 0xFF, 0, 0}, got)
	})

	t.Run("field limits", func(t *testing.T) {
		test := []struct {
			name    string
			file    File
			wantErr error
		}{
			{"name at limit", File{Name: strings.Repeat("n", MaxFieldLen)}, nil},
			{"mime at limit", File{MIME: strings.Repeat("m", MaxFieldLen)}, nil},
			{"name over limit", File{Name: strings.Repeat("n", MaxFieldLen+1)}, ErrNameTooLong},
			{"mime over limit", File{MIME: strings.Repeat("m", MaxFieldLen+1)}, ErrMIMETooLong},
			// 86 three-byte runes = 258 bytes
			{"multibyte name over limit", File{Name: strings.Repeat("あ", 86)}, ErrNameTooLong},
		}
		for _, tt := range test {
			t.Run(tt.name, func(t *testing.T) {
				_, err := Marshal(tt.file)
				if tt.wantErr == nil {
					assert.NoError(t, err)
					return
				}
				assert.True(t, errors.Is(err, tt.wantErr), "error should wrap expected")
			})
		}
	})
}

func TestUnmarshal(t *testing.T) {
	test := []struct {
		name   string
		data   []byte
		exp    File
		framed bool
	}{
		{"not framed", []byte("hello"), File{}, false},
		{"single sentinel", []byte{0xFF}, File{}, false},
		{"sentinel only", []byte{0xFF, 0xFF}, File{Payload: []byte{}}, true},
		{"missing mime length", []byte{0xFF, 0xFF, 2}, File{Payload: []byte{}}, true},
		{"full",
			append([]byte{0xFF, 0xFF, 1, 2, 'f', 'a', '/'}, 0xDE, 0xAD),
			File{Name: "f", MIME: "a/", Payload: []byte{0xDE, 0xAD}}, true},
		{"name cut short",
			[]byte{0xFF, 0xFF, 10, 4, 'a', 'b', 'c'},
			File{Name: "abc", Payload: []byte{}}, true},
		{"mime cut short",
			[]byte{0xFF, 0xFF, 1, 4, 'a', 'b'},
			File{Name: "a", MIME: "b", Payload: []byte{}}, true},
		{"invalid utf8 name",
			[]byte{0xFF, 0xFF, 1, 0, 0x80},
			File{Name: "�", Payload: []byte{}}, true},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Unmarshal(tt.data)
			assert.Equal(t, tt.framed, ok)
			assert.Equal(t, tt.exp, got)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	f := File{Name: "写真.png", MIME: "image/png", Payload: []byte{0x89, 'P', 'N', 'G', 0xFF, 0xFF}}
	data, err := Marshal(f)
	require.NoError(t, err)
	assert.Equal(t, f.Len(), len(data))

	got, ok := Unmarshal(data)
	require.True(t, ok)
	assert.Equal(t, f, got)
}
