package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/salesdash/internal/encoding"
)

func readAll(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "id,title,price\n1,Café crème,12.50\n2,Jalapeño,3.00\n"
	assert.Equal(t, input, readAll(t, []byte(input)))
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	// "id;title\n1;Café\n" with é = 0xE9.
	input := []byte{'i', 'd', ';', 't', 'i', 't', 'l', 'e', '\n', '1', ';', 'C', 'a', 'f', 0xE9, '\n'}
	assert.Equal(t, "id;title\n1;Café\n", readAll(t, input))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`[{"id":1}]`)...)
	assert.Equal(t, `[{"id":1}]`, readAll(t, input))
}

func TestNewUTF8Reader_UTF16LEBOM(t *testing.T) {
	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte("id,title\n1,Café\n"))
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(encoded, []byte{0xFF, 0xFE}))

	assert.Equal(t, "id,title\n1,Café\n", readAll(t, encoded))
}

func TestNewUTF8Reader_LargeInput(t *testing.T) {
	input := bytes.Repeat([]byte("1,Backpack,109.95\n"), 1000)
	assert.Equal(t, string(input), readAll(t, input))
}

func TestNewUTF8Reader_RuneAcrossSniffWindow(t *testing.T) {
	// Place a two-byte "é" so it straddles the 4096-byte sniff boundary.
	input := append(bytes.Repeat([]byte("a"), 4095), []byte("é tail")...)
	assert.Equal(t, string(input), readAll(t, input))
}

func TestDetect(t *testing.T) {
	assert.Equal(t, "UTF-8", encoding.Detect([]byte("plain ascii")))
	assert.Equal(t, "UTF-8", encoding.Detect([]byte{0xEF, 0xBB, 0xBF, 'a'}))
	assert.Equal(t, "UTF-16LE", encoding.Detect([]byte{0xFF, 0xFE, 'a', 0}))
	assert.Equal(t, "UTF-16BE", encoding.Detect([]byte{0xFE, 0xFF, 0, 'a'}))
	assert.Equal(t, "UTF-8", encoding.Detect(nil))
}
