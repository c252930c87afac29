package charset_test

import (
	"testing"
	"unicode/utf8"

	"github.com/newsfold/gazeta/charset"
	"github.com/stretchr/testify/assert"
)

func TestDecoder_Decode_UTF8Declared(t *testing.T) {
	t.Parallel()

	d := charset.NewDecoder()

	got := d.Decode([]byte("<p>smörgåsbord</p>"), "text/html; charset=utf-8")

	assert.Equal(t, "<p>smörgåsbord</p>", got)
}

func TestDecoder_Decode_Latin1Declared(t *testing.T) {
	t.Parallel()

	d := charset.NewDecoder()

	got := d.Decode([]byte("caf\xe9 au lait"), "text/html; charset=iso-8859-1")

	assert.Equal(t, "café au lait", got)
}

func TestDecoder_Decode_MetaTagDeclared(t *testing.T) {
	t.Parallel()

	d := charset.NewDecoder()
	body := []byte("<html><head><meta charset=\"windows-1252\"></head><body>r\xe9sum\xe9</body></html>")

	got := d.Decode(body, "text/html")

	assert.Contains(t, got, "résumé")
}

func TestDecoder_Decode_SniffsUndeclaredUTF8(t *testing.T) {
	t.Parallel()

	d := charset.NewDecoder()
	body := []byte("<p>Пример текста на русском языке, достаточно длинный для распознавания.</p>")

	got := d.Decode(body, "text/html")

	assert.Equal(t, string(body), got)
}

func TestDecoder_Decode_GarbageStaysValidUTF8(t *testing.T) {
	t.Parallel()

	d := charset.NewDecoder()
	body := []byte{'<', 'p', '>', 0x92, 0x03, 0xff, 'a', '<', '/', 'p', '>'}

	got := d.Decode(body, "")

	assert.True(t, utf8.ValidString(got))
	assert.NotEmpty(t, got)
}

func TestDecoder_Decode_EmptyBody(t *testing.T) {
	t.Parallel()

	d := charset.NewDecoder()

	assert.Empty(t, d.Decode(nil, "text/html"))
	assert.Empty(t, d.Decode([]byte{}, "text/html; charset=utf-8"))
}
