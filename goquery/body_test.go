package goquery_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Body_PicksDensestRegion(t *testing.T) {
	t.Parallel()

	html := `<html><body>
<div id="teaser"><p>A short promo sentence lives here with just enough words to count.</p></div>
<div id="story">
<p>The first real paragraph carries a full sentence of article prose with plenty of words in it.</p>
<p>The second real paragraph continues the article with another healthy run of words for the scorer.</p>
<p>The third real paragraph closes out the piece with a conclusion that also has many words.</p>
</div>
</body></html>`

	ext, err := newTestExtractor(t).Extract(html, "https://example.com/a")
	require.NoError(t, err)

	blocks := strings.Split(ext.Text, "\n")
	require.Len(t, blocks, 3)
	assert.Contains(t, blocks[0], "first real paragraph")
	assert.Contains(t, blocks[2], "third real paragraph")
	assert.NotContains(t, ext.Text, "promo")
}

func TestExtractor_Body_ThinPageYieldsEmptyText(t *testing.T) {
	t.Parallel()

	html := `<html><body><p>Too few words here.</p></body></html>`

	ext, err := newTestExtractor(t).Extract(html, "https://example.com/a")
	require.NoError(t, err)
	assert.Empty(t, ext.Text)
}

func TestExtractor_Body_ChromeTagsNeverWin(t *testing.T) {
	t.Parallel()

	html := `<html><body>
<footer>Contact careers advertising privacy cookies sitemap corrections licensing reprints newsletters podcasts archives accessibility help terms conditions masthead staff listings</footer>
<div><p>The actual article paragraph has a normal amount of prose words inside it for scoring.</p>
<p>A follow-up paragraph keeps the body candidate comfortably above the minimum score floor.</p></div>
</body></html>`

	ext, err := newTestExtractor(t).Extract(html, "https://example.com/a")
	require.NoError(t, err)
	assert.Contains(t, ext.Text, "actual article paragraph")
	assert.NotContains(t, ext.Text, "careers")
}

func TestExtractor_Body_DropsLinkLists(t *testing.T) {
	t.Parallel()

	html := `<html><body><div>
<p>The opening paragraph of the story reads normally and scores as article prose.</p>
<p><a href="/a">Read more</a> <a href="/b">Related coverage</a> <a href="/c">More headlines from the desk</a> now</p>
<p>The closing paragraph of the story also reads normally and scores as prose.</p>
</div></body></html>`

	ext, err := newTestExtractor(t).Extract(html, "https://example.com/a")
	require.NoError(t, err)

	blocks := strings.Split(ext.Text, "\n")
	require.Len(t, blocks, 2)
	assert.NotContains(t, ext.Text, "Related coverage")
}

func TestExtractor_Body_TableArticle(t *testing.T) {
	t.Parallel()

	html := `<html><body><table><tr>
<td>Older newsroom layouts put the entire article inside a single table cell with all of its words.</td>
</tr></table></body></html>`

	ext, err := newTestExtractor(t).Extract(html, "https://example.com/a")
	require.NoError(t, err)
	assert.Contains(t, ext.Text, "Older newsroom layouts")
}

func TestExtractor_Body_WhitespaceCollapsed(t *testing.T) {
	t.Parallel()

	html := "<html><body><div><p>Spaced\n\twords   collapse\nto   single gaps within every article paragraph block here.</p>" +
		"<p>The second paragraph exists to push the container past the scoring floor.</p></div></body></html>"

	ext, err := newTestExtractor(t).Extract(html, "https://example.com/a")
	require.NoError(t, err)

	blocks := strings.Split(ext.Text, "\n")
	require.Len(t, blocks, 2)
	assert.Equal(t, "Spaced words collapse to single gaps within every article paragraph block here.", blocks[0])
}
