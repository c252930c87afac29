package crawl_test

import (
	"testing"

	"github.com/newsfold/gazeta"
	"github.com/newsfold/gazeta/crawl"
	"github.com/stretchr/testify/assert"
)

func TestValidArticleURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{
			name: "date in path",
			url:  "https://daily.example.com/2013/11/27/storm-cleanup-begins",
			want: true,
		},
		{
			name: "date with page extension",
			url:  "https://daily.example.com/2024/01/15/storm-hits-coast.html",
			want: true,
		},
		{
			name: "month name date",
			url:  "https://daily.example.com/2013/nov/27/budget-vote",
			want: true,
		},
		{
			name: "long dashed slug",
			url:  "https://daily.example.com/politics/senate-passes-budget-deal-after-marathon-session",
			want: true,
		},
		{
			name: "long underscored slug",
			url:  "https://daily.example.com/blog/united_states_announces_new_tariff_rules",
			want: true,
		},
		{
			name: "dashed slug repeating the site brand",
			url:  "https://daily.example.com/tag/example-example-example-example-example-live",
			want: false,
		},
		{
			name: "editorial path segment",
			url:  "https://daily.example.com/news/local/city-council-approves-budget",
			want: true,
		},
		{
			name: "utility path segment",
			url:  "https://daily.example.com/about/staff",
			want: false,
		},
		{
			name: "utility subdomain beats a dated path",
			url:  "https://careers.example.com/2024/01/15/join-our-team",
			want: false,
		},
		{
			name: "single path segment",
			url:  "https://daily.example.com/world",
			want: false,
		},
		{
			name: "index page carries no signal",
			url:  "https://daily.example.com/news/index.html",
			want: false,
		},
		{
			name: "media extension",
			url:  "https://daily.example.com/photos/2024/storm.jpg",
			want: false,
		},
		{
			name: "link shortener brand",
			url:  "https://twitter.com/daily/status/123456789",
			want: false,
		},
		{
			name: "non-http scheme",
			url:  "ftp://daily.example.com/2024/01/15/anchors-away",
			want: false,
		},
		{
			name: "mailto link",
			url:  "mailto:tips@daily.example.com",
			want: false,
		},
		{
			name: "too short to be an article",
			url:  "http://a.c",
			want: false,
		},
		{
			name: "bare home page",
			url:  "https://daily.example.com",
			want: false,
		},
		{
			name: "plain two level page",
			url:  "https://daily.example.com/weather/tomorrow",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, crawl.ValidArticleURL(tt.url), tt.url)
		})
	}
}

func TestCategoryURLs(t *testing.T) {
	t.Parallel()

	t.Run("picks section fronts and sibling subdomains", func(t *testing.T) {
		t.Parallel()

		links := []gazeta.Link{
			{URL: "https://daily.example.com/world", Text: "World"},
			{URL: "https://daily.example.com/sports/", Text: "Sports"},
			{URL: "https://daily.example.com/sports", Text: "Sports again"},
			{URL: "https://daily.example.com/world/index.html", Text: "World index"},
			{URL: "https://daily.example.com/about", Text: "About us"},
			{URL: "https://daily.example.com/a-very-long-section-name", Text: "Long"},
			{URL: "https://daily.example.com/2024/01/15/storm-hits-coast.html", Text: "Article"},
			{URL: "https://sports.example.com", Text: "Sports site"},
			{URL: "https://m.example.com", Text: "Mobile"},
			{URL: "https://careers.example.com", Text: "Jobs"},
			{URL: "https://other-site.com/world", Text: "Elsewhere"},
			{URL: "mailto:tips@daily.example.com", Text: "Tips"},
		}

		got := crawl.CategoryURLs("https://daily.example.com", links)

		assert.Equal(t, []string{
			"https://daily.example.com",
			"https://daily.example.com/sports",
			"https://daily.example.com/world",
			"https://sports.example.com",
		}, got)
	})

	t.Run("always includes the source itself", func(t *testing.T) {
		t.Parallel()

		got := crawl.CategoryURLs("https://daily.example.com", nil)

		assert.Equal(t, []string{"https://daily.example.com"}, got)
	})

	t.Run("rejects an unparseable source", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, crawl.CategoryURLs("://broken", nil))
	})
}
