package fs

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/newsfold/gazeta"
)

// ArticleWriter exports extracted articles as Markdown files with YAML
// frontmatter, one file per article under a base directory.
type ArticleWriter struct {
	baseDir   string
	converter gazeta.Converter
}

// NewArticleWriter creates an ArticleWriter rooted at baseDir. The
// converter renders kept article HTML as Markdown; when it is nil or an
// article kept no HTML, the plain extracted text is written instead.
func NewArticleWriter(baseDir string, converter gazeta.Converter) *ArticleWriter {
	return &ArticleWriter{baseDir: baseDir, converter: converter}
}

// WriteArticle writes one article and returns the path of the created
// file.
func (w *ArticleWriter) WriteArticle(article *gazeta.Article) (string, error) {
	relPath, err := ArticlePath(article.URL)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}

	body := article.Text
	if w.converter != nil && article.ArticleHTML != "" {
		if md, err := w.converter.Convert(article.ArticleHTML); err == nil {
			body = md
		}
	}

	if err := os.WriteFile(fullPath, []byte(FormatArticle(article, body)), 0644); err != nil {
		return "", err
	}
	return fullPath, nil
}

// FormatArticle renders an exported article: YAML frontmatter followed
// by the body.
func FormatArticle(article *gazeta.Article, body string) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(article.URL)
	b.WriteString("\ntitle: ")
	b.WriteString(article.Title)
	if len(article.Authors) > 0 {
		b.WriteString("\nauthors: ")
		b.WriteString(strings.Join(article.Authors, ", "))
	}
	if article.PublishDate != nil {
		b.WriteString("\npublished: ")
		b.WriteString(article.PublishDate.Format("2006-01-02"))
	}
	b.WriteString("\n---\n\n")
	b.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}

// ArticlePath converts an article URL to a relative file path.
// Example: https://example.com/2020/05/story.html → example.com/2020/05/story.md
func ArticlePath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", gazeta.Errorf(gazeta.EINVALID, "article URL %q: %v", rawURL, err)
	}

	path := strings.TrimPrefix(u.Path, "/")
	if path == "" || strings.HasSuffix(path, "/") {
		path += "index"
	}
	if ext := filepath.Ext(path); ext != "" {
		path = strings.TrimSuffix(path, ext)
	}
	return filepath.Join(u.Host, path+".md"), nil
}
