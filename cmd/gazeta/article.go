package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/newsfold/gazeta"
	"github.com/newsfold/gazeta/fs"
)

// configOptions translates the command's flags into configuration
// overrides.
func (c *ArticleCmd) configOptions() []gazeta.ConfigOption {
	var opts []gazeta.ConfigOption
	if c.Language != "" {
		opts = append(opts, gazeta.WithLanguage(c.Language))
	}
	// Markdown output and file export both convert the body HTML.
	if c.Format == "markdown" || c.Out != "" {
		opts = append(opts, gazeta.WithKeepArticleHTML(true))
	}
	return opts
}

// Run executes the article command.
func (c *ArticleCmd) Run(deps *Dependencies) error {
	article, err := deps.Client.Process(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gazeta.ErrorMessage(err))
		return err
	}

	if !article.Downloaded() {
		fmt.Fprintf(deps.Stderr, "error: download failed: %v\n", article.DownloadError())
		return gazeta.Errorf(gazeta.ENOTFOUND, "download failed for %s", article.URL)
	}

	if c.Out != "" {
		path, err := fs.NewArticleWriter(c.Out, deps.Converter).WriteArticle(article)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", gazeta.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %s\n", path)
		return nil
	}

	switch c.Format {
	case "json":
		return printJSON(deps.Stdout, article)
	case "markdown":
		printMarkdown(deps.Stdout, deps.Converter, article)
	default:
		printText(deps.Stdout, article)
	}
	return nil
}

func printJSON(w io.Writer, article *gazeta.Article) error {
	data, err := json.MarshalIndent(article, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func printMarkdown(w io.Writer, converter gazeta.Converter, article *gazeta.Article) {
	body := article.Text
	if article.ArticleHTML != "" {
		if converted, err := converter.Convert(article.ArticleHTML); err == nil {
			body = converted
		}
	}

	fmt.Fprintf(w, "# %s\n\n", article.Title)
	var byline []string
	if len(article.Authors) > 0 {
		byline = append(byline, "By "+strings.Join(article.Authors, ", "))
	}
	if article.PublishDate != nil {
		byline = append(byline, article.PublishDate.Format("2006-01-02"))
	}
	if len(byline) > 0 {
		fmt.Fprintf(w, "*%s*\n\n", strings.Join(byline, ", "))
	}
	fmt.Fprintln(w, body)
}

func printText(w io.Writer, article *gazeta.Article) {
	fmt.Fprintf(w, "Title:     %s\n", article.Title)
	if len(article.Authors) > 0 {
		fmt.Fprintf(w, "Authors:   %s\n", strings.Join(article.Authors, ", "))
	}
	if article.PublishDate != nil {
		fmt.Fprintf(w, "Published: %s\n", article.PublishDate.Format("2006-01-02"))
	}
	fmt.Fprintf(w, "Language:  %s\n", article.Language())
	if article.TopImage != "" {
		fmt.Fprintf(w, "Top image: %s\n", article.TopImage)
	}
	fmt.Fprintf(w, "\n%s\n", article.Text)
	if article.Summary != "" {
		fmt.Fprintf(w, "\nSummary:\n%s\n", article.Summary)
	}
	if len(article.Keywords) > 0 {
		words := make([]string, 0, len(article.Keywords))
		for _, kw := range article.Keywords {
			words = append(words, kw.Word)
		}
		fmt.Fprintf(w, "\nKeywords: %s\n", strings.Join(words, ", "))
	}
}
