package ingest

import (
	"strings"

	"github.com/acadbot/ayudante/internal/normalize"
	"github.com/acadbot/ayudante/internal/refs"
)

// Article is one article cut out of a regulation document.
type Article struct {
	// Number is the canonical article number ("40").
	Number string
	// Text is the article's full text including its heading line.
	Text string
}

// SplitArticles cuts document text into articles. A heading is a line that
// starts with the article keyword followed by a number ("Artículo 40. ...");
// everything up to the next heading belongs to that article. Text before the
// first heading is dropped.
func SplitArticles(text string) []Article {
	var articles []Article
	var current *Article
	var body strings.Builder

	flush := func() {
		if current == nil {
			return
		}
		current.Text = strings.TrimSpace(body.String())
		articles = append(articles, *current)
		current = nil
		body.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		if num := headingNumber(line); num != "" {
			flush()
			current = &Article{Number: num}
		}
		if current != nil {
			body.WriteString(line)
			body.WriteByte('\n')
		}
	}
	flush()
	return articles
}

// headingNumber returns the article number when line is a heading, else "".
func headingNumber(line string) string {
	norm := normalize.Normalize(line)
	if !strings.HasPrefix(norm, refs.ArticleKeyword) {
		return ""
	}
	return refs.ArticleNumber(norm)
}
