package mailparser

import (
	"html"
	"strings"

	xhtml "golang.org/x/net/html"
)

// tags whose text content is never part of the notification body.
var skippedTags = map[string]bool{
	"script": true,
	"style":  true,
	"head":   true,
}

// HTMLToText strips markup from an HTML body, unescapes entities and
// collapses whitespace runs to single spaces. Used when a message carries no
// plain-text part.
func HTMLToText(htmlBody string) string {
	tokenizer := xhtml.NewTokenizer(strings.NewReader(htmlBody))

	var sb strings.Builder
	skipDepth := 0
	for {
		tt := tokenizer.Next()
		switch tt {
		case xhtml.ErrorToken:
			text := html.UnescapeString(sb.String())
			// &nbsp; unescapes to U+00A0, which \s does not match.
			text = strings.ReplaceAll(text, " ", " ")
			return whitespaceRun.ReplaceAllString(strings.TrimSpace(text), " ")
		case xhtml.StartTagToken:
			name, _ := tokenizer.TagName()
			if skippedTags[string(name)] {
				skipDepth++
			}
		case xhtml.EndTagToken:
			name, _ := tokenizer.TagName()
			if skippedTags[string(name)] && skipDepth > 0 {
				skipDepth--
			}
		case xhtml.TextToken:
			if skipDepth == 0 {
				sb.Write(tokenizer.Text())
				sb.WriteByte(' ')
			}
		}
	}
}
