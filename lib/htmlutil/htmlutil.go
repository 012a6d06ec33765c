package htmlutil

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// GetText concatenates every text node under node, markup is dropped.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var blockElements = map[string]bool{
	"p": true, "div": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "tr": true,
}

// GetTextLines flattens a rich-text container into plain text. Line breaks
// (<br> and block element boundaries) survive as "\n", every line is trimmed
// and empty lines are dropped.
func GetTextLines(sel *goquery.Selection) string {
	var buffer bytes.Buffer
	for _, n := range sel.Nodes {
		getTextLinesRecursive(n, &buffer)
	}

	var lines []string
	for _, line := range strings.Split(buffer.String(), "\n") {
		line = strings.TrimSpace(innerWhitespace.ReplaceAllString(line, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func getTextLinesRecursive(node *html.Node, buffer *bytes.Buffer) {
	switch node.Type {
	case html.TextNode:
		buffer.WriteString(strings.ReplaceAll(node.Data, "\n", " "))
		return
	case html.ElementNode:
		if node.Data == "br" {
			buffer.WriteByte('\n')
			return
		}
	}

	block := node.Type == html.ElementNode && blockElements[node.Data]
	if block {
		buffer.WriteByte('\n')
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		getTextLinesRecursive(child, buffer)
	}
	if block {
		buffer.WriteByte('\n')
	}
}

type Anchor struct {
	Name string
	Url  *url.URL
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// GetAnchors collects the anchors in sel, hrefs are resolved against base
// when it is not nil. Anchors with unparsable hrefs are skipped.
func GetAnchors(base *url.URL, sel *goquery.Selection) []Anchor {
	anchors := []Anchor{}
	for _, n := range sel.Nodes {
		href := ""
		for _, a := range n.Attr {
			if a.Key == "href" {
				href = a.Val
				break
			}
		}

		link, err := url.Parse(href)
		if err != nil {
			continue
		}
		if base != nil {
			link = base.ResolveReference(link)
		}

		name := strings.Join(strings.Fields(GetText(n)), " ")
		name = removeNonPrintable(name)

		anchors = append(anchors, Anchor{
			Name: name,
			Url:  link,
		})
	}
	return anchors
}

// LastPathSegment returns the final non-empty segment of a link's path, it is
// how the site exposes ids in hrefs like "/books/<id>".
func LastPathSegment(link *url.URL) string {
	segments := strings.Split(strings.TrimRight(link.Path, "/"), "/")
	return segments[len(segments)-1]
}
