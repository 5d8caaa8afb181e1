package extractor

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// HTML handles HTML files. h2/h3 map to topic/subtopic headings;
// script, style and page-furniture elements are skipped the way TOC
// and header/footer styles are in Word documents.
type HTML struct{}

func (HTML) Paragraphs(r io.Reader) ([]Paragraph, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	var paras []Paragraph
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "h1", "h2", "h3", "h4", "h5", "h6":
				style := StyleBody
				switch n.Data {
				case "h2":
					style = StyleTopicHeading
				case "h3":
					style = StyleSubtopicHeading
				}
				paras = append(paras, Paragraph{
					Text:      textContent(n),
					Style:     style,
					StyleName: n.Data,
				})
				return
			case "p", "li", "td", "blockquote":
				if t := textContent(n); t != "" {
					paras = append(paras, Paragraph{Text: t, StyleName: n.Data})
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}
	return paras, nil
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
