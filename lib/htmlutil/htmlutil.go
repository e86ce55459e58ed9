package htmlutil

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

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

// Title extracts the contents of the document's <title> element, empty
// if the document has none or fails to parse.
func Title(rawhtml string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawhtml))
	if err != nil {
		return ""
	}
	sel := doc.Find("title").First()
	if len(sel.Nodes) == 0 {
		return ""
	}
	return strings.TrimSpace(GetText(sel.Nodes[0]))
}
