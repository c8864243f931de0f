package pages

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// Text returns the trimmed, NFC-normalized text of a selection.
func Text(sel *goquery.Selection) string {
	return norm.NFC.String(strings.TrimSpace(sel.Text()))
}

var imageNameRe = regexp.MustCompile(`/([^/]*\.png)/`)

// ImageName extracts the file name from a wiki thumbnail URL such as
// /images/thumb/a/ab/Tether.png/32px-Tether.png.
func ImageName(src string) (string, bool) {
	m := imageNameRe.FindStringSubmatch(src)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// icon returns the image name of the first image inside sel.
func icon(sel *goquery.Selection) (string, bool) {
	src, ok := sel.Find("img").First().Attr("src")
	if !ok {
		return "", false
	}
	return ImageName(src)
}

// contents returns the child nodes of sel including text, without the
// whitespace-only text nodes that markup indentation leaves behind.
func contents(sel *goquery.Selection) []*goquery.Selection {
	var out []*goquery.Selection
	sel.Contents().Each(func(_ int, node *goquery.Selection) {
		if n := node.Get(0); n.Type == html.TextNode && strings.TrimSpace(n.Data) == "" {
			return
		}
		if n := node.Get(0); n.Type == html.CommentNode {
			return
		}
		out = append(out, node)
	})
	return out
}

// leadingInt parses the digits at the start of s, as in "2x".
func leadingInt(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	return n, err == nil
}
