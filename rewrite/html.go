package rewrite

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	selHead     = cascadia.MustCompile("head")
	selBody     = cascadia.MustCompile("body")
	selMeta     = cascadia.MustCompile("meta")
	selBase     = cascadia.MustCompile("base[href]")
	selAnchor   = cascadia.MustCompile("a[href]")
	selForm     = cascadia.MustCompile("form[action]")
	selResource = cascadia.MustCompile("img[src], script[src], link[href], source[src], iframe[src]")
)

// RewriteHTML rewrites every outbound reference in htmlText so it routes back
// through the proxy rooted at proxyBase. targetURL is the post-redirect URL
// the document was fetched from. On any failure the original markup is
// returned unchanged; an unrewritten page beats a broken one.
func RewriteHTML(htmlText, targetURL, proxyBase string) string {
	out, err := rewriteHTML(htmlText, targetURL, proxyBase)
	if err != nil {
		return htmlText
	}
	return out
}

func rewriteHTML(htmlText, targetURL, proxyBase string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("html rewrite: %v", r)
		}
	}()

	doc, err := html.Parse(strings.NewReader(htmlText))
	if err != nil {
		return "", err
	}

	normalizeCharsetMeta(doc)

	// <base href> overrides the fetch URL for every later resolution.
	base := targetURL
	if b := selBase.MatchFirst(doc); b != nil {
		if href := strings.TrimSpace(getAttr(b, "href")); href != "" {
			if resolved := Resolve(targetURL, href); resolved != "" {
				base = resolved
			}
		}
	}

	rewriteAnchors(doc, base, proxyBase)
	rewriteForms(doc, base, proxyBase)
	rewriteResources(doc, base, proxyBase)
	injectNavigationScript(doc, proxyBase)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// The document is re-served as UTF-8 whatever its original encoding was, so
// stale charset declarations must not survive the rewrite.
func normalizeCharsetMeta(doc *html.Node) {
	head := selHead.MatchFirst(doc)
	if head == nil {
		return
	}
	for _, meta := range selMeta.MatchAll(head) {
		if declaresCharset(meta) {
			meta.Parent.RemoveChild(meta)
		}
	}
	meta := &html.Node{
		Type:     html.ElementNode,
		Data:     "meta",
		DataAtom: atom.Meta,
		Attr:     []html.Attribute{{Key: "charset", Val: "utf-8"}},
	}
	head.InsertBefore(meta, head.FirstChild)
}

func declaresCharset(n *html.Node) bool {
	if getAttr(n, "charset") != "" {
		return true
	}
	return strings.Contains(strings.ToLower(getAttr(n, "http-equiv")), "content-type")
}

func rewriteAnchors(doc *html.Node, base, proxyBase string) {
	for _, a := range selAnchor.MatchAll(doc) {
		href := getAttr(a, "href")
		if skipNavigation(href) {
			continue
		}
		abs := Resolve(base, href)
		if !IsValid(abs) {
			continue
		}
		setAttr(a, "href", proxyBase+"/browse?url="+url.QueryEscape(abs))
	}
}

// Links that never leave the current document, or are not proxyable
// navigations, stay untouched.
func skipNavigation(href string) bool {
	if strings.HasPrefix(href, "#") {
		return true
	}
	lower := strings.ToLower(href)
	for _, p := range []string{"javascript:", "mailto:", "tel:"} {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

// Forms submit to /browse with the real target carried in a hidden field, so
// the page's own fields travel upstream unmodified.
func rewriteForms(doc *html.Node, base, proxyBase string) {
	for _, form := range selForm.MatchAll(doc) {
		abs := Resolve(base, getAttr(form, "action"))
		if !IsValid(abs) {
			continue
		}
		setAttr(form, "action", proxyBase+"/browse")
		hidden := &html.Node{
			Type:     html.ElementNode,
			Data:     "input",
			DataAtom: atom.Input,
			Attr: []html.Attribute{
				{Key: "type", Val: "hidden"},
				{Key: "name", Val: ProxyURLField},
				{Key: "value", Val: abs},
			},
		}
		form.InsertBefore(hidden, form.FirstChild)
	}
}

func rewriteResources(doc *html.Node, base, proxyBase string) {
	for _, n := range selResource.MatchAll(doc) {
		attr := "src"
		if n.DataAtom == atom.Link {
			attr = "href"
		}
		abs := Resolve(base, getAttr(n, attr))
		if !IsValid(abs) {
			continue
		}
		setAttr(n, attr, proxyBase+"/resource/"+EncodeResource(abs))
	}
}

func injectNavigationScript(doc *html.Node, proxyBase string) {
	script := &html.Node{Type: html.ElementNode, Data: "script", DataAtom: atom.Script}
	script.AppendChild(&html.Node{Type: html.TextNode, Data: navigationScript(proxyBase)})
	if body := selBody.MatchFirst(doc); body != nil {
		body.AppendChild(script)
		return
	}
	doc.AppendChild(script)
}

func getAttr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, name, val string) {
	for i, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: val})
}
