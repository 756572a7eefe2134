package rewrite

import (
	"net/url"
	"regexp"
	"strings"
	"testing"
)

const (
	testTarget = "https://example.com/page"
	testProxy  = "https://proxy.test"
)

func TestRewriteHTMLAnchor(t *testing.T) {
	t.Parallel()
	out := RewriteHTML(`<html><body><a href="/x">link</a></body></html>`, testTarget, testProxy)
	want := testProxy + "/browse?url=" + url.QueryEscape("https://example.com/x")
	if !strings.Contains(out, `href="`+want+`"`) {
		t.Fatalf("anchor not rewritten, got:\n%s", out)
	}
	raw := extractQueryURL(t, out)
	if raw != "https://example.com/x" {
		t.Fatalf("decoded browse target = %q, want %q", raw, "https://example.com/x")
	}
}

func TestRewriteHTMLAnchorSkips(t *testing.T) {
	t.Parallel()
	in := `<html><body>` +
		`<a href="javascript:doThing()">js</a>` +
		`<a href="#section">frag</a>` +
		`<a href="mailto:user@example.com">mail</a>` +
		`<a href="tel:+123">tel</a>` +
		`</body></html>`
	out := RewriteHTML(in, testTarget, testProxy)
	for _, href := range []string{"javascript:doThing()", "#section", "mailto:user@example.com", "tel:+123"} {
		if !strings.Contains(out, `href="`+href+`"`) {
			t.Fatalf("href %q should be untouched, got:\n%s", href, out)
		}
	}
}

func TestRewriteHTMLResource(t *testing.T) {
	t.Parallel()
	out := RewriteHTML(`<html><body><img src="/logo.png"></body></html>`, testTarget, testProxy)
	m := regexp.MustCompile(`src="` + regexp.QuoteMeta(testProxy) + `/resource/([^"]+)"`).FindStringSubmatch(out)
	if m == nil {
		t.Fatalf("img not rewritten to resource route, got:\n%s", out)
	}
	got, ok := DecodeResource(m[1])
	if !ok || got != "https://example.com/logo.png" {
		t.Fatalf("resource id decodes to (%q, %v), want https://example.com/logo.png", got, ok)
	}
}

func TestRewriteHTMLResourceTags(t *testing.T) {
	t.Parallel()
	in := `<html><head><link rel="stylesheet" href="/style.css"><script src="/app.js"></script></head>` +
		`<body><iframe src="/frame.html"></iframe></body></html>`
	out := RewriteHTML(in, testTarget, testProxy)
	for _, target := range []string{
		"https://example.com/style.css",
		"https://example.com/app.js",
		"https://example.com/frame.html",
	} {
		if !strings.Contains(out, "/resource/"+EncodeResource(target)) {
			t.Fatalf("resource %q not rewritten, got:\n%s", target, out)
		}
	}
}

func TestRewriteHTMLForm(t *testing.T) {
	t.Parallel()
	out := RewriteHTML(`<html><body><form action="/submit" method="post"><input name="q"></form></body></html>`, testTarget, testProxy)
	if !strings.Contains(out, `action="`+testProxy+`/browse"`) {
		t.Fatalf("form action not rewritten, got:\n%s", out)
	}
	if !strings.Contains(out, `<input type="hidden" name="_proxy_url" value="https://example.com/submit"`) {
		t.Fatalf("hidden target field missing, got:\n%s", out)
	}
}

func TestRewriteHTMLBaseOverride(t *testing.T) {
	t.Parallel()
	in := `<html><head><base href="https://other.example/dir/"></head><body><a href="x.html">x</a></body></html>`
	out := RewriteHTML(in, testTarget, testProxy)
	raw := extractQueryURL(t, out)
	if raw != "https://other.example/dir/x.html" {
		t.Fatalf("base-resolved target = %q, want %q", raw, "https://other.example/dir/x.html")
	}
}

func TestRewriteHTMLCharsetMeta(t *testing.T) {
	t.Parallel()
	in := `<html><head><meta charset="koi8-r"><meta http-equiv="Content-Type" content="text/html; charset=windows-1251"><title>t</title></head><body>x</body></html>`
	out := RewriteHTML(in, testTarget, testProxy)
	if !strings.Contains(out, `<meta charset="utf-8"`) {
		t.Fatalf("utf-8 meta missing, got:\n%s", out)
	}
	if strings.Contains(out, "koi8-r") || strings.Contains(out, "windows-1251") {
		t.Fatalf("stale charset declarations survived, got:\n%s", out)
	}
	// The canonical declaration must come first in head.
	head := out[strings.Index(out, "<head>"):]
	if !strings.HasPrefix(head, `<head><meta charset="utf-8"`) {
		t.Fatalf("utf-8 meta is not the first head element, got:\n%s", out)
	}
}

func TestRewriteHTMLInjectsNavigationScript(t *testing.T) {
	t.Parallel()
	out := RewriteHTML(`<html><body><p>hi</p></body></html>`, testTarget, testProxy)
	if !strings.Contains(out, "window.open") {
		t.Fatalf("navigation script missing, got:\n%s", out)
	}
	if !strings.Contains(out, "var PROXY_BASE = '"+testProxy+"'") {
		t.Fatalf("proxy base not substituted into script, got:\n%s", out)
	}
	if strings.Index(out, "window.open") > strings.Index(out, "</body>") {
		t.Fatalf("script injected after body end, got:\n%s", out)
	}
}

func TestRewriteHTMLMalformedInput(t *testing.T) {
	t.Parallel()
	inputs := []string{
		"",
		"<div><a href='/x'><span",
		"<<<>>>",
		"<html><body><img src=",
		strings.Repeat("<p>", 500),
	}
	for _, in := range inputs {
		out := RewriteHTML(in, testTarget, testProxy)
		if out == "" && in != "" {
			t.Fatalf("RewriteHTML(%q) returned empty output", in)
		}
	}
}

func TestRewriteHTMLInvalidReferenceLeftAlone(t *testing.T) {
	t.Parallel()
	in := `<html><body><a href="ftp://example.com/file">ftp</a></body></html>`
	out := RewriteHTML(in, testTarget, testProxy)
	if !strings.Contains(out, `href="ftp://example.com/file"`) {
		t.Fatalf("invalid reference should be left as-is, got:\n%s", out)
	}
}

// extractQueryURL pulls the decoded url parameter out of the first rewritten
// /browse link in the document.
func extractQueryURL(t *testing.T, doc string) string {
	t.Helper()
	m := regexp.MustCompile(`/browse\?url=([^"&]+)`).FindStringSubmatch(doc)
	if m == nil {
		t.Fatalf("no rewritten /browse link in:\n%s", doc)
	}
	raw, err := url.QueryUnescape(m[1])
	if err != nil {
		t.Fatalf("query value %q does not decode: %v", m[1], err)
	}
	return raw
}
