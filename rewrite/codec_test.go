package rewrite

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestResourceCodecRoundTrip(t *testing.T) {
	t.Parallel()
	inputs := []string{
		"",
		"https://example.com/",
		"https://example.com/logo.png",
		"https://example.com/path?a=1&b=%20two#frag",
		"http://ru.wikipedia.org/wiki/Заглавная",
		"https://example.com/" + strings.Repeat("x", 2048),
	}
	for _, in := range inputs {
		id := EncodeResource(in)
		if strings.ContainsAny(id, "/?#%=+ ") {
			t.Fatalf("EncodeResource(%q) = %q contains path-unsafe characters", in, id)
		}
		got, ok := DecodeResource(id)
		if !ok || got != in {
			t.Fatalf("DecodeResource(EncodeResource(%q)) = (%q, %v), want identity", in, got, ok)
		}
	}
}

func TestEncodeResourceDeterministic(t *testing.T) {
	t.Parallel()
	const u = "https://example.com/app.js"
	if EncodeResource(u) != EncodeResource(u) {
		t.Fatalf("EncodeResource is not deterministic for %q", u)
	}
}

func TestDecodeResourcePadded(t *testing.T) {
	t.Parallel()
	const u = "https://example.com/bg.png"
	padded := base64.URLEncoding.EncodeToString([]byte(u))
	got, ok := DecodeResource(padded)
	if !ok || got != u {
		t.Fatalf("DecodeResource(%q) = (%q, %v), want (%q, true)", padded, got, ok, u)
	}
}

func TestDecodeResourceInvalid(t *testing.T) {
	t.Parallel()
	for _, id := range []string{"!!!", "a", "ab/cd", "%2e%2e", "§§"} {
		if got, ok := DecodeResource(id); ok {
			t.Fatalf("DecodeResource(%q) = (%q, true), want invalid", id, got)
		}
	}
}
