package rewrite

import (
	"strings"
	"testing"
)

func TestDecodeTextUTF8PassThrough(t *testing.T) {
	t.Parallel()
	const in = "<html><body>Привет, world!</body></html>"
	if got := DecodeText([]byte(in), "text/html; charset=utf-8"); got != in {
		t.Fatalf("DecodeText changed valid UTF-8: %q -> %q", in, got)
	}
}

func TestDecodeTextASCII(t *testing.T) {
	t.Parallel()
	const in = "body { color: red; }"
	if got := DecodeText([]byte(in), "text/css"); got != in {
		t.Fatalf("DecodeText changed ASCII: %q -> %q", in, got)
	}
}

func TestCharsetFromContentType(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "text/html; charset=utf-8", "utf-8"},
		{"quoted", `text/html; charset="windows-1251"`, "windows-1251"},
		{"uppercase", "text/html; CHARSET=KOI8-R", "koi8-r"},
		{"trailing param", "text/html; charset=iso-8859-1; boundary=x", "iso-8859-1"},
		{"missing", "text/html", ""},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := charsetFromContentType(tc.in); got != tc.want {
				t.Fatalf("charsetFromContentType(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestLossyUTF8DropsBadBytes(t *testing.T) {
	t.Parallel()
	in := []byte{'h', 'i', 0xff, 0xfe, '!', ' '}
	in = append(in, []byte("дом")...)
	got := lossyUTF8(in)
	if got != "hi! дом" {
		t.Fatalf("lossyUTF8(%v) = %q, want %q", in, got, "hi! дом")
	}
	if !strings.Contains(got, "hi") {
		t.Fatalf("lossyUTF8 dropped decodable content: %q", got)
	}
}

func TestLossyUTF8ValidInput(t *testing.T) {
	t.Parallel()
	const in = "all valid"
	if got := lossyUTF8([]byte(in)); got != in {
		t.Fatalf("lossyUTF8(%q) = %q, want unchanged", in, got)
	}
}
