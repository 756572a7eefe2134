package rewrite

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

// DecodeText converts fetched bytes into UTF-8 text. The byte encoding is
// auto-detected, with a charset= hint from the Content-Type as the second
// candidate. When neither decodes, the bytes are taken as UTF-8 with
// undecodable sequences dropped rather than failing the request.
func DecodeText(body []byte, contentType string) string {
	for _, label := range charsetCandidates(body, contentType) {
		r, err := charset.NewReaderLabel(label, bytes.NewReader(body))
		if err != nil {
			continue
		}
		out, err := io.ReadAll(r)
		if err != nil {
			continue
		}
		return string(out)
	}
	return lossyUTF8(body)
}

func charsetCandidates(body []byte, contentType string) []string {
	var labels []string
	det := chardet.NewTextDetector()
	if res, err := det.DetectBest(body); err == nil && res != nil && res.Charset != "" {
		labels = append(labels, strings.ToLower(res.Charset))
	}
	if cs := charsetFromContentType(contentType); cs != "" {
		labels = append(labels, cs)
	}
	return labels
}

func charsetFromContentType(ct string) string {
	s := strings.ToLower(ct)
	i := strings.Index(s, "charset=")
	if i == -1 {
		return ""
	}
	v := strings.TrimLeft(s[i+len("charset="):], `"'`)
	for j, c := range v {
		if c == ';' || c == ' ' || c == '"' || c == '\'' {
			v = v[:j]
			break
		}
	}
	return strings.TrimSpace(v)
}

// lossyUTF8 keeps every decodable rune and drops the rest.
func lossyUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	var sb strings.Builder
	sb.Grow(len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			b = b[1:]
			continue
		}
		sb.WriteRune(r)
		b = b[size:]
	}
	return sb.String()
}
