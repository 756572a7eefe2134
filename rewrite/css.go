package rewrite

import (
	"regexp"
	"strings"

	cssast "github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// Stylesheets are regular enough that matching url(...) textually is safe;
// a full CSS parse buys nothing for this transformation.
var cssURLPattern = regexp.MustCompile(`url\s*\(\s*["']?([^"')\s]+)["']?\s*\)`)

// RewriteCSS rewrites every url(...) reference in cssText to route through
// the proxy's resource route, resolving relative references against the
// stylesheet's own sourceURL. data: and fragment references stay untouched;
// references that fail to resolve or validate are left verbatim.
func RewriteCSS(cssText, sourceURL, proxyBase string) string {
	out := cssURLPattern.ReplaceAllStringFunc(cssText, func(match string) string {
		sub := cssURLPattern.FindStringSubmatch(match)
		if len(sub) < 2 {
			return match
		}
		ref := strings.TrimSpace(sub[1])
		if strings.HasPrefix(ref, "data:") || strings.HasPrefix(ref, "#") {
			return match
		}
		abs := Resolve(sourceURL, ref)
		if !IsValid(abs) {
			return match
		}
		return `url("` + proxyBase + "/resource/" + EncodeResource(abs) + `")`
	})
	return rewriteStringImports(out, sourceURL, proxyBase)
}

// rewriteStringImports handles `@import "x.css"` preludes, which carry no
// url(...) wrapper and so escape the pattern above. Unparseable stylesheets
// are returned as they came in.
func rewriteStringImports(cssText, sourceURL, proxyBase string) (out string) {
	out = cssText
	defer func() {
		if recover() != nil {
			out = cssText
		}
	}()

	sheet, err := parser.Parse(cssText)
	if err != nil {
		return cssText
	}
	for _, rule := range sheet.Rules {
		if rule == nil || rule.Kind != cssast.AtRule || !strings.EqualFold(rule.Name, "@import") {
			continue
		}
		prelude := strings.TrimSpace(rule.Prelude)
		if len(prelude) < 2 || (prelude[0] != '"' && prelude[0] != '\'') {
			// url(...) form, already rewritten above.
			continue
		}
		quote := prelude[0]
		end := strings.IndexByte(prelude[1:], quote)
		if end == -1 {
			continue
		}
		ref := prelude[1 : end+1]
		if ref == "" || strings.HasPrefix(ref, proxyBase) {
			continue
		}
		abs := Resolve(sourceURL, ref)
		if !IsValid(abs) {
			continue
		}
		rewritten := proxyBase + "/resource/" + EncodeResource(abs)
		out = strings.Replace(out, string(quote)+ref+string(quote), `"`+rewritten+`"`, 1)
	}
	return out
}
