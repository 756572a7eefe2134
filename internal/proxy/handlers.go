package proxy

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"secureproxy/rewrite"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, s.cfg.IndexHTML)
}

func (s *Server) handleBrowse(w http.ResponseWriter, r *http.Request) {
	var target string
	form := url.Values{}
	method := http.MethodGet
	if r.Method == http.MethodPost {
		_ = r.ParseForm()
		target = firstNonEmpty(r.PostForm.Get(rewrite.ProxyURLField), r.PostForm.Get("url"))
		for k, vs := range r.PostForm {
			if k == "url" || k == rewrite.ProxyURLField {
				continue
			}
			form[k] = vs
		}
		if len(form) > 0 {
			method = http.MethodPost
		}
	} else {
		target = strings.TrimSpace(r.URL.Query().Get("url"))
	}
	if target == "" {
		http.Error(w, "URL is required", http.StatusBadRequest)
		return
	}

	res, err := s.fetcher.FetchPage(r.Context(), target, method, form)
	if err != nil {
		s.writeFetchError(w, target, err)
		return
	}

	if res.Kind == rewrite.KindHTML {
		text := rewrite.DecodeText(res.Body, res.ContentType)
		page := rewrite.RewriteHTML(text, res.FinalURL, serverBase(r))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, page)
		return
	}
	writeRaw(w, res)
}

func (s *Server) handleResource(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/resource/")
	target, ok := rewrite.DecodeResource(id)
	if !ok || !rewrite.IsValid(target) {
		http.Error(w, "Invalid resource URL", http.StatusBadRequest)
		return
	}

	res, err := s.fetcher.FetchResource(r.Context(), target)
	if err != nil {
		// The resource route deliberately hides upstream error detail.
		s.logger.Printf("RESOURCE %s failed: %v", target, err)
		http.Error(w, "Error loading resource", http.StatusNotFound)
		return
	}

	if res.Kind == rewrite.KindCSS {
		text := rewrite.DecodeText(res.Body, res.ContentType)
		sheet := rewrite.RewriteCSS(text, res.FinalURL, serverBase(r))
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		io.WriteString(w, sheet)
		return
	}
	writeRaw(w, res)
}

func (s *Server) writeFetchError(w http.ResponseWriter, target string, err error) {
	switch {
	case errors.Is(err, rewrite.ErrInvalidURL):
		http.Error(w, "Invalid or unsupported URL: "+target, http.StatusBadRequest)
	case errors.Is(err, rewrite.ErrUpstreamTimeout):
		s.logger.Printf("BROWSE %s timed out: %v", target, err)
		http.Error(w, "Request timed out", http.StatusGatewayTimeout)
	case errors.Is(err, rewrite.ErrUpstreamConnect):
		s.logger.Printf("BROWSE %s unreachable: %v", target, err)
		http.Error(w, "Could not connect to the website", http.StatusBadGateway)
	default:
		s.logger.Printf("BROWSE %s failed: %v", target, err)
		http.Error(w, "Error fetching website", http.StatusInternalServerError)
	}
}

func writeRaw(w http.ResponseWriter, res *rewrite.Result) {
	if res.ContentType != "" {
		w.Header().Set("Content-Type", res.ContentType)
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Body)))
	_, _ = w.Write(res.Body)
}

// serverBase derives the externally visible proxy root from the inbound
// request, so rewritten links work behind any hostname or port.
func serverBase(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
