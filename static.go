package main

import (
	"bytes"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

// staticAssets serves the embedded static tree. Text-like assets are brotli
// compressed once on first request when the client accepts it.
type staticAssets struct {
	files fs.FS

	mu sync.Mutex
	br map[string][]byte
}

func newStaticAssets() (*staticAssets, error) {
	files, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}
	return &staticAssets{files: files, br: make(map[string][]byte)}, nil
}

func (s *staticAssets) serve(c *gin.Context) {
	name := strings.TrimPrefix(c.Param("filepath"), "/")
	data, err := fs.ReadFile(s.files, name)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	ctype := mime.TypeByExtension(path.Ext(name))
	if ctype == "" {
		ctype = http.DetectContentType(data)
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Header("Vary", "Accept-Encoding")

	if compressible(ctype) && acceptsBrotli(c.GetHeader("Accept-Encoding")) {
		if body, err := s.compressed(name, data); err == nil {
			c.Header("Content-Encoding", "br")
			c.Data(http.StatusOK, ctype, body)
			return
		}
	}
	c.Data(http.StatusOK, ctype, data)
}

func (s *staticAssets) compressed(name string, data []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if body, ok := s.br[name]; ok {
		return body, nil
	}

	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, brotli.BestCompression)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	s.br[name] = buf.Bytes()
	return s.br[name], nil
}

func compressible(ctype string) bool {
	ctype, _, _ = strings.Cut(ctype, ";")
	switch {
	case strings.HasPrefix(ctype, "text/"):
		return true
	case ctype == "application/javascript", ctype == "application/json",
		ctype == "application/wasm", ctype == "image/svg+xml":
		return true
	}
	return false
}

func acceptsBrotli(header string) bool {
	for _, part := range strings.Split(header, ",") {
		enc, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if strings.TrimSpace(enc) != "br" {
			continue
		}
		return strings.ReplaceAll(params, " ", "") != "q=0"
	}
	return false
}
