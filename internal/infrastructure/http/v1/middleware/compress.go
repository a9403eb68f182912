package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
)

// gzipWriter compresses lazily: headers are touched only once the first
// body byte arrives, so bodiless responses (204, 304) go out unencoded.
type gzipWriter struct {
	gin.ResponseWriter
	gz    *gzip.Writer
	wrote bool
}

func (w *gzipWriter) start() {
	if w.wrote {
		return
	}
	w.wrote = true
	w.Header().Del("Content-Length")
	w.Header().Set("Content-Encoding", "gzip")
}

func (w *gzipWriter) Write(data []byte) (int, error) {
	w.start()
	return w.gz.Write(data)
}

func (w *gzipWriter) WriteString(s string) (int, error) {
	w.start()
	return w.gz.Write([]byte(s))
}

// Compress gzips responses for clients that accept it. The dashboard
// payload is by far the largest body the API serves and compresses well.
func Compress() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Accept-Encoding"), "gzip") {
			c.Next()
			return
		}

		gz, err := gzip.NewWriterLevel(c.Writer, gzip.BestSpeed)
		if err != nil {
			c.Next()
			return
		}

		c.Header("Vary", "Accept-Encoding")

		gw := &gzipWriter{ResponseWriter: c.Writer, gz: gz}
		c.Writer = gw

		defer func() {
			if gw.wrote {
				_ = gz.Close()
			}
		}()

		c.Next()
	}
}
