package middleware

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

type accessLog struct {
	Time       string `json:"time"`
	Method     string `json:"method"`
	Path       string `json:"path"`
	Status     int    `json:"status"`
	Bytes      int    `json:"bytes"`
	DurationMs int64  `json:"durationMs"`
	RequestID  string `json:"requestId"`
}

// responseMeta captures the status and body size the handler wrote, so the
// access log can report them after the fact.
type responseMeta struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (m *responseMeta) WriteHeader(code int) {
	m.status = code
	m.ResponseWriter.WriteHeader(code)
}

func (m *responseMeta) Write(p []byte) (int, error) {
	n, err := m.ResponseWriter.Write(p)
	m.bytes += n
	return n, err
}

// Logger emits one JSON line per request on the standard logger.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		meta := &responseMeta{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(meta, r)

		line, _ := json.Marshal(accessLog{
			Time:       time.Now().UTC().Format(time.RFC3339),
			Method:     r.Method,
			Path:       r.URL.Path,
			Status:     meta.status,
			Bytes:      meta.bytes,
			DurationMs: time.Since(start).Milliseconds(),
			RequestID:  GetRequestID(r.Context()),
		})
		log.Println(string(line))
	})
}
