package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/coffeeshop/frontend-env/config"
)

type EnvironmentHandler struct {
	logger *slog.Logger
	mode   config.Mode
	body   []byte
}

// NewEnvironmentHandler encodes cfg once; the response body never changes
// afterwards.
func NewEnvironmentHandler(logger *slog.Logger, mode config.Mode, cfg config.EnvironmentConfig) (*EnvironmentHandler, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}

	return &EnvironmentHandler{
		logger: logger,
		mode:   mode,
		body:   buf.Bytes(),
	}, nil
}

func (h *EnvironmentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	clientIP := extractClientIP(r)

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		h.logger.Warn("Rejected request",
			slog.String("from", clientIP),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path))
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.logger.Debug("Serving environment",
		slog.String("from", clientIP),
		slog.String("mode", string(h.mode)),
		slog.String("user_agent", r.UserAgent()))

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)

	if r.Method == http.MethodHead {
		return
	}

	if _, err := w.Write(h.body); err != nil {
		h.logger.Error("Failed to write response",
			slog.String("client", clientIP),
			slog.Any("err", err))
	}
}

func extractClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}

	host, _, _ := net.SplitHostPort(r.RemoteAddr)
	return host
}
