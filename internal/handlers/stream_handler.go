package handlers

import (
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// passthroughHeaders are the origin response headers relayed to the client.
// Content-Range and Accept-Ranges preserve seek semantics for players.
var passthroughHeaders = []string{
	"Content-Type",
	"Content-Length",
	"Content-Range",
	"Accept-Ranges",
}

// StreamHandler relays byte-range requests to an origin media URL without
// exposing the origin directly. Authentication is required on the route: the
// gate protects server bandwidth, not content secrecy.
type StreamHandler struct {
	BaseHandler
	client       *http.Client
	publicDomain string
}

// NewStreamHandler creates a new stream handler. When publicDomain is set,
// only origin URLs under it are relayed.
func NewStreamHandler(client *http.Client, logger *zap.Logger, publicDomain string) *StreamHandler {
	return &StreamHandler{
		BaseHandler:  BaseHandler{Logger: logger},
		client:       client,
		publicDomain: strings.TrimSuffix(publicDomain, "/"),
	}
}

// Stream handles GET /stream
// @Summary Relay a media stream
// @Description Proxies the origin media URL to the client, forwarding Range requests so playback stays seekable. Requires authentication.
// @Tags stream
// @Produce application/octet-stream
// @Param url query string true "Origin media URL"
// @Param Range header string false "Byte range"
// @Success 200 "Full content"
// @Success 206 "Partial content"
// @Failure 400 {object} map[string]string "Invalid origin URL"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 502 {object} map[string]string "Origin request failed"
// @Router /stream [get]
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	origin := r.URL.Query().Get("url")
	if !h.allowedOrigin(origin) {
		h.RespondError(w, http.StatusBadRequest, "invalid origin url")
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, origin, nil)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid origin url")
		return
	}

	// Forward the client's Range header as-is to keep seeking working
	if rangeHeader := r.Header.Get("Range"); rangeHeader != "" {
		req.Header.Set("Range", rangeHeader)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		h.Logger.Error("origin request failed",
			zap.String("origin", origin),
			zap.Error(err),
		)
		h.RespondError(w, http.StatusBadGateway, "origin request failed")
		return
	}
	defer resp.Body.Close()

	for _, name := range passthroughHeaders {
		if value := resp.Header.Get(name); value != "" {
			w.Header().Set(name, value)
		}
	}

	// Propagate the origin status verbatim, 206 included; the player needs
	// real upstream failures to surface rather than spin
	w.WriteHeader(resp.StatusCode)

	// Stream without buffering the payload
	if _, err := io.Copy(w, resp.Body); err != nil {
		// Mid-transfer failure: the response is already underway, so the
		// connection terminates instead of hanging
		h.Logger.Warn("stream interrupted",
			zap.String("origin", origin),
			zap.Error(err),
		)
	}
}

// allowedOrigin reports whether the origin URL may be relayed. With a public
// domain configured only store-hosted URLs qualify; otherwise any absolute
// http(s) URL is accepted.
func (h *StreamHandler) allowedOrigin(origin string) bool {
	if origin == "" {
		return false
	}

	u, err := url.Parse(origin)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return false
	}

	if h.publicDomain != "" {
		return strings.HasPrefix(origin, h.publicDomain+"/")
	}
	return true
}
