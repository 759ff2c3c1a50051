package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newRangeOrigin serves a fixed payload with byte-range support the way an
// object store front end would
func newRangeOrigin(t *testing.T, payload []byte) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeContent(w, r, "video.ts", time.Time{}, bytes.NewReader(payload))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestStreamHandler_Stream_FullContent(t *testing.T) {
	payload := []byte("0123456789abcdef")
	origin := newRangeOrigin(t, payload)
	handler := NewStreamHandler(origin.Client(), zap.NewNop(), "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stream?url="+url.QueryEscape(origin.URL+"/video.ts"), nil)
	rec := httptest.NewRecorder()

	handler.Stream(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, payload, rec.Body.Bytes())
	assert.Equal(t, "bytes", rec.Header().Get("Accept-Ranges"))
}

func TestStreamHandler_Stream_RangePassthrough(t *testing.T) {
	payload := []byte("0123456789abcdef")
	origin := newRangeOrigin(t, payload)
	handler := NewStreamHandler(origin.Client(), zap.NewNop(), "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stream?url="+url.QueryEscape(origin.URL+"/video.ts"), nil)
	req.Header.Set("Range", "bytes=4-7")
	rec := httptest.NewRecorder()

	handler.Stream(rec, req)

	// 206 and range headers relay verbatim so players can seek
	assert.Equal(t, http.StatusPartialContent, rec.Code)
	assert.Equal(t, []byte("4567"), rec.Body.Bytes())
	assert.Equal(t, "bytes 4-7/16", rec.Header().Get("Content-Range"))
	assert.Equal(t, "4", rec.Header().Get("Content-Length"))
}

func TestStreamHandler_Stream_OriginErrorPassthrough(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(origin.Close)
	handler := NewStreamHandler(origin.Client(), zap.NewNop(), "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stream?url="+url.QueryEscape(origin.URL+"/gone.ts"), nil)
	rec := httptest.NewRecorder()

	handler.Stream(rec, req)

	// Upstream failures surface as-is instead of masquerading as success
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStreamHandler_Stream_OriginDown(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	originURL := origin.URL
	origin.Close()

	handler := NewStreamHandler(http.DefaultClient, zap.NewNop(), "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stream?url="+url.QueryEscape(originURL+"/video.ts"), nil)
	rec := httptest.NewRecorder()

	handler.Stream(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestStreamHandler_Stream_InvalidOrigin(t *testing.T) {
	handler := NewStreamHandler(http.DefaultClient, zap.NewNop(), "https://cdn.example.com")

	tests := []struct {
		name   string
		target string
	}{
		{
			name:   "missing url parameter",
			target: "/api/v1/stream",
		},
		{
			name:   "relative url",
			target: "/api/v1/stream?url=" + url.QueryEscape("/uploads/hls/a/master.m3u8"),
		},
		{
			name:   "unsupported scheme",
			target: "/api/v1/stream?url=" + url.QueryEscape("ftp://cdn.example.com/video.ts"),
		},
		{
			name:   "foreign host with domain restriction",
			target: "/api/v1/stream?url=" + url.QueryEscape("https://evil.example.org/video.ts"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()

			handler.Stream(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestStreamHandler_Stream_DomainRestriction(t *testing.T) {
	payload := []byte("segment data")
	origin := newRangeOrigin(t, payload)
	handler := NewStreamHandler(origin.Client(), zap.NewNop(), origin.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stream?url="+url.QueryEscape(origin.URL+"/video.ts"), nil)
	rec := httptest.NewRecorder()

	handler.Stream(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, payload, rec.Body.Bytes())
}
