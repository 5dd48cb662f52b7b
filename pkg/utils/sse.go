package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

var ErrNoFlush = errors.New("SSE not supported: ResponseWriter not flushable")

// SSEWriter writes server-sent events to an echo response.
type SSEWriter struct {
	w    http.ResponseWriter
	fl   http.Flusher
	sent int
	done bool
}

// NewSSEWriter writes the event-stream headers and a 200 status.
func NewSSEWriter(c echo.Context) (*SSEWriter, error) {
	w := c.Response()
	f, ok := w.Writer.(http.Flusher)
	if !ok {
		return nil, ErrNoFlush
	}
	h := w.Header()
	h.Set(echo.HeaderContentType, "text/event-stream")
	h.Set(echo.HeaderCacheControl, "no-cache")
	h.Set(echo.HeaderConnection, "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	f.Flush()
	return &SSEWriter{w: w, fl: f}, nil
}

// Event sends one event. Strings are sent as is, anything else as JSON.
// Multi-line payloads are split over several data fields. Events after
// Close are dropped.
func (s *SSEWriter) Event(event string, data any) error {
	if s.done {
		return nil
	}
	payload, ok := data.(string)
	if !ok {
		b, err := json.Marshal(data)
		if err != nil {
			return err
		}
		payload = string(b)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "event: %s\n", event)
	for line := range strings.SplitSeq(payload, "\n") {
		fmt.Fprintf(&b, "data: %s\n", strings.TrimSuffix(line, "\r"))
	}
	b.WriteByte('\n')

	if _, err := fmt.Fprint(s.w, b.String()); err != nil {
		return err
	}
	s.sent++
	s.fl.Flush()
	return nil
}

// Sent reports how many events were written.
func (s *SSEWriter) Sent() int { return s.sent }

// Close sends the final close event. Further calls do nothing.
func (s *SSEWriter) Close() {
	if s.done {
		return
	}
	_ = s.Event("close", nil)
	s.done = true
}
