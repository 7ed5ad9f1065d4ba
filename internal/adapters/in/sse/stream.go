package sse

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Stream is one open server-sent-events connection.
type Stream interface {
	// Send writes a complete frame and flushes it to the client.
	Send(frame []byte) error
}

var keepAliveFrame = []byte(": keep-alive\n\n")

// EncodeFrame renders data as a single "data: <json>\n\n" frame.
func EncodeFrame(data any) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode event: %w", err)
	}

	frame := make([]byte, 0, len(payload)+8)
	frame = append(frame, "data: "...)
	frame = append(frame, payload...)
	frame = append(frame, '\n', '\n')
	return frame, nil
}

type echoStream struct {
	res *echo.Response
}

// NewEchoStream writes the event-stream headers and returns a Stream over the
// echo response. Nothing may be written to the response afterwards except
// through the Stream.
func NewEchoStream(c echo.Context) Stream {
	res := c.Response()
	h := res.Header()
	h.Set(echo.HeaderContentType, "text/event-stream")
	h.Set(echo.HeaderCacheControl, "no-cache")
	h.Set(echo.HeaderConnection, "keep-alive")
	h.Set("X-Accel-Buffering", "no")

	res.WriteHeader(http.StatusOK)
	res.Flush()

	return &echoStream{res: res}
}

func (s *echoStream) Send(frame []byte) error {
	if _, err := s.res.Write(frame); err != nil {
		return err
	}
	s.res.Flush()
	return nil
}
