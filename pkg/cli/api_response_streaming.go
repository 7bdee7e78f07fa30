package cli

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/gorilla/websocket"
)

var _ APIResponse = &StreamingAPIResponse{}

type StreamingAPIResponseHandler func(ctx context.Context, conn *websocket.Conn, msg chan []byte, err chan error)

type StreamingAPIResponse struct {
	url           *url.URL
	streamingFunc StreamingAPIResponseHandler
	dialer        *websocket.Dialer
}

func NewStreamingAPIResponse(url *url.URL, dialer *websocket.Dialer, streamingFunc StreamingAPIResponseHandler) APIResponse {
	return &StreamingAPIResponse{
		url:           url,
		streamingFunc: streamingFunc,
		dialer:        dialer,
	}
}

func (resp *StreamingAPIResponse) Err() error {
	return nil
}

func (resp *StreamingAPIResponse) Print() error {
	return resp.Fprint(defaultOutput)
}

// Fprint writes every received message as formatted JSON, one after the
// other, until the stream ends.
func (resp *StreamingAPIResponse) Fprint(w io.Writer) error {
	conn, _, err := resp.dialer.Dial(resp.url.String(), nil)
	if err != nil {
		return fmt.Errorf("error dialing to %s: %w", resp.url.String(), err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	messageChan := make(chan []byte)
	errorChan := make(chan error)
	defer func() {
		cancel()
		conn.Close()
	}()

	go resp.streamingFunc(ctx, conn, messageChan, errorChan)

	for {
		select {
		case msg := <-messageChan:
			out, err := FormatJSON(msg)
			if err != nil {
				out = msg
			}
			fmt.Fprintln(w, string(out))
		case err := <-errorChan:
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				return nil
			}
			return err
		}
	}
}
