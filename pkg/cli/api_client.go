package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mittwald/rootcheck/pkg/detect"
	"github.com/mittwald/rootcheck/pkg/server"
)

type APIClient struct {
	apiAddress string
}

func NewAPIClient(apiAddress string) *APIClient {
	return &APIClient{
		apiAddress: apiAddress,
	}
}

func (api *APIClient) Status() *TypedAPIResponse[detect.Report] {
	client, u, err := api.buildHTTPClientAndURL()
	if err != nil {
		return &TypedAPIResponse[detect.Report]{Error: err}
	}

	u.Path = "/status"
	return NewTypedAPIResponse(detect.Report{})(client.Get(u.String()))
}

// CheckPaths sends paths to the boundary endpoint. nil entries are encoded
// as JSON null and rejected by the server.
func (api *APIClient) CheckPaths(paths []*string) *TypedAPIResponse[server.PathsResponse] {
	client, u, err := api.buildHTTPClientAndURL()
	if err != nil {
		return &TypedAPIResponse[server.PathsResponse]{Error: err}
	}

	body, err := json.Marshal(paths)
	if err != nil {
		return &TypedAPIResponse[server.PathsResponse]{Error: err}
	}

	u.Path = "/v1/paths"
	return NewTypedAPIResponse(server.PathsResponse{})(client.Post(u.String(), "application/json", bytes.NewReader(body)))
}

func (api *APIClient) Debug() *TypedAPIResponse[server.DebugState] {
	client, u, err := api.buildHTTPClientAndURL()
	if err != nil {
		return &TypedAPIResponse[server.DebugState]{Error: err}
	}

	u.Path = "/v1/debug"
	return NewTypedAPIResponse(server.DebugState{})(client.Get(u.String()))
}

func (api *APIClient) SetDebug(enabled bool) *TypedAPIResponse[server.DebugState] {
	client, u, err := api.buildHTTPClientAndURL()
	if err != nil {
		return &TypedAPIResponse[server.DebugState]{Error: err}
	}

	body, err := json.Marshal(server.DebugState{Enabled: enabled})
	if err != nil {
		return &TypedAPIResponse[server.DebugState]{Error: err}
	}

	u.Path = "/v1/debug"
	req, err := newJSONRequest(http.MethodPut, u.String(), body)
	if err != nil {
		return &TypedAPIResponse[server.DebugState]{Error: err}
	}

	return NewTypedAPIResponse(server.DebugState{})(client.Do(req))
}

// Watch streams one report per interval until the connection closes or
// limit reports were received. A limit of 0 means no limit.
func (api *APIClient) Watch(interval time.Duration, limit int) APIResponse {
	dialer, u, err := api.buildWebsocketURL()
	if err != nil {
		return &CommonAPIResponse{Error: err}
	}

	u.Path = "/v1/watch"
	u.RawQuery = url.Values{"interval": []string{interval.String()}}.Encode()

	handler := func(ctx context.Context, conn *websocket.Conn, msgChan chan []byte, errChan chan error) {
		for received := 0; limit == 0 || received < limit; received++ {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				select {
				case errChan <- err:
				case <-ctx.Done():
				}
				return
			}

			select {
			case msgChan <- msg:
			case <-ctx.Done():
				return
			}
		}

		select {
		case errChan <- &websocket.CloseError{Code: websocket.CloseNormalClosure, Text: fmt.Sprintf("received %d reports", limit)}:
		case <-ctx.Done():
		}
	}
	return NewStreamingAPIResponse(u, dialer, handler)
}
