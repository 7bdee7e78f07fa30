package cli

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"
)

func (api *APIClient) buildHTTPClientAndURL() (*http.Client, *url.URL, error) {
	u, err := url.Parse(api.apiAddress)
	if err != nil {
		return nil, nil, err
	}
	if u.Scheme != "unix" {
		return &http.Client{}, u, nil
	}

	socketPath := u.Path
	u.Scheme = "http"
	u.Host = "unix"
	u.Path = ""
	return &http.Client{
		Transport: &http.Transport{
			DialContext: func(_ context.Context, _, _ string) (net.Conn, error) {
				return net.Dial("unix", socketPath)
			},
		},
	}, u, nil
}

func (api *APIClient) buildWebsocketURL() (*websocket.Dialer, *url.URL, error) {
	u, err := url.Parse(api.apiAddress)
	if err != nil {
		return nil, nil, err
	}
	if u.Scheme != "unix" {
		if u.Scheme == "https" {
			u.Scheme = "wss"
		} else {
			u.Scheme = "ws"
		}
		return websocket.DefaultDialer, u, nil
	}
	socketPath := u.Path

	dialer := &websocket.Dialer{
		NetDial: func(network, addr string) (net.Conn, error) {
			return net.Dial("unix", socketPath)
		},
	}

	u.Scheme = "ws"
	u.Host = "unix"
	u.Path = ""
	return dialer, u, nil
}

func newJSONRequest(method, u string, body []byte) (*http.Request, error) {
	req, err := http.NewRequest(method, u, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}
