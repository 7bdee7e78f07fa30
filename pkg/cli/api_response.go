package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tidwall/pretty"
)

var defaultOutput io.Writer = os.Stdout

// Colors controls whether JSON output is colorized.
var Colors = true

type APIResponse interface {
	Print() error
	Fprint(w io.Writer) error
	Err() error
}

var _ APIResponse = &CommonAPIResponse{}

type CommonAPIResponse struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
	Error      error  `json:"error"`
}

func (resp *CommonAPIResponse) Err() error {
	return resp.Error
}

func (resp *CommonAPIResponse) Print() error {
	return resp.Fprint(defaultOutput)
}

func (resp *CommonAPIResponse) Fprint(w io.Writer) error {
	if resp.Error != nil {
		fmt.Fprintln(w, resp.Error.Error())
		return nil
	}
	if len(resp.Body) == 0 {
		return nil
	}

	fmt.Fprintln(w, resp.Body)
	return nil
}

func colorize(in []byte) []byte {
	if !Colors {
		return in
	}
	return pretty.Color(in, nil)
}

// FormatJSON indents raw JSON and colorizes it when Colors is set.
func FormatJSON(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, in, "", "    "); err != nil {
		return nil, err
	}
	return colorize(buf.Bytes()), nil
}
