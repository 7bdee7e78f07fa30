package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

var _ APIResponse = &TypedAPIResponse[struct{}]{}

type TypedAPIResponse[TBody any] struct {
	StatusCode  int   `json:"statusCode"`
	Body        TBody `json:"body"`
	Error       error `json:"error"`
	contentType string
}

// NewTypedAPIResponse decodes JSON bodies regardless of the status code, so
// that a 503 status report still carries its report.
func NewTypedAPIResponse[TBody any](body TBody) func(resp *http.Response, err error) *TypedAPIResponse[TBody] {
	return func(resp *http.Response, err error) *TypedAPIResponse[TBody] {
		apiRes := TypedAPIResponse[TBody]{
			Error: err,
		}
		if resp == nil {
			return &apiRes
		}
		defer resp.Body.Close()

		apiRes.StatusCode = resp.StatusCode
		apiRes.contentType = resp.Header.Get("Content-Type")

		out, err := io.ReadAll(resp.Body)
		if err != nil {
			apiRes.Error = fmt.Errorf("failed to parse body: %s", err.Error())
			return &apiRes
		}

		switch strings.Split(apiRes.contentType, ";")[0] {
		case "application/json":
			if err := json.Unmarshal(out, &body); err != nil {
				apiRes.Error = pkgerrors.Wrapf(err, "failed to parse body as JSON")
				return &apiRes
			}
		case "text/plain":
			apiRes.Error = errors.New(strings.TrimSpace(string(out)))
			return &apiRes
		default:
			apiRes.Error = fmt.Errorf("unknown content type %s", strings.Split(apiRes.contentType, ";")[0])
			return &apiRes
		}

		apiRes.Body = body

		return &apiRes
	}
}

func (resp *TypedAPIResponse[TBody]) Err() error {
	return resp.Error
}

func (resp *TypedAPIResponse[TBody]) Print() error {
	return resp.Fprint(defaultOutput)
}

func (resp *TypedAPIResponse[TBody]) Fprint(w io.Writer) error {
	if resp.Error != nil {
		fmt.Fprintln(w, resp.Error.Error())
		return nil
	}

	jsonBody, err := json.Marshal(resp.Body)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to marshal body as JSON")
	}

	out, err := FormatJSON(jsonBody)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, string(out))
	return nil
}
