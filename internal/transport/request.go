package transport

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/heliobs/magpie/pkg/errors"
	"github.com/heliobs/magpie/pkg/logging"
)

// ReadBody drains and closes the response body, enforcing the size cap.
// A non-2xx status becomes an APIError carrying the body as its message.
func (c *Client) ReadBody(resp *http.Response, service string) ([]byte, error) {
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logging.Debug().Err(cerr).Str("service", service).Msg("closing response body")
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		return nil, errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &errors.APIError{
			Service:    service,
			StatusCode: resp.StatusCode,
			Message:    truncate(string(body), 512),
		}
		if resp.Request != nil {
			apiErr.Endpoint = resp.Request.URL.String()
		}
		return nil, apiErr
	}

	return body, nil
}

// DecodeJSON reads the response body and unmarshals it into target.
func (c *Client) DecodeJSON(resp *http.Response, service string, target any) error {
	body, err := c.ReadBody(resp, service)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", service, err)
	}
	return nil
}

// truncate shortens archive error bodies for error messages. VizieR
// failures come back as full HTML pages.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
