package etfmon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// http helpers shared by the provider adapters.

// FetchTimeout bounds every holdings request. A fetch that exceeds it
// fails the fund for the run; there is no retry.
const FetchTimeout = 15 * time.Second

// NewClient returns the HTTP client providers should use.
func NewClient() *http.Client {
	return &http.Client{Timeout: FetchTimeout}
}

// BrowserHeaders returns browser-like request headers. The fund pages
// serve a degraded (or empty) document to obvious bots.
func BrowserHeaders() http.Header {
	h := make(http.Header)
	h.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	h.Set("Accept-Language", "zh-TW,zh;q=0.9,en-US;q=0.8,en;q=0.7")
	return h
}

// Wget performs an HTTP GET with the given headers and returns the raw
// body. Non-2xx statuses are errors.
func Wget(client *http.Client, addr string, headers http.Header) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot create http request %q: %w", addr, err)
	}
	if headers != nil {
		req.Header = headers
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot execute http request %q: %w", addr, err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, fmt.Errorf("cannot read http body from %q: %w", addr, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	return buf.Bytes(), nil
}

// Jwget performs an HTTP GET and unmarshals the JSON response into
// data. body carries the raw payload either way, so callers can attach
// it to a ParseError.
func Jwget(client *http.Client, addr string, headers http.Header, data any) (body []byte, err error) {
	body, err = Wget(client, addr, headers)
	if err != nil {
		return body, err
	}
	if err := json.Unmarshal(body, data); err != nil {
		return body, fmt.Errorf("cannot decode json from %q: %w", addr, err)
	}
	return body, nil
}
