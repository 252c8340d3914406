package banksort

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"github.com/PaesslerAG/jsonpath"
	"github.com/rfinn/banksort/date"
)

// quote retrieval is a thin adapter around a JSON market endpoint. It is the
// only networked part of the system; its failures are returned as wrapped
// errors and never recovered into fake data.

// cacheTransport keeps successful responses on disk for the rest of the day.
// Quote endpoints rarely move intraday and some rate-limit aggressively, so
// repeated runs reuse the first answer.
type cacheTransport struct {
	next http.RoundTripper
}

// cachePath keys the cache file on today's date and the request line, so
// entries expire overnight.
func (c *cacheTransport) cachePath(req *http.Request) string {
	sum := sha1.Sum([]byte(date.Today().String() + " " + req.Method + " " + req.URL.String()))
	return filepath.Join(os.TempDir(), fmt.Sprintf("%x", sum))
}

func (c *cacheTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	path := c.cachePath(req)
	if b, err := os.ReadFile(path); err == nil {
		return http.ReadResponse(bufio.NewReader(bytes.NewReader(b)), req)
	}

	resp, err := c.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%s %s %s", req.Method, req.URL, resp.Status)
	if resp.StatusCode >= 300 {
		// errors are not cached, a later run may succeed
		return resp, nil
	}

	b, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return nil, fmt.Errorf("reading response from %q: %w", req.URL, err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		log.Printf("quote cache write failed: %v", err)
	}
	return resp, nil
}

// NewQuoteClient returns an HTTP client whose responses are cached on disk
// for the day, so repeated report runs do not hammer the quote endpoint.
func NewQuoteClient() *http.Client {
	return &http.Client{Transport: &cacheTransport{next: http.DefaultTransport}}
}

// jwget fetches addr and decodes the JSON response body into jobj.
func jwget(client *http.Client, addr string, jobj any) error {
	resp, err := client.Get(addr)
	if err != nil {
		return fmt.Errorf("fetching %q: %w", addr, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("fetching %q: unexpected status %s", addr, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(jobj); err != nil {
		return fmt.Errorf("decoding %q: %w", addr, err)
	}
	return nil
}

// FetchQuote fetches addr and extracts the value at the JSONPath expression
// path, typically the latest quoted price.
func FetchQuote(client *http.Client, addr, path string) (float64, error) {
	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return 0, err
	}

	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("error evaluating %q on %q: %w", path, addr, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer, or a single answer: keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("value at %q is not a number: %v", path, jval)
	}
	return val, nil
}
