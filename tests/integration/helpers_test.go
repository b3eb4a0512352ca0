package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

// baseURL returns the backend base URL, overridable for non-local runs.
func baseURL() string {
	if v := os.Getenv("STOREFRONT_BASE_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

// skipIfNotRunning performs a quick health check against the backend.
// If it is unreachable, the test is skipped (not failed).
func skipIfNotRunning(t *testing.T) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL() + "/health/live")
	if err != nil {
		t.Skipf("storefront backend not reachable at %s: %v", baseURL(), err)
	}
	resp.Body.Close()
}

// httpGet performs an HTTP GET request and returns the status code and decoded JSON body.
func httpGet(t *testing.T, path string) (int, map[string]interface{}) {
	t.Helper()
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(baseURL() + path)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	defer resp.Body.Close()
	return resp.StatusCode, decodeBody(t, resp.Body)
}

// httpPost performs an HTTP POST with a JSON body and returns the status
// code and decoded JSON response.
func httpPost(t *testing.T, path string, body any) (int, map[string]interface{}) {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body for POST %s: %v", path, err)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Post(baseURL()+path, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	defer resp.Body.Close()
	return resp.StatusCode, decodeBody(t, resp.Body)
}

// httpDo performs a request with an arbitrary method and no body.
func httpDo(t *testing.T, method, path string) int {
	t.Helper()
	req, err := http.NewRequest(method, baseURL()+path, nil)
	if err != nil {
		t.Fatalf("creating %s request for %s failed: %v", method, path, err)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

// decodeBody decodes a JSON response body into a generic map.
func decodeBody(t *testing.T, r io.Reader) map[string]interface{} {
	t.Helper()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if len(data) == 0 {
		return nil
	}
	var body map[string]interface{}
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("decode response body %q: %v", string(data), err)
	}
	return body
}

// requireStatus fails the test when the status does not match.
func requireStatus(t *testing.T, want, got int, context string) {
	t.Helper()
	if want != got {
		t.Fatalf("%s: expected status %d, got %d", context, want, got)
	}
}
