package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/seoscan/seoscan/internal/fetch"
)

// stubClient serves canned collaborator responses.
type stubClient struct {
	page    *fetch.Page
	pageErr error
	dns     map[string][]string
	tlsInfo *fetch.TLSInfo
	tlsErr  error
}

func (s *stubClient) Page(_ context.Context, _ string) (*fetch.Page, error) {
	return s.page, s.pageErr
}

func (s *stubClient) DNS(_ context.Context, domain, recordType string) ([]string, error) {
	if recordType != "A" && recordType != "CNAME" && recordType != "TXT" {
		return nil, fetch.ErrUnsupportedRecordType
	}
	if records, ok := s.dns[domain+"/"+recordType]; ok {
		return records, nil
	}
	return []string{}, nil
}

func (s *stubClient) TLS(_ context.Context, _ string) (*fetch.TLSInfo, error) {
	return s.tlsInfo, s.tlsErr
}

func newTestServer(client fetch.Client) *httptest.Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return httptest.NewServer(New(client, WithServerLogger(logger)).Handler())
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode
}

func TestHandleFetch(t *testing.T) {
	t.Parallel()

	t.Run("proxies a page", func(t *testing.T) {
		t.Parallel()

		client := &stubClient{page: &fetch.Page{
			Contents:    "<html><title>hi</title></html>",
			Headers:     map[string]string{"content-type": "text/html"},
			StatusCode:  200,
			ContentType: "text/html",
		}}
		ts := newTestServer(client)
		defer ts.Close()

		var body struct {
			Contents string            `json:"contents"`
			Headers  map[string]string `json:"headers"`
			Status   struct {
				URL      string `json:"url"`
				HTTPCode int    `json:"http_code"`
			} `json:"status"`
		}
		code := getJSON(t, ts.URL+"/api/fetch?url=https://example.com", &body)

		if code != http.StatusOK {
			t.Fatalf("status = %d, want 200", code)
		}
		if body.Contents != "<html><title>hi</title></html>" {
			t.Errorf("contents = %q, want the page body", body.Contents)
		}
		if body.Headers["content-type"] != "text/html" {
			t.Errorf("headers[content-type] = %q, want text/html", body.Headers["content-type"])
		}
		if body.Status.URL != "https://example.com" || body.Status.HTTPCode != 200 {
			t.Errorf("status block = %+v, want the requested URL and code 200", body.Status)
		}
	})

	t.Run("rejects missing url", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(&stubClient{})
		defer ts.Close()

		var body map[string]string
		if code := getJSON(t, ts.URL+"/api/fetch", &body); code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", code)
		}
		if body["error"] == "" {
			t.Error("expected an error message")
		}
	})

	t.Run("rejects non-http scheme", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(&stubClient{})
		defer ts.Close()

		var body map[string]string
		if code := getJSON(t, ts.URL+"/api/fetch?url=ftp://example.com", &body); code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", code)
		}
	})

	t.Run("reports transport failure", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(&stubClient{pageErr: errors.New("connection refused")})
		defer ts.Close()

		var body map[string]string
		if code := getJSON(t, ts.URL+"/api/fetch?url=https://down.example", &body); code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", code)
		}
		if body["details"] != "connection refused" {
			t.Errorf("details = %q, want the transport error", body["details"])
		}
	})
}

func TestHandleDNS(t *testing.T) {
	t.Parallel()

	t.Run("resolves records", func(t *testing.T) {
		t.Parallel()

		client := &stubClient{dns: map[string][]string{
			"example.com/TXT": {"v=spf1 include:_spf.example.com ~all"},
		}}
		ts := newTestServer(client)
		defer ts.Close()

		var body struct {
			Domain  string   `json:"domain"`
			Type    string   `json:"type"`
			Records []string `json:"records"`
		}
		code := getJSON(t, ts.URL+"/api/dns?domain=example.com&type=TXT", &body)

		if code != http.StatusOK {
			t.Fatalf("status = %d, want 200", code)
		}
		if body.Domain != "example.com" || body.Type != "TXT" {
			t.Errorf("echo fields = %q/%q, want example.com/TXT", body.Domain, body.Type)
		}
		if len(body.Records) != 1 {
			t.Fatalf("records = %v, want one TXT record", body.Records)
		}
	})

	t.Run("empty result is not an error", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(&stubClient{})
		defer ts.Close()

		var body struct {
			Records []string `json:"records"`
		}
		code := getJSON(t, ts.URL+"/api/dns?domain=nodata.example&type=TXT", &body)

		if code != http.StatusOK {
			t.Fatalf("status = %d, want 200 for empty results", code)
		}
		if body.Records == nil || len(body.Records) != 0 {
			t.Errorf("records = %v, want an empty array", body.Records)
		}
	})

	t.Run("defaults to A records", func(t *testing.T) {
		t.Parallel()

		client := &stubClient{dns: map[string][]string{
			"example.com/A": {"93.184.216.34"},
		}}
		ts := newTestServer(client)
		defer ts.Close()

		var body struct {
			Type    string   `json:"type"`
			Records []string `json:"records"`
		}
		if code := getJSON(t, ts.URL+"/api/dns?domain=example.com", &body); code != http.StatusOK {
			t.Fatalf("status = %d, want 200", code)
		}
		if body.Type != "A" {
			t.Errorf("type = %q, want the A default", body.Type)
		}
		if len(body.Records) != 1 {
			t.Errorf("records = %v, want the A record", body.Records)
		}
	})

	t.Run("rejects unsupported record type", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(&stubClient{})
		defer ts.Close()

		var body map[string]string
		if code := getJSON(t, ts.URL+"/api/dns?domain=example.com&type=MX", &body); code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", code)
		}
	})

	t.Run("rejects missing domain", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(&stubClient{})
		defer ts.Close()

		var body map[string]string
		if code := getJSON(t, ts.URL+"/api/dns", &body); code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", code)
		}
	})
}

func TestHandleSSL(t *testing.T) {
	t.Parallel()

	t.Run("reports certificate details", func(t *testing.T) {
		t.Parallel()

		client := &stubClient{tlsInfo: &fetch.TLSInfo{
			Authorized:     true,
			Subject:        "example.com",
			Issuer:         "Example CA",
			NotBefore:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			NotAfter:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			DNSNames:       []string{"example.com", "www.example.com"},
			Fingerprint256: "AA:BB",
			Protocol:       "TLSv1.3",
		}}
		ts := newTestServer(client)
		defer ts.Close()

		var body struct {
			Authorized bool `json:"authorized"`
			Cert       struct {
				Subject        string `json:"subject"`
				ValidFrom      string `json:"valid_from"`
				SubjectAltName string `json:"subjectaltname"`
			} `json:"cert"`
			Protocol string `json:"protocol"`
		}
		code := getJSON(t, ts.URL+"/api/ssl?url=https://example.com", &body)

		if code != http.StatusOK {
			t.Fatalf("status = %d, want 200", code)
		}
		if !body.Authorized {
			t.Error("authorized = false, want true")
		}
		if body.Cert.Subject != "example.com" {
			t.Errorf("subject = %q, want example.com", body.Cert.Subject)
		}
		if body.Cert.ValidFrom != "Jan  1 00:00:00 2025 UTC" {
			t.Errorf("valid_from = %q, want Node-style date", body.Cert.ValidFrom)
		}
		if body.Cert.SubjectAltName != "DNS:example.com, DNS:www.example.com" {
			t.Errorf("subjectaltname = %q, want DNS-prefixed list", body.Cert.SubjectAltName)
		}
		if body.Protocol != "TLSv1.3" {
			t.Errorf("protocol = %q, want TLSv1.3", body.Protocol)
		}
	})

	t.Run("reports probe failure", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(&stubClient{tlsErr: errors.New("handshake timeout")})
		defer ts.Close()

		var body map[string]string
		if code := getJSON(t, ts.URL+"/api/ssl?url=https://slow.example", &body); code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", code)
		}
		if body["details"] != "handshake timeout" {
			t.Errorf("details = %q, want the probe error", body["details"])
		}
	})

	t.Run("rejects missing url", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(&stubClient{})
		defer ts.Close()

		var body map[string]string
		if code := getJSON(t, ts.URL+"/api/ssl", &body); code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", code)
		}
	})
}

func TestHandleHealth(t *testing.T) {
	t.Parallel()

	ts := newTestServer(&stubClient{})
	defer ts.Close()

	var body map[string]string
	if code := getJSON(t, ts.URL+"/api/health", &body); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
	if body["version"] != Version {
		t.Errorf("version = %q, want %q", body["version"], Version)
	}
}

func TestHandleRoot(t *testing.T) {
	t.Parallel()

	ts := newTestServer(&stubClient{})
	defer ts.Close()

	var body struct {
		Endpoints map[string]string `json:"endpoints"`
	}
	if code := getJSON(t, ts.URL+"/", &body); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if _, ok := body.Endpoints["/api/fetch"]; !ok {
		t.Error("expected endpoint listing to include /api/fetch")
	}
}
