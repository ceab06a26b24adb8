package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/seoscan/seoscan/internal/fetch"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// nodeTimeLayout matches the certificate date format emitted by the
// Node.js TLS API, which existing clients parse.
const nodeTimeLayout = "Jan _2 15:04:05 2006 MST"

// Server serves the proxy API over a fetch.Client.
type Server struct {
	client fetch.Client
	logger *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithServerLogger sets the logger used by the handlers.
func WithServerLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New creates a Server backed by the given client.
func New(client fetch.Client, opts ...Option) *Server {
	s := &Server{
		client: client,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler for the proxy API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/fetch", s.handleFetch)
	mux.HandleFunc("GET /api/ssl", s.handleSSL)
	mux.HandleFunc("GET /api/dns", s.handleDNS)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleRoot)
	return mux
}

// ListenAndServe runs the proxy until the context is canceled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	s.logger.Info("proxy server listening", "addr", addr)
	err := httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// fetchStatus is the status block of a fetch response.
type fetchStatus struct {
	URL          string `json:"url"`
	ContentType  string `json:"content_type"`
	HTTPCode     int    `json:"http_code"`
	ResponseTime string `json:"response_time"`
}

// fetchResponse mirrors the AllOrigins-compatible fetch payload.
type fetchResponse struct {
	Contents string            `json:"contents"`
	Headers  map[string]string `json:"headers"`
	Status   fetchStatus       `json:"status"`
}

// handleFetch proxies a page fetch: GET /api/fetch?url=https://example.com
func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	targetURL := r.URL.Query().Get("url")
	if targetURL == "" {
		s.writeError(w, http.StatusBadRequest, "URL parameter is required",
			"usage", "/api/fetch?url=https://example.com")
		return
	}
	if !strings.HasPrefix(targetURL, "http://") && !strings.HasPrefix(targetURL, "https://") {
		s.writeError(w, http.StatusBadRequest, "URL must start with http:// or https://")
		return
	}

	s.logger.Debug("proxying page fetch", "url", targetURL)

	page, err := s.client.Page(r.Context(), targetURL)
	if err != nil {
		s.logger.Warn("page fetch failed", "url", targetURL, "error", err)
		s.writeError(w, fetchErrorStatus(err), "Failed to fetch website", "details", err.Error())
		return
	}

	responseTime := page.Header("x-response-time")
	if responseTime == "" {
		responseTime = "N/A"
	}

	s.writeJSON(w, http.StatusOK, fetchResponse{
		Contents: page.Contents,
		Headers:  page.Headers,
		Status: fetchStatus{
			URL:          targetURL,
			ContentType:  page.ContentType,
			HTTPCode:     page.StatusCode,
			ResponseTime: responseTime,
		},
	})
}

// fetchErrorStatus maps transport failures onto the status codes the
// original proxy used: 404 for resolution failures, 408 for timeouts,
// 500 otherwise.
func fetchErrorStatus(err error) int {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
		return http.StatusNotFound
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return http.StatusRequestTimeout
	}
	return http.StatusInternalServerError
}

// dnsResponse is the payload of a DNS lookup.
type dnsResponse struct {
	Domain  string   `json:"domain"`
	Type    string   `json:"type"`
	Records []string `json:"records"`
}

// handleDNS performs a DNS lookup: GET /api/dns?domain=example.com&type=TXT
func (s *Server) handleDNS(w http.ResponseWriter, r *http.Request) {
	domain := r.URL.Query().Get("domain")
	if domain == "" {
		s.writeError(w, http.StatusBadRequest, "Domain parameter is required")
		return
	}
	recordType := r.URL.Query().Get("type")
	if recordType == "" {
		recordType = "A"
	}

	s.logger.Debug("proxying dns lookup", "domain", domain, "type", recordType)

	records, err := s.client.DNS(r.Context(), domain, recordType)
	if err != nil {
		if errors.Is(err, fetch.ErrUnsupportedRecordType) {
			s.writeError(w, http.StatusBadRequest, "Unsupported record type. Use A, CNAME, or TXT.")
			return
		}
		s.logger.Warn("dns lookup failed", "domain", domain, "error", err)
		s.writeError(w, http.StatusInternalServerError, "DNS lookup failed", "details", err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, dnsResponse{Domain: domain, Type: recordType, Records: records})
}

// sslCert carries the certificate fields clients consume.
type sslCert struct {
	Subject        string `json:"subject"`
	Issuer         string `json:"issuer"`
	ValidFrom      string `json:"valid_from"`
	ValidTo        string `json:"valid_to"`
	SubjectAltName string `json:"subjectaltname"`
	Fingerprint256 string `json:"fingerprint256"`
}

// sslResponse is the payload of a TLS inspection.
type sslResponse struct {
	Authorized bool    `json:"authorized"`
	Cert       sslCert `json:"cert"`
	Protocol   string  `json:"protocol"`
	Error      string  `json:"error,omitempty"`
}

// handleSSL inspects a TLS certificate: GET /api/ssl?url=https://example.com
func (s *Server) handleSSL(w http.ResponseWriter, r *http.Request) {
	targetURL := r.URL.Query().Get("url")
	if targetURL == "" {
		s.writeError(w, http.StatusBadRequest, "URL required")
		return
	}

	parsed, err := url.Parse(targetURL)
	if err != nil || parsed.Hostname() == "" {
		s.writeError(w, http.StatusBadRequest, "Invalid URL")
		return
	}
	hostname := parsed.Hostname()

	s.logger.Debug("proxying tls inspection", "host", hostname)

	info, err := s.client.TLS(r.Context(), hostname)
	if err != nil {
		s.logger.Warn("tls inspection failed", "host", hostname, "error", err)
		s.writeError(w, http.StatusInternalServerError, "SSL analysis failed", "details", err.Error())
		return
	}

	altNames := make([]string, 0, len(info.DNSNames))
	for _, name := range info.DNSNames {
		altNames = append(altNames, "DNS:"+name)
	}

	s.writeJSON(w, http.StatusOK, sslResponse{
		Authorized: info.Authorized,
		Cert: sslCert{
			Subject:        info.Subject,
			Issuer:         info.Issuer,
			ValidFrom:      info.NotBefore.UTC().Format(nodeTimeLayout),
			ValidTo:        info.NotAfter.UTC().Format(nodeTimeLayout),
			SubjectAltName: strings.Join(altNames, ", "),
			Fingerprint256: info.Fingerprint256,
		},
		Protocol: info.Protocol,
		Error:    info.VerifyError,
	})
}

// handleHealth reports service liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"service":   "seoscan proxy",
		"version":   Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleRoot lists the available endpoints.
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"service": "seoscan proxy",
		"endpoints": map[string]string{
			"/api/fetch":  "Fetch any website (GET with ?url= parameter)",
			"/api/ssl":    "Analyze SSL/TLS certificate (GET with ?url= parameter)",
			"/api/dns":    "Perform DNS lookup (GET with ?domain= and ?type=)",
			"/api/health": "Health check endpoint",
		},
		"example": "/api/fetch?url=https://example.com",
	})
}

// writeJSON serializes a payload with the proper content type.
func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// writeError writes an error payload with optional extra key/value pairs.
func (s *Server) writeError(w http.ResponseWriter, status int, message string, extra ...string) {
	payload := map[string]string{"error": message}
	for i := 0; i+1 < len(extra); i += 2 {
		payload[extra[i]] = extra[i+1]
	}
	s.writeJSON(w, status, payload)
}
