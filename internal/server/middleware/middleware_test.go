package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"healthtrack/backend/internal/platform/httpx"
	"healthtrack/backend/internal/security"
	telemetrydomain "healthtrack/backend/internal/telemetry/domain"
	"healthtrack/backend/internal/telemetry/telemetrytest"
)

func init() { gin.SetMode(gin.TestMode) }

func echoUser(c *gin.Context) {
	userID, _ := httpx.GetUserID(c.Request.Context())
	c.String(http.StatusOK, userID)
}

func TestAuth(t *testing.T) {
	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	token, _, err := tokens.IssueAccess("user-1", "a@example.com")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	r := gin.New()
	r.GET("/p", Auth(tokens), echoUser)

	testCases := []struct {
		name   string
		header string
		want   int
		body   string
	}{
		{"no header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized, ""},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized, ""},
		{"valid", "Bearer " + token, http.StatusOK, "user-1"},
		{"lowercase scheme", "bearer " + token, http.StatusOK, "user-1"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/p", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("status = %d, want %d", w.Code, tc.want)
			}
			if tc.body != "" && w.Body.String() != tc.body {
				t.Errorf("user = %q, want %q", w.Body.String(), tc.body)
			}
		})
	}
}

type auditEntry struct {
	userID, action, resource, metadata, ip string
}

type recordingAuditLogger struct {
	mu      sync.Mutex
	entries []auditEntry
}

func (l *recordingAuditLogger) LogEvent(ctx context.Context, userID, action, resource, metadata string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, auditEntry{userID, action, resource, metadata, ClientIP(ctx)})
}

func TestAudit(t *testing.T) {
	logger := &recordingAuditLogger{}
	r := gin.New()
	r.Use(ClientIPContext(), func(c *gin.Context) {
		c.Request = c.Request.WithContext(httpx.WithUserID(c.Request.Context(), "u1"))
	}, Audit(logger, map[string]bool{"/healthz": true}))
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.DELETE("/v1/measurements/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for _, path := range []string{"/healthz", "/v1/measurements/m1", "/nowhere"} {
		method := http.MethodGet
		if path == "/v1/measurements/m1" {
			method = http.MethodDelete
		}
		req := httptest.NewRequest(method, path, nil)
		req.RemoteAddr = "192.0.2.7:5555"
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	if len(logger.entries) != 1 {
		t.Fatalf("entries = %+v, want one", logger.entries)
	}
	e := logger.entries[0]
	if e.userID != "u1" || e.action != "delete" || e.resource != "measurement" || e.ip != "192.0.2.7" {
		t.Errorf("entry = %+v", e)
	}
	var meta auditMetadata
	if err := json.Unmarshal([]byte(e.metadata), &meta); err != nil || meta.Status != http.StatusNoContent || meta.Path != "/v1/measurements/m1" {
		t.Errorf("metadata = %s (%v)", e.metadata, err)
	}
}

func TestTelemetry(t *testing.T) {
	rec := telemetrytest.NewRecorder()
	r := gin.New()
	r.Use(Telemetry(rec, map[string]bool{"/healthz": true}))
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/v1/goals", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/goals", nil))

	ev := rec.Wait(t, telemetrydomain.EventHTTPRequest)
	var meta httpRequestMetadata
	if err := json.Unmarshal(ev.Metadata, &meta); err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if meta.Route != "/v1/goals" || meta.Status != http.StatusNotFound || meta.Method != http.MethodGet {
		t.Errorf("metadata = %+v", meta)
	}
	if n := len(rec.Events()); n != 1 {
		t.Errorf("events = %d, want 1 (healthz skipped)", n)
	}
}

func TestTracing(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	tp := trace.NewTracerProvider(trace.WithSyncer(exp))
	r := gin.New()
	r.Use(Tracing(tp))
	r.GET("/v1/measurements/:id", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/measurements/m1", nil))

	spans := exp.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	if spans[0].Name != "GET /v1/measurements/:id" {
		t.Errorf("span name = %q", spans[0].Name)
	}
	if spans[0].Status.Code.String() != "Error" {
		t.Errorf("span status = %v, want Error", spans[0].Status.Code)
	}
}

func TestExtractBearer(t *testing.T) {
	testCases := map[string]string{
		"":               "",
		"Bearer":         "",
		"Bearer  abc ":   "abc",
		"BEARER xyz":     "xyz",
		"Token abc":      "",
		"  Bearer q.r.s": "q.r.s",
	}
	for in, want := range testCases {
		if got := extractBearer(in); got != want {
			t.Errorf("extractBearer(%q) = %q, want %q", in, got, want)
		}
	}
}
