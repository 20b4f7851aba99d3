package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fortunekit/fortune-go/internal/application/services"
	"github.com/fortunekit/fortune-go/internal/domain/entities/fortune"
	"github.com/fortunekit/fortune-go/internal/infrastructure/caching/manager"
	"github.com/fortunekit/fortune-go/internal/infrastructure/observability/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type stubGenerator struct {
	text  string
	err   error
	calls int
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.calls++
	return g.text, g.err
}

type fortuneResponse struct {
	Fortune          string `json:"fortune"`
	SecondsUntilNext int    `json:"secondsUntilNext"`
	Source           string `json:"source"`
	Cached           bool   `json:"cached"`
	Error            string `json:"error"`
}

func newTestRouter(t *testing.T, gen *stubGenerator) (*gin.Engine, *metrics.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cache := manager.NewManager(nil)
	reg := metrics.NewRegistry()
	classicService := services.NewClassicFortuneService(fortune.DefaultCatalog, nil)
	aiService := services.NewAIFortuneService(cache, gen, reg, nil, 26*time.Hour)

	h := NewFortuneHandlers(classicService, aiService, nil, reg)

	r := gin.New()
	r.GET("/api/fortune", h.GetFortune)
	r.POST("/api/fortune-ai", h.PostAIFortune)
	return r, reg
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) fortuneResponse {
	t.Helper()
	var resp fortuneResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return resp
}

func TestGetFortuneClassic(t *testing.T) {
	r, _ := newTestRouter(t, &stubGenerator{})

	req := httptest.NewRequest("GET", "/api/fortune?tz=UTC", nil)
	req.Header.Set("User-Agent", "test-agent")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	resp := decodeResponse(t, rr)
	if resp.Source != "classic" {
		t.Errorf("source = %q, want classic", resp.Source)
	}
	if resp.Fortune == "" {
		t.Error("fortune must not be empty")
	}
	if resp.SecondsUntilNext < 0 || resp.SecondsUntilNext >= 86400 {
		t.Errorf("secondsUntilNext = %d, want value in [0, 86400)", resp.SecondsUntilNext)
	}
}

func TestGetFortuneClassicStablePerDay(t *testing.T) {
	r, _ := newTestRouter(t, &stubGenerator{})

	serve := func() fortuneResponse {
		req := httptest.NewRequest("GET", "/api/fortune?tz=UTC", nil)
		req.Header.Set("User-Agent", "test-agent")
		req.RemoteAddr = "10.1.2.3:4567"
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return decodeResponse(t, rr)
	}

	if first, second := serve(), serve(); first.Fortune != second.Fortune {
		t.Errorf("same client got different fortunes: %q vs %q", first.Fortune, second.Fortune)
	}
}

func TestPostAIFortuneRejectsBadLocalDate(t *testing.T) {
	gen := &stubGenerator{text: "should never be called"}
	r, _ := newTestRouter(t, gen)

	bodies := []string{
		`{}`,
		`{"localDate":"2024/01/01"}`,
		`{"localDate":"abc"}`,
		`{"localDate":""}`,
		`not json at all`,
	}

	for _, body := range bodies {
		req := httptest.NewRequest("POST", "/api/fortune-ai", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rr.Code)
		}
		if resp := decodeResponse(t, rr); resp.Error != "localDate (YYYY-MM-DD) is required" {
			t.Errorf("body %q: error = %q", body, resp.Error)
		}
	}

	if gen.calls != 0 {
		t.Errorf("generator called %d times for invalid requests, want 0", gen.calls)
	}
}

func TestPostAIFortuneGeneratesThenServesCached(t *testing.T) {
	gen := &stubGenerator{text: "Speak warmly.\nTrust grows slowly."}
	r, _ := newTestRouter(t, gen)

	body := `{"localDate":"2024-01-01","lang":"en"}`

	first := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/fortune-ai", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(first, req)

	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d, want 200", first.Code)
	}
	firstResp := decodeResponse(t, first)
	if firstResp.Source != "openai" || firstResp.Cached {
		t.Errorf("first response = %+v, want fresh openai result", firstResp)
	}
	if firstResp.Fortune != "Speak warmly.\nTrust grows slowly." {
		t.Errorf("fortune = %q", firstResp.Fortune)
	}

	var anonCookie *http.Cookie
	for _, cookie := range first.Result().Cookies() {
		if cookie.Name == anonymousIDCookie {
			anonCookie = cookie
		}
	}
	if anonCookie == nil {
		t.Fatal("first response must set the anonymous id cookie")
	}
	if !anonCookie.HttpOnly || anonCookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("cookie flags = %+v, want HttpOnly SameSite=Lax", anonCookie)
	}

	second := httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/api/fortune-ai", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(anonCookie)
	r.ServeHTTP(second, req)

	secondResp := decodeResponse(t, second)
	if secondResp.Source != "cache" || !secondResp.Cached {
		t.Errorf("second response = %+v, want cache hit", secondResp)
	}
	if secondResp.Fortune != firstResp.Fortune {
		t.Errorf("cached fortune %q differs from generated %q", secondResp.Fortune, firstResp.Fortune)
	}
	if gen.calls != 1 {
		t.Errorf("generator called %d times, want 1", gen.calls)
	}
}

func TestPostAIFortuneFallbackOnProviderError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("provider down")}
	r, reg := newTestRouter(t, gen)

	req := httptest.NewRequest("POST", "/api/fortune-ai", strings.NewReader(`{"localDate":"2024-01-01","lang":"en"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 despite provider failure", rr.Code)
	}
	resp := decodeResponse(t, rr)
	if resp.Source != "fallback" {
		t.Errorf("source = %q, want fallback", resp.Source)
	}
	if resp.Fortune == "" {
		t.Error("fallback fortune must not be empty")
	}

	if got := testutil.ToFloat64(reg.FallbackTotal); got != 1 {
		t.Errorf("fallback counter = %v, want 1", got)
	}
}

func TestPostAIFortuneTurkishFallback(t *testing.T) {
	gen := &stubGenerator{err: errors.New("provider down")}
	r, _ := newTestRouter(t, gen)

	req := httptest.NewRequest("POST", "/api/fortune-ai", strings.NewReader(`{"localDate":"2024-01-01","lang":"tr"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	resp := decodeResponse(t, rr)
	if resp.Fortune != fortune.FallbackText("tr") {
		t.Errorf("fortune = %q, want turkish fallback", resp.Fortune)
	}
}

func TestPostAIFortuneEmptyResultIsBadGateway(t *testing.T) {
	gen := &stubGenerator{text: "   \n  "}
	r, _ := newTestRouter(t, gen)

	req := httptest.NewRequest("POST", "/api/fortune-ai", strings.NewReader(`{"localDate":"2024-01-01"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rr.Code)
	}
	if resp := decodeResponse(t, rr); resp.Error != "Empty AI result" {
		t.Errorf("error = %q, want %q", resp.Error, "Empty AI result")
	}
}
