package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"SonicChat/internal/chat"
	"SonicChat/internal/market"
	"SonicChat/internal/swap"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	source := market.NewStaticSource(1)
	manager := swap.NewManager(source, swap.NewSimulatedExecutor(time.Millisecond))
	svc, err := chat.NewService(chat.NewMemoryStore(), source, manager, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return NewServer(":0", svc, source, time.Second)
}

func TestSendMessageReturnsAssistantReply(t *testing.T) {
	server := newTestServer(t)
	handler := server.Handler()

	body := strings.NewReader(`{"message": "what is the price of SOL?"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/s1/messages", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status code: got %d want %d", rec.Code, http.StatusOK)
	}
	var got chat.Message
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Role != chat.RoleAssistant {
		t.Fatalf("unexpected role: %q", got.Role)
	}
	if !strings.Contains(got.Content, "$256.35") {
		t.Fatalf("reply missing price: %q", got.Content)
	}
}

func TestSendMessageValidation(t *testing.T) {
	server := newTestServer(t)
	handler := server.Handler()

	t.Run("empty message", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/s1/messages",
			strings.NewReader(`{"message": "  "}`))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})

	t.Run("invalid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/s1/messages",
			strings.NewReader(`{`))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})
}

func TestListMessages(t *testing.T) {
	server := newTestServer(t)
	handler := server.Handler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/s1/messages",
		strings.NewReader(`{"message": "price of BTC"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("send message failed: %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/sessions/s1/messages", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status code: %d", rec.Code)
	}
	var history []chat.Message
	if err := json.Unmarshal(rec.Body.Bytes(), &history); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
}

func TestSwapConfirmFlow(t *testing.T) {
	server := newTestServer(t)
	handler := server.Handler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/s1/messages",
		strings.NewReader(`{"message": "swap ETH to SOL"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("swap request failed: %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/sessions/s1/swap/confirm", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status code: %d", rec.Code)
	}
	var got chat.Message
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(got.Content, "Swap completed successfully") {
		t.Fatalf("unexpected confirm reply: %q", got.Content)
	}
}

func TestPriceEndpoint(t *testing.T) {
	server := newTestServer(t)
	handler := server.Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/price?symbol=sol", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status code: %d", rec.Code)
	}
	var got struct {
		Symbol string  `json:"symbol"`
		Price  float64 `json:"price"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Symbol != "SOL" || got.Price != 256.35 {
		t.Fatalf("unexpected payload: %+v", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/price", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}
