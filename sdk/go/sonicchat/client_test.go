package sonicchat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendMessageDecodesReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/sessions/s1/messages" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("unexpected body: %v", err)
		}
		if payload.Message != "price of SOL" {
			t.Fatalf("unexpected message: %q", payload.Message)
		}
		_ = json.NewEncoder(w).Encode(Message{
			ID:        "m-1",
			SessionID: "s1",
			Role:      "assistant",
			Content:   "The current price of SOL is $256.35.",
		})
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, srv.Client())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	reply, err := client.SendMessage(context.Background(), "s1", "price of SOL", "")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if reply.Role != "assistant" || reply.ID != "m-1" {
		t.Fatalf("unexpected reply: %+v", reply)
	}
}

func TestGetPriceBuildsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/price" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("symbol"); got != "SOL" {
			t.Fatalf("unexpected symbol: %q", got)
		}
		_ = json.NewEncoder(w).Encode(Price{Symbol: "SOL", Price: 256.35})
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, srv.Client())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	price, err := client.GetPrice(context.Background(), "SOL")
	if err != nil {
		t.Fatalf("GetPrice: %v", err)
	}
	if price.Price != 256.35 {
		t.Fatalf("unexpected price: %+v", price)
	}
}

func TestAPIErrorSurfacesStatusAndMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "symbol is required"})
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, srv.Client())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = client.GetPrice(context.Background(), "")
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Message != "symbol is required" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}
