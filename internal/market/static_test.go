package market

import (
	"context"
	"testing"
)

func TestStaticSourceKnownPrice(t *testing.T) {
	source := NewStaticSource(1)
	info, err := source.GetPrice(context.Background(), "sol")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Price != 256.35 {
		t.Fatalf("unexpected SOL price: %v", info.Price)
	}
	if info.MarketCap != "$110B" {
		t.Fatalf("unexpected SOL market cap: %s", info.MarketCap)
	}
}

func TestStaticSourceUnknownPriceSynthesized(t *testing.T) {
	source := NewStaticSource(42)
	info, err := source.GetPrice(context.Background(), "XYZABC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Price < 1 || info.Price > 101 {
		t.Fatalf("synthesized price out of range: %v", info.Price)
	}
	if info.Change24h < -5 || info.Change24h > 5 {
		t.Fatalf("synthesized change out of range: %v", info.Change24h)
	}
	if info.MarketCap == "" || info.Volume24h == "" {
		t.Fatalf("synthesized price missing fields: %+v", info)
	}
}

func TestStaticSourceKnownPair(t *testing.T) {
	source := NewStaticSource(1)
	quote, err := source.GetSwapQuote(context.Background(), "ETH", "SOL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Rate != 13.45 {
		t.Fatalf("unexpected ETH/SOL rate: %v", quote.Rate)
	}
	if quote.Route != "ETH → USDC → SOL" {
		t.Fatalf("unexpected route: %s", quote.Route)
	}
}

func TestStaticSourceUnknownPairFallsBack(t *testing.T) {
	source := NewStaticSource(1)
	quote, err := source.GetSwapQuote(context.Background(), "XXX", "YYY")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Rate != 1.0 {
		t.Fatalf("fallback rate should be 1.0, got %v", quote.Rate)
	}
	if quote.Fees != "1.00" || quote.Slippage != 0.1 {
		t.Fatalf("unexpected fallback terms: %+v", quote)
	}
	if quote.Route != "XXX → YYY" {
		t.Fatalf("unexpected fallback route: %s", quote.Route)
	}
}
