package swap

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"SonicChat/internal/market"
)

type failingExecutor struct{}

func (failingExecutor) Execute(context.Context, Quote) (*ExecutionResult, error) {
	return nil, errors.New("simulated rpc failure")
}

func newTestManager() *Manager {
	return NewManager(market.NewStaticSource(1), NewSimulatedExecutor(0))
}

func TestParsePair(t *testing.T) {
	cases := []struct {
		text string
		from string
		to   string
	}{
		{"swap ETH to SOL", "ETH", "SOL"},
		{"please swap BTC for USDC now", "BTC", "USDC"},
		{"ETH for SOL", "ETH", "SOL"},
		{"what a lovely day", "Unknown", "Unknown"},
	}
	for _, tc := range cases {
		from, to := ParsePair(tc.text)
		if from != tc.from || to != tc.to {
			t.Fatalf("ParsePair(%q) = (%s, %s), want (%s, %s)", tc.text, from, to, tc.from, tc.to)
		}
	}
}

func TestProposeStoresSingleQuote(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	quote, err := m.Propose(ctx, "s1", "swap ETH to SOL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Rate != 13.45 {
		t.Fatalf("unexpected rate: %v", quote.Rate)
	}
	pending, ok := m.Pending("s1")
	if !ok || pending.FromToken != "ETH" || pending.ToToken != "SOL" {
		t.Fatalf("unexpected pending quote: %+v ok=%v", pending, ok)
	}
}

func TestProposeSupersedesPendingQuote(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	if _, err := m.Propose(ctx, "s1", "swap ETH to SOL"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.Propose(ctx, "s1", "swap BTC for USDC"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pending, ok := m.Pending("s1")
	if !ok {
		t.Fatalf("expected a pending quote after supersession")
	}
	if pending.FromToken != "BTC" || pending.ToToken != "USDC" {
		t.Fatalf("old pair still pending: %+v", pending)
	}
}

func TestConfirmClearsQuoteAndReturnsResult(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	if _, err := m.Propose(ctx, "s1", "swap ETH to SOL"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	quote, result, err := m.Confirm(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if result.AmountSent != 1.0 {
		t.Fatalf("unexpected amount sent: %v", result.AmountSent)
	}
	if result.AmountReceived != quote.Rate {
		t.Fatalf("amount received %v, want %v", result.AmountReceived, quote.Rate)
	}
	if result.FeePaid != 2.50 {
		t.Fatalf("unexpected fee: %v", result.FeePaid)
	}
	if matched := regexp.MustCompile(`^0x[0-9a-f]{64}$`).MatchString(result.TxHash); !matched {
		t.Fatalf("tx hash not 32-byte hex: %q", result.TxHash)
	}
	if _, ok := m.Pending("s1"); ok {
		t.Fatalf("quote should be cleared after confirm")
	}
}

func TestConfirmWithoutQuote(t *testing.T) {
	m := newTestManager()
	if _, _, err := m.Confirm(context.Background(), "s1"); !errors.Is(err, ErrNoPendingQuote) {
		t.Fatalf("expected ErrNoPendingQuote, got %v", err)
	}
}

func TestExecutionFailureResetsToIdle(t *testing.T) {
	m := NewManager(market.NewStaticSource(1), failingExecutor{})
	ctx := context.Background()

	if _, err := m.Propose(ctx, "s1", "swap ETH to SOL"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := m.Confirm(ctx, "s1"); err == nil {
		t.Fatalf("expected execution error")
	}
	if _, ok := m.Pending("s1"); ok {
		t.Fatalf("failed execution must not leave a pending quote")
	}
}

func TestCancelClearsQuote(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	if _, err := m.Propose(ctx, "s1", "swap ETH to SOL"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	quote, ok := m.Cancel("s1")
	if !ok || quote.FromToken != "ETH" {
		t.Fatalf("unexpected cancel result: %+v ok=%v", quote, ok)
	}
	if _, ok := m.Pending("s1"); ok {
		t.Fatalf("quote should be cleared after cancel")
	}
	if _, ok := m.Cancel("s1"); ok {
		t.Fatalf("second cancel should report no pending quote")
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	if _, err := m.Propose(ctx, "s1", "swap ETH to SOL"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.Pending("s2"); ok {
		t.Fatalf("session s2 must not observe s1's quote")
	}
}
