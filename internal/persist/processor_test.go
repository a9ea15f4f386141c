package persist

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"SonicChat/internal/extract"
	"SonicChat/internal/observability/alerting"
)

type failingStore struct{}

func (failingStore) SaveToken(context.Context, string, *extract.Token) error {
	return errors.New("db unreachable")
}

func (failingStore) SaveNFT(context.Context, string, *extract.NFT) error {
	return errors.New("db unreachable")
}

func (failingStore) Close() error { return nil }

type recordingNotifier struct {
	mu     sync.Mutex
	events []alerting.Event
}

func (n *recordingNotifier) Notify(_ context.Context, event alerting.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestProcessorSavesToken(t *testing.T) {
	queue := NewMemoryQueue(8)
	store := NewMemoryStore()
	proc, err := NewProcessor(queue, store, 2)
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = proc.Run(ctx) }()

	req := Request{
		SessionID: "s1",
		Token: &extract.Token{
			Name:        "Rocket Fuel",
			Symbol:      "RKT",
			MintAddress: "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU",
			Metadata:    "{}",
		},
	}
	if err := queue.Publish(ctx, req); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	waitFor(t, func() bool { return len(store.Tokens("s1")) == 1 })
	saved := store.Tokens("s1")[0]
	if saved.Symbol != "RKT" || saved.MintAddress != req.Token.MintAddress {
		t.Fatalf("unexpected saved token: %+v", saved)
	}
}

func TestProcessorSavesNFT(t *testing.T) {
	queue := NewMemoryQueue(8)
	store := NewMemoryStore()
	proc, err := NewProcessor(queue, store, 1)
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = proc.Run(ctx) }()

	req := Request{
		SessionID: "s1",
		NFT: &extract.NFT{
			Name:        "Moon Ape",
			MintAddress: "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU",
			ImageURL:    extract.DefaultNFTImageURL,
			Metadata:    "{}",
		},
	}
	if err := queue.Publish(ctx, req); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	waitFor(t, func() bool { return len(store.NFTs("s1")) == 1 })
	if got := store.NFTs("s1")[0].ImageURL; got != extract.DefaultNFTImageURL {
		t.Fatalf("image url = %q", got)
	}
}

func TestProcessorAlertsOnStoreFailure(t *testing.T) {
	queue := NewMemoryQueue(8)
	notifier := &recordingNotifier{}
	proc, err := NewProcessor(queue, failingStore{}, 1, WithNotifier(notifier))
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = proc.Run(ctx) }()

	req := Request{SessionID: "s1", Token: &extract.Token{Name: "X", Symbol: "XX", MintAddress: "m"}}
	if err := queue.Publish(ctx, req); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	waitFor(t, func() bool { return notifier.count() > 0 })
}

func TestProcessorDiscardsEmptyRequest(t *testing.T) {
	queue := NewMemoryQueue(8)
	store := NewMemoryStore()
	proc, err := NewProcessor(queue, store, 1)
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}
	if err := proc.handle(context.Background(), Request{SessionID: "s1"}); err != nil {
		t.Fatalf("empty request should be discarded, got %v", err)
	}
	if len(store.Tokens("s1")) != 0 || len(store.NFTs("s1")) != 0 {
		t.Fatal("empty request must not write anything")
	}
}
