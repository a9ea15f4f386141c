package stream

import "testing"

func TestAggregateJoinsAgentChunks(t *testing.T) {
	chunks := []Chunk{
		AgentChunk("Hello"),
		ToolChunk("get_balance", `{"address":"AgN7"}`),
		AgentChunk("World"),
	}
	if got := Aggregate(chunks); got != "Hello\nWorld\n" {
		t.Fatalf("Aggregate = %q, want %q", got, "Hello\nWorld\n")
	}
}

func TestAggregateToolOnlyStreamYieldsEmpty(t *testing.T) {
	chunks := []Chunk{
		ToolChunk("get_balance", "ok"),
		ToolChunk("fetch_token", "ok"),
	}
	if got := Aggregate(chunks); got != "" {
		t.Fatalf("Aggregate = %q, want empty string", got)
	}
}

func TestAggregateEmptyStream(t *testing.T) {
	if got := Aggregate(nil); got != "" {
		t.Fatalf("Aggregate(nil) = %q, want empty string", got)
	}
}
