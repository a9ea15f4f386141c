// Package market provides the quote source the conversational pipeline
// relies on for token prices and swap rates. The production-shaped
// implementation is a static table with a YAML override file and a
// synthesized fallback, so unknown symbols and pairs never fail the
// caller; a real exchange integration would implement the same Source
// interface.
package market
