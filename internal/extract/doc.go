// Package extract performs best-effort detection of side-effect-worthy
// entities (newly created tokens and NFTs) inside unstructured agent
// replies. Detection is template based: a token needs a name, a symbol
// and a mint address to be emitted at all, an NFT needs a name and a
// mint address. Partial matches are dropped silently and unexpected
// phrasings are accepted as false negatives.
package extract
