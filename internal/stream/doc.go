// Package stream models the chunked output of a tool-augmented agent
// as a finite, replayable sequence and reduces it to a single visible
// response. Tool invocation chunks are logged but contribute nothing
// to the aggregated text.
package stream
