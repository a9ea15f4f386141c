// Package api exposes the REST surface of the chat service: session
// messages, swap confirmation and cancellation, and spot price lookups.
package api
