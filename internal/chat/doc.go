// Package chat orchestrates the conversational pipeline: it classifies
// each user message, routes it to the price, swap or general handler,
// aggregates the reply, extracts entities for persistence, and appends
// both sides of the exchange to the session message store.
package chat
