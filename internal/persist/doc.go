// Package persist moves extracted entities from the chat pipeline into
// durable storage. Producers publish requests onto a queue (in-memory,
// Redis list, or RabbitMQ), and the Processor consumes them with a
// worker pool that writes through the Store interface.
package persist
