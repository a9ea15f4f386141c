// Package mysql provides the MySQL-backed repositories: session
// messages for the chat store and extracted token/NFT entities for the
// persistence processor. Schemas are created on startup.
package mysql
