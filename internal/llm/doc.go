// Package llm defines the interface boundary between the chat pipeline
// and the conversational agent backing the general-chat path.
package llm
