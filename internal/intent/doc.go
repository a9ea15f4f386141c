// Package intent classifies raw user utterances into the small set of
// conversational commands the pipeline knows how to route: token price
// lookups, swap requests, and general chat. Classification is keyword
// driven and deliberately forgiving; ambiguity is resolved by a fixed
// priority order rather than surfaced as an error.
package intent
