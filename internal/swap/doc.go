// Package swap owns the negotiation lifecycle of token swaps: a swap
// request produces a quote that is held in session memory until the
// user confirms, cancels, or supersedes it with a newer request. At
// most one quote is pending per session, guarded by a per-session
// lock, and execution (simulated in this design) always returns the
// machine to the idle state.
package swap
