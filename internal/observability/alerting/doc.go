// Package alerting delivers operational alert events to one or more
// notification channels. The default channel writes structured log
// entries; additional channels fan out through Fanout.
package alerting
