// Package config loads the JSON configuration file and fills in
// defaults for anything the operator leaves unset.
package config
