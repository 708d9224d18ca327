// Package cli holds the wiring and the interactive terminal loop behind the
// athena commands.
package cli
