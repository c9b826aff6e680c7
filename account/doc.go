// Package account talks to the PlatformIO account service through the
// `pio account` CLI and remembers the last username between dialogs.
package account
