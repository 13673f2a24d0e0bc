// Package client implements the interactive client application runtime.
//
// It wires the command loop, the queue and sync services, and the background
// sync job into a single process lifecycle: restore or establish a session,
// recover the modifier queue, run an initial sync, then hand control to the
// terminal loop while syncing periodically in the background.
package client
