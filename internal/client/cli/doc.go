// Package cli provides the line-oriented notice board console, for scripts
// and terminals where the full-screen UI is not wanted.
//
// It offers the same screens as the TUI as commands: the public board with
// a date filter, admin sign-in, the dashboard, document upload and sign-out.
// Admin commands go through the same route guard as the TUI screens, and a
// background watcher keeps the session current.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
