package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Notices(ctx context.Context, args []string) error
	Login(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Upload(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the notice board console.
//
// It reads a line from r, parses the first token as the command, and
// dispatches to methods on 'a'. Handlers that prompt read their answers from
// the same r. The loop exits at end of input or when the user types "exit"
// or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help                      show available commands
//	  - (n)otices [date|all]      show the public board, optionally by day
//	  - exit | quit               leave the program
//
//	Signed out:
//	  - login                     sign in as an admin
//
//	Signed in:
//	  - dashboard                 show the admin profile
//	  - upload                    upload a document
//	  - logout                    sign out
//
// Admin commands are still dispatched when signed out; the route guard in
// the handler turns the viewer away. Handler errors are reported by the
// handlers themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, r *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("nb %s > ", statusFn()))
		line, err := readLine(r)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (n)otices [date|all], dashboard, upload, logout, exit")
			} else {
				printlnFn("Available commands: (n)otices [date|all], login, exit")
			}

		case "n", "notices":
			if len(args) > 1 {
				printlnFn("Usage: notices [YYYY-MM-DD|all]")
				continue
			}
			_ = a.Notices(ctx, args)

		case "login":
			_ = a.Login(ctx)

		case "dashboard":
			_ = a.Dashboard(ctx)

		case "upload":
			_ = a.Upload(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
