package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the minimal command surface the REPL needs. App satisfies
// it; tests provide a stub.
type execIface interface {
	isAuthenticated(ctx context.Context) bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	Launches(ctx context.Context) error
	Book(ctx context.Context, launchID string) error
	Cancel(ctx context.Context, launchID string) error
	Trips(ctx context.Context) error
}

// runREPL reads commands line by line and dispatches to a. The loop ends
// on scanner EOF or "exit"/"quit". Command handlers report their own
// errors to the user; the loop ignores them to stay resilient.
func runREPL(ctx context.Context, a execIface, scanner *bufio.Scanner) {
	for {
		if a.isAuthenticated(ctx) {
			printlnFn("lb (logged in)> ")
		} else {
			printlnFn("lb> ")
		}
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn("Available commands: login, logout, status, launches, book <id>, cancel <id>, trips, exit")

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "status":
			_ = a.Status(ctx)

		case "launches":
			_ = a.Launches(ctx)

		case "book":
			if len(args) == 0 {
				printlnFn("Usage: book <launch-id>")
				continue
			}
			_ = a.Book(ctx, args[0])

		case "cancel":
			if len(args) == 0 {
				printlnFn("Usage: cancel <launch-id>")
				continue
			}
			_ = a.Cancel(ctx, args[0])

		case "trips":
			_ = a.Trips(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
