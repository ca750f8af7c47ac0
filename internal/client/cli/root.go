package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// printlnFn and printfFn are the single route for user-facing output.
// Everything the user reads in the terminal goes through them, errors
// included; tests replace them with stubs. The structured logger is for the
// log file only.
var (
	printlnFn = fmt.Println
	printfFn  = fmt.Printf
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	today(ctx context.Context) error
	list(ctx context.Context)
	recent(ctx context.Context)
	remove(ctx context.Context, id string)
	listGroups(ctx context.Context)
	createGroup(ctx context.Context) error
	joinGroup(ctx context.Context) error
	feed(ctx context.Context, groupID string)
	listTags(ctx context.Context)
	addTag(ctx context.Context) error
	tagged(ctx context.Context, tagID string)
	whoami(ctx context.Context)
}

func (a *App) getStatus() string {
	if u := a.auth.CurrentUser(); u != nil {
		return fmt.Sprintf("(%s)", u.Username)
	}
	return ""
}

// Root starts the interactive loop. It blocks until the user exits or
// stdin is closed.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to Rosebud CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// runREPL reads a line from the provided scanner, parses the first token as
// the command, and dispatches to methods on 'a'. Unknown commands are
// reported back to the user. The loop exits on scanner EOF or when the user
// types "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers log
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("rb %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: today, (l)ist, recent, delete <id>, groups, creategroup, join, feed <group-id>, tags, addtag, tagged <tag-id>, whoami, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "today":
			_ = a.today(ctx)

		case "l", "list":
			a.list(ctx)

		case "recent":
			a.recent(ctx)

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <id>")
				continue
			}
			a.remove(ctx, args[0])

		case "groups":
			a.listGroups(ctx)

		case "creategroup":
			_ = a.createGroup(ctx)

		case "join":
			_ = a.joinGroup(ctx)

		case "feed":
			if len(args) == 0 {
				printlnFn("Usage: feed <group-id>")
				continue
			}
			a.feed(ctx, args[0])

		case "tags":
			a.listTags(ctx)

		case "addtag":
			_ = a.addTag(ctx)

		case "tagged":
			if len(args) == 0 {
				printlnFn("Usage: tagged <tag-id>")
				continue
			}
			a.tagged(ctx, args[0])

		case "whoami":
			a.whoami(ctx)

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
