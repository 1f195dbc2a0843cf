package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/samterminal/samclient/internal/client/client"
	"github.com/samterminal/samclient/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. *App
// satisfies it; tests provide a stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	AdminLogin(ctx context.Context) error
	Logout(ctx context.Context) error

	Status(ctx context.Context) error
	Map(ctx context.Context) error
	Inventory(ctx context.Context) error
	Memories(ctx context.Context) error
	Chat(ctx context.Context, text string) error
	Recall(ctx context.Context, memoryID string) error
	Cache(ctx context.Context) error

	Domains(ctx context.Context) error
	AdminLocations(ctx context.Context) error
	Characters(ctx context.Context) error
	Upload(ctx context.Context, path string) error
}

const (
	helpGuest  = "Available commands: login, admin, register, cache, exit"
	helpPlayer = "Available commands: status, map, inventory, memories, chat <text>, recall <id>, cache, " +
		"domains, locations, characters, upload <path>, logout, exit"
)

// runREPL reads one command per line from reader and dispatches it to a.
// It returns on EOF or on "exit" / "quit". A failing command prints its
// error and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("sam (%s)> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
		rest = strings.TrimSpace(rest)
		if cmd == "" {
			continue
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn(helpPlayer)
			} else {
				printlnFn(helpGuest)
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "admin":
			cmdErr = a.AdminLogin(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)

		case "status":
			cmdErr = a.Status(ctx)
		case "map":
			cmdErr = a.Map(ctx)
		case "inventory":
			cmdErr = a.Inventory(ctx)
		case "memories":
			cmdErr = a.Memories(ctx)
		case "chat":
			if rest == "" {
				printlnFn("Usage: chat <text>")
				continue
			}
			cmdErr = a.Chat(ctx, rest)
		case "recall":
			if rest == "" {
				printlnFn("Usage: recall <memory id>")
				continue
			}
			cmdErr = a.Recall(ctx, rest)
		case "cache":
			cmdErr = a.Cache(ctx)

		case "domains":
			cmdErr = a.Domains(ctx)
		case "locations":
			cmdErr = a.AdminLocations(ctx)
		case "characters":
			cmdErr = a.Characters(ctx)
		case "upload":
			if rest == "" {
				printlnFn("Usage: upload <path>")
				continue
			}
			cmdErr = a.Upload(ctx, rest)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", describe(cmdErr))
		}
		if errors.Is(err, io.EOF) {
			return
		}
	}
}

// describe turns a command failure into one line for the terminal.
func describe(err error) string {
	switch {
	case errors.Is(err, common.ErrNotLoggedIn):
		return "not logged in, use 'login' first"
	case errors.Is(err, common.ErrTokenExpired):
		return "session expired, please log in again"
	case errors.Is(err, common.ErrForbidden):
		return "this command needs an admin session, use 'admin'"
	}
	if at, ok := client.ResendNotReady(err); ok && !at.IsZero() {
		return fmt.Sprintf("a code was sent recently, try again %s", humanize.Time(at))
	}
	return client.Describe(err)
}
