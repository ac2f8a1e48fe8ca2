package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: submit, show, report, whoami, register, login, exit"
	loginRequired = "Please log in to access this page."
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Submit(ctx context.Context) error
	Show(ctx context.Context) error
	Report(ctx context.Context) error
	WhoAmI(ctx context.Context) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop exits on end of input or on "exit" / "quit".
//
//	help            show available commands
//	register        create an account
//	login           authenticate
//	submit          enter marks for every subject
//	show            print the stored marks
//	report          draw average, marks and distribution charts
//	whoami          print the signed-in email
//	exit | quit     leave the program
//
// Errors returned by command handlers are ignored here; handlers report them
// to the user themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "markbook %s> ", statusFn())
		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpLoggedIn)
			} else {
				fmt.Fprintln(w, helpLoggedOut)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "submit", "show", "report", "whoami":
			if !a.isLoggedIn() {
				fmt.Fprintln(w, loginRequired)
				continue
			}
			switch cmd {
			case "submit":
				_ = a.Submit(ctx)
			case "show":
				_ = a.Show(ctx)
			case "report":
				_ = a.Report(ctx)
			case "whoami":
				_ = a.WhoAmI(ctx)
			}

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
