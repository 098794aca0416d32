package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// commandSurface defines the minimal command set the REPL needs. The App
// type satisfies this interface; tests can provide a lightweight stub.
type commandSurface interface {
	isLoggedIn() bool
	Register(ctx context.Context)
	Login(ctx context.Context)
	Logout(ctx context.Context)
	Save(ctx context.Context)
	Add(ctx context.Context)
	List(ctx context.Context)
	Show(ctx context.Context)
	Find(ctx context.Context)
	Update(ctx context.Context)
	Delete(ctx context.Context)
	Export(ctx context.Context)
	Import(ctx context.Context)
	EnableSecondFactor(ctx context.Context)
}

// runREPL reads a command per line and dispatches to a. The loop exits on
// EOF or when the user types "exit" or "quit". Command handlers print their
// own outcomes; the loop stays focused on I/O.
//
// Commands come off the same reader the handlers prompt from, so no input
// is buffered away from them between a command line and its dialog.
func runREPL(ctx context.Context, a commandSurface, reader *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprint(out, "passvault> ")
		line, err := reader.ReadString('\n')
		if err != nil && len(strings.TrimSpace(line)) == 0 {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch cmd := parts[0]; cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(out, "Commands: list, add, show, find, update, delete, save, export, import, enable-2fa, logout, exit")
			} else {
				fmt.Fprintln(out, "Commands: register, login, exit")
			}

		case "register":
			a.Register(ctx)

		case "login":
			a.Login(ctx)

		case "logout":
			requireLogin(a, out, a.Logout, ctx)

		case "save":
			requireLogin(a, out, a.Save, ctx)

		case "add":
			requireLogin(a, out, a.Add, ctx)

		case "list":
			requireLogin(a, out, a.List, ctx)

		case "show":
			requireLogin(a, out, a.Show, ctx)

		case "find":
			requireLogin(a, out, a.Find, ctx)

		case "update":
			requireLogin(a, out, a.Update, ctx)

		case "delete":
			requireLogin(a, out, a.Delete, ctx)

		case "export":
			requireLogin(a, out, a.Export, ctx)

		case "import":
			requireLogin(a, out, a.Import, ctx)

		case "enable-2fa":
			requireLogin(a, out, a.EnableSecondFactor, ctx)

		case "exit", "quit":
			return

		default:
			fmt.Fprintf(out, "Unknown command %q. Type help.\n", cmd)
		}
	}
}

func requireLogin(a commandSurface, out io.Writer, fn func(context.Context), ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Fprintln(out, "Log in first.")
		return
	}
	fn(ctx)
}
