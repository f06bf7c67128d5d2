package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

const (
	helpSignedOut = "Comandos: login, help, exit"
	helpSignedIn  = "Comandos: whoami, productos [página] [campo=valor...], facturas [página] [campo=valor...], " +
		"subir <archivo|carpeta>..., exportar <productos|facturas> [destino], logout, help, exit"
)

// execIface is the command surface the REPL drives. App implements it; tests
// use a stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Products(ctx context.Context, args []string) error
	Invoices(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
}

// runREPL reads commands from scanner until EOF, "exit" or "quit" and
// dispatches them to a. Command errors are printed and the loop goes on.
//
// Signed out, only login is accepted; the other commands ask for it first.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, w io.Writer) {
	for {
		fmt.Fprintf(w, "factorg%s> ", statusFn())
		if !scanner.Scan() {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		var err error
		switch cmd {
		case "help", "?":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpSignedIn)
			} else {
				fmt.Fprintln(w, helpSignedOut)
			}
			continue

		case "exit", "quit":
			fmt.Fprintln(w, "¡Hasta luego!")
			return

		case "login":
			err = a.Login(ctx)
			report(w, err)
			continue
		}

		if !a.isLoggedIn() {
			if isKnown(cmd) {
				fmt.Fprintln(w, "Inicia sesión primero (login).")
			} else {
				fmt.Fprintln(w, "Comando desconocido:", cmd)
			}
			continue
		}

		switch cmd {
		case "logout":
			err = a.Logout(ctx)
		case "whoami":
			err = a.Whoami(ctx)
		case "productos", "p":
			err = a.Products(ctx, args)
		case "facturas", "f":
			err = a.Invoices(ctx, args)
		case "subir", "upload":
			err = a.Upload(ctx, args)
		case "exportar", "export":
			err = a.Export(ctx, args)
		default:
			fmt.Fprintln(w, "Comando desconocido:", cmd)
		}
		report(w, err)
	}
}

func isKnown(cmd string) bool {
	switch cmd {
	case "logout", "whoami", "productos", "p", "facturas", "f", "subir", "upload", "exportar", "export":
		return true
	}
	return false
}

func report(w io.Writer, err error) {
	if err != nil {
		fmt.Fprintln(w, "Error:", err)
	}
}
