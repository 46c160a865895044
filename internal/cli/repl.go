package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/moodkeeper/internal/journal"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL needs. session satisfies it;
// tests provide a stub.
type execIface interface {
	Analyze(ctx context.Context, text string) error
	Write(ctx context.Context, text string, health journal.HealthCorrelates, voice bool) error
	List(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// runREPL reads commands line by line and dispatches them to a.
//
// Commands:
//
//	help              show available commands
//	analyze <text>    analyze text without saving
//	write             read a multi-line entry, analyze and save it
//	(l)ist            list entries
//	show <id>         show one entry
//	delete <id>       delete one entry
//	exit | quit       leave
//
// Command errors are printed and the loop continues. It returns on EOF or
// exit.
func runREPL(ctx context.Context, a execIface, scanner *bufio.Scanner, readEntry func() (string, error)) {
	report := func(err error) {
		if err != nil {
			printlnFn("Error:", err)
		}
	}

	for {
		printlnFn("moodkeeper> ")
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
			printlnFn("Available commands: analyze <text>, write, (l)ist, show <id>, delete <id>, exit")

		case "analyze":
			if len(args) == 0 {
				printlnFn("Usage: analyze <text>")
				continue
			}
			report(a.Analyze(ctx, strings.Join(args, " ")))

		case "write":
			text := strings.Join(args, " ")
			if text == "" {
				var err error
				if text, err = readEntry(); err != nil {
					report(err)
					continue
				}
			}
			report(a.Write(ctx, text, journal.HealthCorrelates{}, false))

		case "l", "list":
			report(a.List(ctx))

		case "show", "delete":
			if len(args) != 1 {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			if cmd == "show" {
				report(a.Show(ctx, args[0]))
			} else {
				report(a.Delete(ctx, args[0]))
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
