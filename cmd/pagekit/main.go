// Command pagekit renders templates and serves maintenance pages.
//
// Usage:
//
//	pagekit render -template page.html [-data data.yaml]
//	pagekit vars -template page.html
//	pagekit schema
//	pagekit serve -config maintenance.yaml [-addr :8080] [-root ./public] [-watch]
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

const usage = `usage: pagekit <command> [flags]

commands:
  render   render a template file against a YAML or JSON data file
  vars     list the variables a template references
  schema   print the JSON schema for maintenance options files
  serve    serve a site behind the maintenance gate
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var err error
	switch args[0] {
	case "render":
		err = runRender(args[1:], stdout, stderr)
	case "vars":
		err = runVars(args[1:], stdout, stderr)
	case "schema":
		err = runSchema(stdout)
	case "serve":
		err = runServe(args[1:], stderr)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	if err != nil {
		fmt.Fprintf(stderr, "pagekit %s: %v\n", args[0], err)
		return 1
	}
	return 0
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
