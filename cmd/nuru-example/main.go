// Command nuru-example is a demo application over the nuru framework:
// a couple of routes dispatched either as a single-shot CLI invocation
// or through the interactive REPL when run with no arguments.
package main

import (
	"context"
	"fmt"
	"os"

	nuru "github.com/nuru-cli/nuru"
	"github.com/nuru-cli/nuru/pkg/nconfig"
	"github.com/nuru-cli/nuru/pkg/route"
	"github.com/nuru-cli/nuru/pkg/term/tcellterm"
)

// version is set at link time via -ldflags "-X main.version=vX.Y.Z".
var version = "dev"

func main() {
	app := nuru.New("nuru-example", version, "example nuru application")

	app.Map("echo {*text}", route.HandlerFunc(func(ctx context.Context, args route.Args) (int, error) {
		words, _ := args.Strings("text")
		fmt.Println(joinWords(words))
		return 0, nil
	}), route.WithDescription("echoes its arguments"), route.AsQuery())

	app.Group("deploy", func(a *nuru.App) {
		a.Map("{service} --tag,-t {tag:string?}",
			route.HandlerFunc(func(ctx context.Context, args route.Args) (int, error) {
				service, _ := args.String("service")
				tag, _ := args.String("tag")
				if tag == "" {
					tag = "latest"
				}
				fmt.Printf("deploying %s:%s\n", service, tag)
				return 0, nil
			}),
			route.WithDescription("deploys a service at an optional tag"),
			route.AsCommand(),
		)
	})

	if len(os.Args) > 1 {
		os.Exit(app.Run(context.Background(), os.Args[1:]))
	}

	runREPL(app)
}

func joinWords(words []string) string {
	out := ""
	for i, w := range words {
		if i > 0 {
			out += " "
		}
		out += w
	}
	return out
}

func runREPL(app *nuru.App) {
	historyPath := ""
	if path, err := nconfig.Locate(); err == nil {
		if cfg, err := nconfig.ReadFilename(path); err == nil && cfg.HistoryFile != "" {
			historyPath = cfg.HistoryFile
		}
	}

	t, err := tcellterm.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer t.Close()

	code, err := app.Serve(context.Background(), nuru.ServeOptions{
		Terminal:    t,
		Prompt:      "nuru> ",
		HistoryPath: historyPath,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(code)
}
