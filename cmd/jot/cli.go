package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/jot/internal/config"
	"github.com/hpungsan/jot/internal/errors"
	"github.com/hpungsan/jot/internal/fact"
	"github.com/hpungsan/jot/internal/logger"
	"github.com/hpungsan/jot/internal/ops"
	"github.com/hpungsan/jot/internal/session"
	"github.com/hpungsan/jot/internal/store"
	"github.com/hpungsan/jot/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(mgr *session.Manager, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "jot",
		Usage:   "Session-local fact store",
		Version: Version,
		Commands: []*cli.Command{
			saveCmd(mgr, cfg),
			applyCmd(mgr),
			renderCmd(),
			sessionsCmd(mgr),
			serveCmd(mgr, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// saveCmd creates the save command.
func saveCmd(mgr *session.Manager, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "save",
		Usage:     "Save a fact (text from argument or stdin) and print it as JSON",
		ArgsUsage: "[text]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "session", Aliases: []string{"s"}, Usage: "Session name (default \"default\")"},
			&cli.StringFlag{Name: "id", Usage: "Fact id (generated when omitted)"},
		},
		Action: func(c *cli.Context) error {
			text := c.Args().First()
			if text == "" {
				if !stdinHasData() {
					return outputError(errors.NewInvalidRequest("fact text must be given as an argument or piped via stdin"))
				}
				var err error
				text, err = readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
			}

			output, err := ops.Save(c.Context, mgr, cfg, ops.SaveInput{
				Session: c.String("session"),
				ID:      c.String("id"),
				Text:    text,
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(c, output)
		},
	}
}

// applyResult is the JSON summary printed by the apply command.
type applyResult struct {
	Applied int         `json:"applied"`
	Skipped int         `json:"skipped"`
	Facts   []fact.Fact `json:"facts"`
	Count   int         `json:"count"`
}

// applyCmd creates the apply command. It reads a JSONL action stream from
// stdin, applies each action with the store's silent no-op semantics, and
// prints the final collection.
func applyCmd(mgr *session.Manager) *cli.Command {
	return &cli.Command{
		Name:  "apply",
		Usage: "Apply a JSONL action stream from stdin and print the final collection",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "session", Aliases: []string{"s"}, Usage: "Session name (default \"default\")"},
		},
		Action: func(c *cli.Context) error {
			if !stdinHasData() {
				return outputError(errors.NewInvalidRequest("action stream must be piped via stdin"))
			}

			sess := c.String("session")
			if sess == "" {
				sess = session.DefaultSession
			}
			s := mgr.Get(sess)

			var result applyResult
			scanner := bufio.NewScanner(os.Stdin)
			scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}

				var action store.Action
				if err := json.Unmarshal([]byte(line), &action); err != nil {
					return outputError(errors.NewInvalidRequest(fmt.Sprintf("malformed action line: %v", err)))
				}
				if action.Kind == store.ActionSave && action.FactID == "" {
					id, err := fact.NewID()
					if err != nil {
						return outputError(errors.NewInternal(err))
					}
					action.FactID = id
				}

				if res := s.Apply(c.Context, action); res.Applied {
					result.Applied++
				} else {
					result.Skipped++
				}
			}
			if err := scanner.Err(); err != nil {
				return outputError(errors.NewInternal(err))
			}

			result.Facts = s.Facts()
			result.Count = len(result.Facts)
			return outputJSON(c, result)
		},
	}
}

// renderInput accepts the output shapes of save, list, and refresh.
type renderInput struct {
	Fact  *fact.Fact  `json:"fact"`
	Facts []fact.Fact `json:"facts"`
}

// renderCmd creates the render command. It reads facts as JSON from stdin and
// prints one card line per fact.
func renderCmd() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Render facts from stdin JSON as card lines",
		Action: func(c *cli.Context) error {
			if !stdinHasData() {
				return outputError(errors.NewInvalidRequest("facts JSON must be piped via stdin"))
			}

			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}

			facts, err := decodeFacts(data)
			if err != nil {
				return outputError(errors.NewInvalidRequest(err.Error()))
			}

			for _, f := range facts {
				fmt.Fprintln(c.App.Writer, fact.Card(f))
			}
			return nil
		},
	}
}

// decodeFacts accepts {"facts":[...]}, {"fact":{...}}, or a bare array.
func decodeFacts(data []byte) ([]fact.Fact, error) {
	var envelope renderInput
	if err := json.Unmarshal(data, &envelope); err == nil {
		if envelope.Fact != nil {
			return []fact.Fact{*envelope.Fact}, nil
		}
		if envelope.Facts != nil {
			return envelope.Facts, nil
		}
	}

	var facts []fact.Fact
	if err := json.Unmarshal(data, &facts); err != nil {
		return nil, fmt.Errorf("input is not a fact, fact list, or fact array")
	}
	return facts, nil
}

// sessionsCmd creates the sessions command.
func sessionsCmd(mgr *session.Manager) *cli.Command {
	return &cli.Command{
		Name:  "sessions",
		Usage: "List live sessions",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Page size (default 20, max 100)"},
			&cli.StringFlag{Name: "after", Usage: "Exclusive cursor from a previous page"},
			&cli.StringFlag{Name: "order", Usage: "Sort order: asc|desc"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.SessionList(mgr, ops.SessionListInput{
				Limit: c.Int("limit"),
				After: c.String("after"),
				Order: c.String("order"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(c, output)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(mgr *session.Manager, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the web UI and facts API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Usage: "Bind address (default from config)"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Port (default from config)"},
			&cli.BoolFlag{Name: "json-logs", Usage: "Emit JSON logs instead of pretty logs"},
			&cli.BoolFlag{Name: "debug", Usage: "Enable debug logging"},
		},
		Action: func(c *cli.Context) error {
			bind := cfg.Bind
			if c.IsSet("bind") {
				bind = c.String("bind")
			}
			port := cfg.Port
			if c.IsSet("port") {
				port = c.Int("port")
			}

			log := logger.New(
				logger.WithDebug(c.Bool("debug")),
				logger.WithJSON(c.Bool("json-logs")),
			)

			srv := web.NewServer(mgr, cfg, log, Version, bind, port)
			return web.Run(srv, log)
		},
	}
}

// Helper functions

// outputJSON marshals result to the app writer as JSON.
func outputJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if jErr, ok := err.(*errors.JotError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", jErr.Code, jErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
