// Command ptedit submits text to the proofreading service and works
// through the proposed corrections: batch-applied, or reviewed
// interactively one decision at a time.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	charmlog "github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/PerfectTense/pt-client-go/internal/client"
	"github.com/PerfectTense/pt-client-go/internal/config"
	"github.com/PerfectTense/pt-client-go/internal/engine"
	"github.com/PerfectTense/pt-client-go/internal/tui"
)

const version = "0.1.0"

var cli struct {
	Config  string `name:"config" short:"c" help:"Path to config file." type:"path"`
	Verbose bool   `name:"verbose" short:"v" help:"Enable debug logging."`

	Check    CheckCmd    `cmd:"" help:"Submit text and print the corrected result"`
	Review   ReviewCmd   `cmd:"" help:"Review corrections interactively"`
	Usage    UsageCmd    `cmd:"" help:"Show API usage statistics"`
	Validate ValidateCmd `cmd:"" help:"Validate the configured API key"`
	Register RegisterCmd `cmd:"" help:"Register an application and print its app key"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// app carries configuration and logging to the command implementations.
type app struct {
	cfg *config.Config
	log *charmlog.Logger
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("ptedit"),
		kong.Description("Interactive grammar correction client for the Perfect Tense API."),
		kong.UsageOnError(),
	)

	cfg, err := config.Load(cli.Config)
	ctx.FatalIfErrorf(err)

	level := charmlog.InfoLevel
	if parsed, err := charmlog.ParseLevel(cfg.Logging.Level); err == nil {
		level = parsed
	}
	if cli.Verbose {
		level = charmlog.DebugLevel
	}
	logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{Level: level})

	ctx.FatalIfErrorf(ctx.Run(&app{cfg: cfg, log: logger}))
}

// newClient builds the API client, prompting for an API key when none
// is configured and stdin is a terminal.
func (a *app) newClient() (*client.Client, error) {
	if a.cfg.API.Key == "" && term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprint(os.Stderr, "API key: ")
		key, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, fmt.Errorf("reading API key: %w", err)
		}
		a.cfg.API.Key = string(key)
	}
	return client.New(a.cfg, client.WithLogger(a.log))
}

// newSession wraps a submission in a review session, wiring status
// persistence when enabled.
func (a *app) newSession(ctx context.Context, c *client.Client, text string) (*engine.Session, error) {
	doc, err := c.Submit(ctx, text, client.SubmitOptions{})
	if err != nil {
		return nil, err
	}
	opts := []engine.Option{}
	if a.cfg.Interactive.Persist {
		opts = append(opts,
			engine.WithSink(c),
			engine.WithPersistErrorHandler(func(err error) {
				a.log.Warn("status save failed", "error", err)
			}),
		)
	}
	return engine.NewSession(doc, opts...)
}

// readInput reads the text to correct from a file, or stdin when no
// file is given.
func readInput(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// CheckCmd applies all corrections and prints the result.
type CheckCmd struct {
	File            string `arg:"" optional:"" help:"File to correct; stdin when omitted." type:"existingfile"`
	KeepSuggestions bool   `help:"Also apply stylistic suggestions."`
}

func (cmd *CheckCmd) Run(a *app) error {
	text, err := readInput(cmd.File)
	if err != nil {
		return err
	}
	c, err := a.newClient()
	if err != nil {
		return err
	}
	sess, err := a.newSession(context.Background(), c, text)
	if err != nil {
		return err
	}

	skip := a.cfg.Interactive.SkipSuggestions && !cmd.KeepSuggestions
	n := sess.ApplyAll(skip)
	a.log.Debug("applied corrections", "count", n)

	fmt.Println(sess.Text())
	if score, ok := sess.Score(); ok {
		a.log.Info("grammar score", "score", score)
	}
	return nil
}

// ReviewCmd opens the interactive review screen.
type ReviewCmd struct {
	File string `arg:"" optional:"" help:"File to correct; stdin when omitted." type:"existingfile"`
}

func (cmd *ReviewCmd) Run(a *app) error {
	text, err := readInput(cmd.File)
	if err != nil {
		return err
	}
	c, err := a.newClient()
	if err != nil {
		return err
	}
	sess, err := a.newSession(context.Background(), c, text)
	if err != nil {
		return err
	}

	review, err := tui.NewReview(sess, tui.WithSkipSuggestions(a.cfg.Interactive.SkipSuggestions))
	if err != nil {
		return err
	}
	if err := review.Run(); err != nil {
		return err
	}

	fmt.Println(sess.Text())
	return nil
}

// UsageCmd prints API usage statistics.
type UsageCmd struct{}

func (cmd *UsageCmd) Run(a *app) error {
	c, err := a.newClient()
	if err != nil {
		return err
	}
	u, err := c.Usage(context.Background())
	if err != nil {
		return err
	}
	if u.Unlimited {
		fmt.Printf("calls used: %d (unlimited plan)\n", u.APICallsUsed)
		return nil
	}
	fmt.Printf("calls used: %d, remaining: %d\n", u.APICallsUsed, u.APICallsRemaining)
	return nil
}

// ValidateCmd checks the configured API key against the service.
type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(a *app) error {
	c, err := a.newClient()
	if err != nil {
		return err
	}
	ok, err := c.ValidateKey(context.Background())
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("API key rejected")
	}
	fmt.Println("API key valid")
	return nil
}

// RegisterCmd registers an application and prints the issued app key.
type RegisterCmd struct {
	Name        string `arg:"" help:"Application name."`
	Email       string `arg:"" help:"Contact email address."`
	Description string `help:"What the application does."`
	SiteURL     string `help:"Application web site."`
}

func (cmd *RegisterCmd) Run(a *app) error {
	c, err := a.newClient()
	if err != nil {
		return err
	}
	key, err := c.RegisterApp(context.Background(), client.AppRegistration{
		Name:        cmd.Name,
		Email:       cmd.Email,
		Description: cmd.Description,
		SiteURL:     cmd.SiteURL,
	})
	if err != nil {
		return err
	}
	fmt.Println(key)
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (cmd *VersionCmd) Run(_ *app) error {
	fmt.Printf("ptedit %s\n", version)
	return nil
}
