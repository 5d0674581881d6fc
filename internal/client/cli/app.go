package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/catsocial/internal/client/client"
	"github.com/dmitrijs2005/catsocial/internal/client/config"
)

// Dialer opens a client for the given server address.
type Dialer func(addr string) (client.Client, error)

type App struct {
	config *config.Config
	dial   Dialer
	client client.Client
	tokens *TokenStore

	reader *bufio.Reader
	out    io.Writer

	jsonOutput bool
}

func NewApp(c *config.Config) *App {
	dial := func(addr string) (client.Client, error) {
		return client.NewGRPCClient(addr)
	}
	return newApp(c, dial, os.Stdin, os.Stdout)
}

func newApp(c *config.Config, dial Dialer, in io.Reader, out io.Writer) *App {
	return &App{config: c, dial: dial, reader: bufio.NewReader(in), out: out}
}

// Run executes the command line args.
func (a *App) Run(ctx context.Context, args []string) error {
	defer a.close()

	cmd := a.NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(a.out)
	cmd.SetErr(a.out)
	return cmd.ExecuteContext(ctx)
}

// connect dials the server and restores the stored session token.
func (a *App) connect() error {
	a.tokens = NewTokenStore(a.config.TokenFile)

	c, err := a.dial(a.config.ServerEndpointAddr)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", a.config.ServerEndpointAddr, err)
	}
	a.client = c

	token, err := a.tokens.Load()
	if err != nil {
		return err
	}
	a.client.SetToken(token)
	return nil
}

func (a *App) close() {
	if a.client != nil {
		_ = a.client.Close()
	}
}

func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

// saveSession stores token and uses it for the rest of the invocation.
func (a *App) saveSession(token string) error {
	a.client.SetToken(token)
	return a.tokens.Save(token)
}

func (a *App) printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(a.out, string(b))
	return err
}
