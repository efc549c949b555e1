// Package cli implements the linkbatch command line: the local extraction
// pipeline plus the commands that talk to the API.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/linkbatch/internal/client"
	"github.com/MrSnakeDoc/linkbatch/internal/domain"
	"github.com/MrSnakeDoc/linkbatch/internal/logger"
	"github.com/MrSnakeDoc/linkbatch/internal/opener"
	"github.com/MrSnakeDoc/linkbatch/internal/version"
)

var errNoURLs = errors.New("no URLs found")

// API is the part of the HTTP client the commands use.
type API interface {
	Health(ctx context.Context) (client.Health, error)
	History(ctx context.Context) ([]domain.HistoryItem, error)
	SaveHistory(ctx context.Context, urls []string, fullText string) (domain.HistoryItem, error)
	ClearHistory(ctx context.Context) error
	CreateShare(ctx context.Context, urls []string) (string, error)
	ResolveShare(ctx context.Context, id string) ([]string, error)
}

// Env carries the IO streams and collaborators of one invocation.
type Env struct {
	In     io.Reader
	Out    io.Writer
	Config *client.Config
	API    API
	Logger logger.Logger

	// Launcher and Pacer default to the system browser and a limiter
	// ticking every Config.OpenInterval.
	Launcher opener.Launcher
	Pacer    opener.Pacer
}

// Execute runs the command line in args.
func Execute(ctx context.Context, env *Env, args []string) error {
	root := NewRootCommand(env)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// NewRootCommand assembles the command tree.
func NewRootCommand(env *Env) *cobra.Command {
	if env.In == nil {
		env.In = os.Stdin
	}
	if env.Out == nil {
		env.Out = os.Stdout
	}
	if env.Logger == nil {
		env.Logger = logger.NewNop()
	}

	root := &cobra.Command{
		Use:   "linkbatch",
		Short: "Extract, clean up, share and open batches of links",
		Long: `linkbatch pulls every http(s):// and www. link out of pasted text.

Input is read from the file given as argument, or from stdin.
Commands that talk to the server use LINKBATCH_API_BASE.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(env.In)
	root.SetOut(env.Out)

	root.AddCommand(
		newExtractCommand(env),
		newDedupeCommand(env),
		newSortCommand(env),
		newEncodeCommand(env),
		newDecodeCommand(env),
		newShareCommand(env),
		newLoadCommand(env),
		newOpenCommand(env),
		newHistoryCommand(env),
		newHealthCommand(env),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				env.println(version.String("linkbatch"))
			},
		},
	)
	return root
}

// readInput returns the content of the file in args, or stdin when args is
// empty or "-".
func readInput(env *Env, args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read %s: %w", args[0], err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(env.In)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func (env *Env) requireAPI() (API, error) {
	if env.API == nil {
		return nil, errors.New("API client is not configured")
	}
	return env.API, nil
}

func (env *Env) println(lines ...string) {
	for _, l := range lines {
		_, _ = fmt.Fprintln(env.Out, l)
	}
}
