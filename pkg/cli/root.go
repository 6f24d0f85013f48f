package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/clientmock/pkg/logging"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

type globalFlags struct {
	logLevel  string
	logFormat string
}

func (g *globalFlags) logger(w io.Writer) *slog.Logger {
	return logging.FromFlags(g.logLevel, g.logFormat, w)
}

// NewRootCmd builds the clientmock command tree.
func NewRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "clientmock",
		Short: "Validate and dry-run HTTP client mock fixtures",
		Long: `clientmock loads declarative expectation fixtures (YAML or JSON), checks
them against the fixture schema and answers sample requests with them, the
same way tests using the clientmock package would.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&g.logFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(newValidateCmd(), newMatchCmd(g), newVersionCmd())
	return root
}

// Main runs the command with os.Args and returns the process exit code.
func Main() int {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
