package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/oshokin/timedeck/internal/service/shell"
)

func newShellCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run commands interactively over one connection.",
		Long: `Opens a prompt that accepts the same commands as timedeck-ctl, one per line,
e.g. "timer preset 5m" or "alarm add 07:30 --label 'Wake Up'".
Type "help" for the command list and "exit" to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Connect up front so a bad address fails before the prompt opens.
			if _, err := s.connect(cmd.Context()); err != nil {
				return err
			}

			sh, err := shell.New(lineExecutor(s))
			if err != nil {
				return err
			}

			return sh.Run(cmd.Context())
		},
	}
}

// lineExecutor runs one shell line through a fresh command tree that
// shares the session's connection.
func lineExecutor(s *session) shell.Executor {
	return func(ctx context.Context, args []string, out io.Writer) error {
		root := &cobra.Command{
			Use:           "timedeck",
			SilenceUsage:  true,
			SilenceErrors: true,
		}

		addCommands(root, s)
		root.SetArgs(args)
		root.SetOut(out)
		root.SetErr(out)

		return root.ExecuteContext(ctx)
	}
}
