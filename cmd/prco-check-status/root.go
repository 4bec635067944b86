package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type checkOptions struct {
	EnvFile      string
	Environment  string
	Server       string
	RequestsFile string
	Verbose      bool
	NoColor      bool
}

var checkCmdRunner = runCheck

func defaultEnvFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, "protected", "prco-check-status-env")
}

func newRootCmd() *cobra.Command {
	opts := checkOptions{}

	cmd := &cobra.Command{
		Use:   "prco-check-status [flags] requests...",
		Short: "Check inspection status with wis or oneguard and download finished reports",
		Long: `Check inspection status with wis or oneguard and download finished reports.

Each request is written as request-id,path-to-download. The path is relative to
the provider's report folder; its parent must already exist and the report is
saved as <leaf>/<leaf>.pdf.`,
		Example: `  prco-check-status -e production -s wis 758317,/a/b 876321,/q/a

  prco-check-status --environment test --server oneguard 758317,/a/b 876321,/q/a

  prco-check-status -s wis --requests-file batch.yaml`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateCheckOptions(opts, args); err != nil {
				return err
			}

			color := !opts.NoColor && isTerminal(cmd.OutOrStdout())
			return checkCmdRunner(cmd.Context(), opts, args, cmd.OutOrStdout(), cmd.ErrOrStderr(), color)
		},
	}

	cmd.Flags().StringVarP(&opts.EnvFile, "config_env_file", "c", defaultEnvFile(), "Location of file containing environment variables")
	cmd.Flags().StringVarP(&opts.Environment, "environment", "e", "test", "Environment to use: test or production")
	cmd.Flags().StringVarP(&opts.Server, "server", "s", "", "Server to call: wis or oneguard")
	cmd.Flags().StringVarP(&opts.RequestsFile, "requests-file", "r", "", "YAML file listing additional requests")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false, "Print the report without colours")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
