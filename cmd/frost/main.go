// Command frost is the demo CLI and HTTP server front end for the
// threshold-signing protocol implemented under internal/. It exposes
// keygen, round1, create-package, round2, aggregate, verify and
// demo-basic subcommands plus a serve subcommand that starts the HTTP
// dashboard API, grounded in the luxfi-threshold example's
// cmd/threshold-cli root-command-plus-subcommands layout.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/frostlink/frost/internal/config"
	"github.com/frostlink/frost/internal/logging"
)

func main() {
	cfg := config.Default()

	root := &cobra.Command{
		Use:           "frost",
		Short:         "FROST threshold-signing demo CLI and dashboard server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetLogLevel(cfg.DebugLevel)
		},
	}
	cfg.BindPersistentFlags(root.PersistentFlags())

	root.AddCommand(
		newKeygenCmd(cfg),
		newRound1Cmd(cfg),
		newCreatePackageCmd(cfg),
		newRound2Cmd(cfg),
		newAggregateCmd(cfg),
		newVerifyCmd(cfg),
		newDemoBasicCmd(cfg),
		newServeCmd(cfg),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "frost: %v\n", err)
		os.Exit(1)
	}
}
