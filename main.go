package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sisu-network/lib/log"
	"github.com/spf13/cobra"
)

const (
	programName = "arkeyes"
)

var (
	configFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          programName,
		Short:        "Client for the wallet API of Ark nodes",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env is optional.
			if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
				log.Warn("Cannot load .env file, err = ", err)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to config file")

	rootCmd.AddCommand(
		serveCommand(),
		walletCommand(),
		votesCommand(),
		delegatesCommand(),
		voteIntentCommand(),
		feesCommand(),
		peerConfigCommand(),
		peersCommand(),
		configTemplateCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
