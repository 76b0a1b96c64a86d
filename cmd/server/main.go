package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "simplelife",
	Short:        "Serve the SimpleLife app",
	Long:         "Serve index.html and its static assets from a directory, with a /health liveness endpoint.",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runServer,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
