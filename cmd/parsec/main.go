package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "parsec",
		Short: "A parser combinator playground",
	}

	rootCmd.AddCommand(newEvalCmd())
	rootCmd.AddCommand(newReplCmd())
	rootCmd.AddCommand(newLangCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
