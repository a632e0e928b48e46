package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "searchprobe",
		Short: "Drive a debounced lookup session against a running records API",
		Long: `searchprobe replays keystrokes into a search session the same way a
dashboard field would, and prints every state change. Useful for tuning
debounce intervals and checking that stale answers never win.`,
	}

	rootCmd.AddCommand(typeCmd())
	rootCmd.AddCommand(lookupCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
