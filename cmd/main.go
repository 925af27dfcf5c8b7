package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Calendar booking widget and its submission server",
	Long: `calendar ships two halves of the booking flow:

  serve   accepts booking submissions over HTTP and gRPC and stores them
  widget  terminal calendar: pick a day, a time, leave contacts, submit`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, widgetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
