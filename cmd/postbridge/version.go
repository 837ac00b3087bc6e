package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jdelaire/postbridge/internal/httpapi"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of postbridge",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "postbridge %s\n", httpapi.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
