package cmd

import (
	"github.com/spf13/cobra"

	"NoYaRender/server"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the render-job server",
	Long:  `Starts the HTTP server that accepts render jobs, reports status, and streams live progress over websockets.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
