package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "noyarender",
	Short: "NoYaRender turns music into spectrum-reactive videos.",
	Long: `NoYaRender composites a background image or video, an FFT-driven
spectrum visualization, optional lyrics, and an optional logo into a single
encoded video, driven by ffmpeg.`,
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
