package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"NoYaRender/config"
	"NoYaRender/core/media"
)

var probeCmd = &cobra.Command{
	Use:   "probe <file>...",
	Short: "Show duration and kind of media files",
	Long:  `Probes media files with ffprobe. Handy for planning playlist durations before a render.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		prober := media.NewProber(cfg.FFprobePath)

		total := 0.0
		for _, path := range args {
			dur, err := prober.Duration(path)
			if err != nil {
				return err
			}

			kind := "audio"
			if k, err := prober.Kind(path); err == nil {
				switch k {
				case media.SourceImage:
					kind = "image"
				case media.SourceVideo:
					kind = "video"
				}
			}

			fmt.Printf("%-8s %8.2fs  %s\n", kind, dur, path)
			total += dur
		}

		if len(args) > 1 {
			fmt.Printf("total    %8.2fs (%.2f min)\n", total, total/60)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)
}
