package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"NoYaRender/config"
	"NoYaRender/core/render"
	"NoYaRender/logger"
)

var renderFlags struct {
	audio      []string
	background string
	subtitle   string
	logo       string
	resolution string
	duration   float64
	barColor   string
	processor  string
	out        string
	beatZoom   bool
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render one audio-reactive video",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		logger.InitLogger(logger.Config{
			Level:      logger.LogLevel(cfg.LogLevel),
			OutputPath: cfg.LogPath,
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     28,
		})

		barColor, err := render.ParseHexColor(renderFlags.barColor)
		if err != nil {
			return err
		}

		profiles, err := config.LoadProfileTable(cfg.ProfilesPath)
		if err != nil {
			return err
		}

		orchestrator := render.New(cfg, profiles)
		err = orchestrator.Render(render.Options{
			AudioPaths:      renderFlags.audio,
			Background:      renderFlags.background,
			SubtitlePath:    renderFlags.subtitle,
			LogoPath:        renderFlags.logo,
			Resolution:      renderFlags.resolution,
			DurationMinutes: renderFlags.duration,
			BarColor:        barColor,
			Processor:       renderFlags.processor,
			OutPath:         renderFlags.out,
			BeatZoom:        renderFlags.beatZoom,
		}, func(pct float64) {
			fmt.Printf("\rRendering... %5.1f%%", pct)
		})
		fmt.Println()
		return err
	},
}

func init() {
	f := renderCmd.Flags()
	f.StringSliceVarP(&renderFlags.audio, "audio", "a", nil, "audio file(s), concatenated in order (required)")
	f.StringVarP(&renderFlags.background, "background", "b", "", "background image or video (required)")
	f.StringVarP(&renderFlags.subtitle, "subtitle", "s", "", "SRT lyrics file (optional)")
	f.StringVarP(&renderFlags.logo, "logo", "l", "", "logo image (optional)")
	f.StringVarP(&renderFlags.resolution, "res", "r", "1080p", "resolution preset: 720p, 1080p, 2K, 4K")
	f.Float64VarP(&renderFlags.duration, "duration", "d", 1, "output duration in minutes")
	f.StringVarP(&renderFlags.barColor, "color", "c", "#2ECC71", "spectrum bar color (#RRGGBB)")
	f.StringVarP(&renderFlags.processor, "processor", "p", "CPU", `hardware profile: "CPU", "GPU (Nvidia)", "GPU (AMD)"`)
	f.StringVarP(&renderFlags.out, "out", "o", "output.mp4", "output file")
	f.BoolVar(&renderFlags.beatZoom, "beat-zoom", true, "pulse the background with the beat")

	_ = renderCmd.MarkFlagRequired("audio")
	_ = renderCmd.MarkFlagRequired("background")

	rootCmd.AddCommand(renderCmd)
}
