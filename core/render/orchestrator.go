package render

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"NoYaRender/config"
	"NoYaRender/core/clip"
	"NoYaRender/core/lyrics"
	"NoYaRender/core/media"
	"NoYaRender/core/spectrum"
	"NoYaRender/core/text"
	"NoYaRender/logger"
)

// Options is the configuration surface for one render. Immutable for the
// duration of the invocation.
type Options struct {
	AudioPaths      []string // played in order, then looped as one track
	Background      string   // still image or video, resolved by probing
	SubtitlePath    string   // optional
	LogoPath        string   // optional
	Resolution      string   // preset name: 720p, 1080p, 2K, 4K
	DurationMinutes float64
	BarColor        color.RGBA
	Processor       string // hardware profile choice
	OutPath         string
	BeatZoom        bool
}

// frameEncoder writes a composite clip to the output container. Satisfied by
// *Encoder.
type frameEncoder interface {
	Encode(job EncodeJob, progress ProgressFunc) error
}

// sourceProber resolves what kind of media a background file is. Satisfied by
// *media.Prober.
type sourceProber interface {
	Kind(path string) (media.SourceKind, error)
}

// Orchestrator wires decoding, frame synthesis, compositing, and encoding.
// The media toolchain location comes in through explicit configuration so
// renders with different toolchains can coexist in one process.
type Orchestrator struct {
	cfg      *config.Config
	profiles *config.ProfileTable
	decoder  *media.Decoder
	prober   sourceProber
	encoder  frameEncoder
}

// New builds an Orchestrator from application config and a profile table.
func New(cfg *config.Config, profiles *config.ProfileTable) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		profiles: profiles,
		decoder:  media.NewDecoder(cfg.FFmpegPath),
		prober:   media.NewProber(cfg.FFprobePath),
		encoder:  NewEncoder(cfg.FFmpegPath),
	}
}

// Render runs one full render synchronously. Configuration errors surface
// before any media I/O; decode and encode errors propagate unchanged. There
// is no partial-success mode.
func (o *Orchestrator) Render(opts Options, progress ProgressFunc) error {
	res, err := ResolvePreset(opts.Resolution)
	if err != nil {
		return err
	}
	profile, err := o.profiles.Lookup(opts.Processor)
	if err != nil {
		return err
	}
	if len(opts.AudioPaths) == 0 {
		return fmt.Errorf("no audio inputs given")
	}

	w, h := res.Width, res.Height
	dur := opts.DurationMinutes * 60

	logger.Info("render starting",
		logger.String("resolution", opts.Resolution),
		logger.Float64("duration", dur),
		logger.String("processor", opts.Processor),
		logger.String("out", opts.OutPath))

	track, err := o.decoder.DecodeAll(opts.AudioPaths)
	if err != nil {
		return err
	}

	audioPath, cleanup, err := o.prepareAudio(track, dur)
	if err != nil {
		return err
	}
	defer cleanup()

	bg, closeBg, err := o.backgroundClip(opts.Background, w, h, dur)
	if err != nil {
		return err
	}
	defer closeBg()

	if opts.BeatZoom {
		bg = clip.Zoomed(bg, w, h, func(t float64) float64 {
			return spectrum.Zoom(t, track)
		})
	}

	layers, err := o.overlayLayers(opts, track, w, h, dur)
	if err != nil {
		return err
	}

	composite := clip.Composite(bg, layers, w, h)

	return o.encoder.Encode(EncodeJob{
		Clip:        composite,
		AudioPath:   audioPath,
		OutPath:     opts.OutPath,
		Width:       w,
		Height:      h,
		FPS:         FPS,
		Duration:    dur,
		Codec:       profile.Codec,
		CodecParams: profile.Params,
	}, progress)
}

// prepareAudio loops the track to the target duration and stages it as a WAV
// file for the encoder.
func (o *Orchestrator) prepareAudio(track *media.Track, dur float64) (string, func(), error) {
	looped := track.Loop(dur)
	path := filepath.Join(o.cfg.TempDir, fmt.Sprintf("noya-audio-%s.wav", uuid.NewString()))
	if err := media.WriteWAV(looped, path); err != nil {
		return "", nil, err
	}
	return path, func() { _ = os.Remove(path) }, nil
}

// backgroundClip resolves the background to a video or still-image clip,
// scaled to the output size and held or looped for the full duration.
func (o *Orchestrator) backgroundClip(path string, w, h int, dur float64) (clip.Clip, func(), error) {
	kind, err := o.prober.Kind(path)
	if err != nil {
		return nil, nil, err
	}

	switch kind {
	case media.SourceVideo:
		src, err := clip.NewVideoSource(o.cfg.FFmpegPath, path, w, h, FPS, dur)
		if err != nil {
			return nil, nil, err
		}
		return src, func() { _ = src.Close() }, nil
	default:
		c, err := clip.NewImageClip(path, w, h, dur)
		if err != nil {
			return nil, nil, err
		}
		return c, func() {}, nil
	}
}

// overlayLayers builds spectrum, lyrics, and logo layers in their fixed
// z-order. Absent optional layers are simply omitted.
func (o *Orchestrator) overlayLayers(opts Options, track *media.Track, w, h int, dur float64) ([]clip.Layer, error) {
	layers := []clip.Layer{
		{
			Source: clip.NewFunc(dur, func(t float64) (*image.RGBA, error) {
				return spectrum.Frame(t, track, w, h, opts.BarColor), nil
			}),
			Pos: clip.Position{H: clip.HCenter, V: clip.Bottom},
		},
	}

	if opts.SubtitlePath != "" {
		cues, err := lyrics.ParseSRT(opts.SubtitlePath)
		if err != nil {
			return nil, err
		}
		fnt, err := text.LoadFont(o.cfg.FontPath)
		if err != nil {
			return nil, err
		}
		layers = append(layers, clip.Layer{
			Source: lyrics.Overlay(cues, w, h, text.NewRenderer(fnt)),
			Pos:    clip.Position{H: clip.HCenter, UseFrac: true, FracY: 0.75},
		})
	}

	if opts.LogoPath != "" {
		img, err := clip.LoadImage(opts.LogoPath)
		if err != nil {
			return nil, err
		}
		logo := clip.ScaleToHeight(img, h/10)
		layers = append(layers, clip.Layer{
			Source: clip.FromImage(logo, dur),
			Pos:    clip.Position{H: clip.Right, V: clip.Top, Margin: 20},
		})
	}
	return layers, nil
}
