package render

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"NoYaRender/core/clip"
	"NoYaRender/logger"
)

// ProgressFunc receives encode progress as a percentage in [0, 100].
type ProgressFunc func(percent float64)

// Encoder writes composite clips to a video file through ffmpeg. Frames are
// synthesized one at a time and piped as raw rgb24 into ffmpeg's stdin while
// the audio track is muxed in from disk.
type Encoder struct {
	ffmpegPath string
}

// NewEncoder creates an Encoder using the given ffmpeg binary.
func NewEncoder(ffmpegPath string) *Encoder {
	return &Encoder{ffmpegPath: ffmpegPath}
}

// EncodeJob describes one encode invocation.
type EncodeJob struct {
	Clip        clip.Clip
	AudioPath   string // audio already looped to Duration
	OutPath     string
	Width       int
	Height      int
	FPS         int
	Duration    float64
	Codec       string
	CodecParams []string
}

// Encode runs the job synchronously. The progress callback, if non-nil, is
// invoked zero or more times before Encode returns. Failures are not retried;
// the error carries ffmpeg's stderr.
func (e *Encoder) Encode(job EncodeJob, progress ProgressFunc) error {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgb24",
		"-video_size", fmt.Sprintf("%dx%d", job.Width, job.Height),
		"-framerate", strconv.Itoa(job.FPS),
		"-i", "pipe:0",
		"-i", job.AudioPath,
		"-c:v", job.Codec,
	}
	args = append(args, job.CodecParams...)
	args = append(args,
		"-c:a", "aac",
		"-b:a", "192k",
		"-pix_fmt", "yuv420p",
		"-t", strconv.FormatFloat(job.Duration, 'f', 3, 64),
		"-progress", "pipe:1",
		"-nostats",
		job.OutPath,
	)

	cmd := exec.Command(e.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to open ffmpeg stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to open ffmpeg stdout: %w", err)
	}

	logger.Info("starting encode",
		logger.String("out", job.OutPath),
		logger.String("codec", job.Codec),
		logger.Float64("duration", job.Duration))
	logger.Debug("ffmpeg args", logger.String("args", strings.Join(args, " ")))

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	go e.readProgress(stdout, job.Duration, progress)

	writeErr := e.writeFrames(stdin, job)
	stdin.Close()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg encode failed for %s: %w\nFFmpeg Error: %s", job.OutPath, err, stderr.String())
	}
	if writeErr != nil {
		return fmt.Errorf("frame synthesis failed: %w", writeErr)
	}

	if progress != nil {
		progress(100)
	}
	logger.Info("encode complete", logger.String("out", job.OutPath))
	return nil
}

// writeFrames samples the clip at the fixed frame rate and streams rgb24
// bytes to ffmpeg.
func (e *Encoder) writeFrames(stdin io.Writer, job EncodeJob) error {
	total := int(job.Duration * float64(job.FPS))
	raw := make([]byte, job.Width*job.Height*3)

	for i := 0; i < total; i++ {
		t := float64(i) / float64(job.FPS)
		frame, err := job.Clip.Frame(t)
		if err != nil {
			return err
		}
		if frame == nil {
			// Clips may yield no frame; emit black. The buffer is reused, so
			// clear it explicitly.
			for j := range raw {
				raw[j] = 0
			}
		} else {
			packRGB(frame, raw)
		}
		if _, err := stdin.Write(raw); err != nil {
			// ffmpeg closing the pipe early; its stderr explains why.
			return err
		}
	}
	return nil
}

// packRGB strips the alpha channel out of an RGBA frame.
func packRGB(frame *image.RGBA, dst []byte) {
	n := len(dst) / 3
	for i := 0; i < n; i++ {
		dst[i*3] = frame.Pix[i*4]
		dst[i*3+1] = frame.Pix[i*4+1]
		dst[i*3+2] = frame.Pix[i*4+2]
	}
}

// readProgress parses ffmpeg -progress key=value output into percentages.
func (e *Encoder) readProgress(r io.Reader, dur float64, progress ProgressFunc) {
	scanner := bufio.NewScanner(bufio.NewReader(r))
	for scanner.Scan() {
		line := scanner.Text()
		value, ok := strings.CutPrefix(line, "out_time_us=")
		if !ok {
			continue
		}
		us, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil || dur <= 0 {
			continue
		}
		pct := float64(us) / 1e6 / dur * 100
		if pct > 100 {
			pct = 100
		}
		if progress != nil {
			progress(pct)
		}
	}
}
