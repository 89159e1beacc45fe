package media

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// SourceKind tags what a background file turned out to be. Resolved once at
// the boundary by probing, not by sniffing file suffixes.
type SourceKind int

const (
	SourceUnknown SourceKind = iota
	SourceImage
	SourceVideo
)

// Prober inspects media files with ffprobe.
type Prober struct {
	ffprobePath string
}

// NewProber creates a Prober using the given ffprobe binary.
func NewProber(ffprobePath string) *Prober {
	return &Prober{ffprobePath: ffprobePath}
}

// ffprobeOutput defines the structure for ffprobe JSON output.
type ffprobeOutput struct {
	Format struct {
		FormatName string `json:"format_name"`
		Duration   string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
	} `json:"streams"`
}

func (p *Prober) probe(inputFile string) (*ffprobeOutput, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=format_name,duration:stream=codec_type,codec_name",
		"-of", "json",
		inputFile,
	}

	cmd := exec.Command(p.ffprobePath, args...)
	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe execution failed for %s: %w\nFFprobe Error: %s", inputFile, err, stderr.String())
	}

	var probeData ffprobeOutput
	if err := json.Unmarshal(out.Bytes(), &probeData); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ffprobe output for %s: %w\nFFprobe Output: %s", inputFile, err, out.String())
	}
	return &probeData, nil
}

// Duration returns the duration of a media file in seconds.
func (p *Prober) Duration(inputFile string) (float64, error) {
	probeData, err := p.probe(inputFile)
	if err != nil {
		return 0, err
	}

	if probeData.Format.Duration == "" {
		return 0, fmt.Errorf("duration not found in ffprobe output for %s", inputFile)
	}

	duration, err := strconv.ParseFloat(probeData.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration %q for %s: %w", probeData.Format.Duration, inputFile, err)
	}
	return duration, nil
}

// Kind resolves whether a background file is a still image or a video.
// ffmpeg demuxes stills through the *_pipe / image2 formats, which is the
// reliable signal; anything else carrying a video stream is a video.
func (p *Prober) Kind(inputFile string) (SourceKind, error) {
	probeData, err := p.probe(inputFile)
	if err != nil {
		return SourceUnknown, err
	}

	format := probeData.Format.FormatName
	if strings.Contains(format, "image2") || strings.HasSuffix(format, "_pipe") {
		return SourceImage, nil
	}

	for _, s := range probeData.Streams {
		if s.CodecType == "video" {
			return SourceVideo, nil
		}
	}
	return SourceUnknown, fmt.Errorf("no video or image stream found in %s", inputFile)
}
