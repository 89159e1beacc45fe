package media

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"NoYaRender/logger"
)

// DecodeRate is the sample rate all audio is decoded to for analysis.
const DecodeRate = 44100

// Decoder loads audio files into Tracks. WAV files are read directly; every
// other format is decoded through ffmpeg.
type Decoder struct {
	ffmpegPath string
}

// NewDecoder creates a Decoder using the given ffmpeg binary.
func NewDecoder(ffmpegPath string) *Decoder {
	return &Decoder{ffmpegPath: ffmpegPath}
}

// Decode loads one audio file as a mono track at DecodeRate.
func (d *Decoder) Decode(path string) (*Track, error) {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		t, err := DecodeWAV(path)
		if err == nil {
			return t, nil
		}
		logger.Warn("wav fast path failed, falling back to ffmpeg",
			logger.String("path", path), logger.ErrorField(err))
	}
	return d.decodeFFmpeg(path)
}

// DecodeAll loads several audio files and concatenates them in order.
func (d *Decoder) DecodeAll(paths []string) (*Track, error) {
	tracks := make([]*Track, 0, len(paths))
	for _, p := range paths {
		t, err := d.Decode(p)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}
	return Concat(tracks...)
}

// decodeFFmpeg asks ffmpeg for mono little-endian float64 PCM on stdout.
func (d *Decoder) decodeFFmpeg(path string) (*Track, error) {
	args := []string{
		"-i", path,
		"-ac", "1",
		"-ar", strconv.Itoa(DecodeRate),
		"-f", "f64le",
		"pipe:1",
	}

	cmd := exec.Command(d.ffmpegPath, args...)
	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg decode failed for %s: %w\nFFmpeg Error: %s", path, err, stderr.String())
	}

	raw := out.Bytes()
	samples := make([]float64, len(raw)/8)
	for i := range samples {
		bits := binary.LittleEndian.Uint64(raw[i*8:])
		samples[i] = math.Float64frombits(bits)
	}
	return NewTrack(samples, DecodeRate)
}

// DecodeWAV reads a WAV file directly, averaging channels down to mono and
// normalizing by the source bit depth.
func DecodeWAV(path string) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read PCM from %s: %w", path, err)
	}

	max := float64(goaudio.IntMaxSignedValue(int(decoder.BitDepth)))
	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}

	samples := make([]float64, len(buf.Data)/channels)
	for i := range samples {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += float64(buf.Data[i*channels+c])
		}
		samples[i] = sum / float64(channels) / max
	}
	return NewTrack(samples, int(decoder.SampleRate))
}

// WriteWAV writes a track as 16-bit mono WAV, used to hand looped audio to
// the encoder.
func WriteWAV(t *Track, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, t.SampleRate, 16, 1, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: t.SampleRate},
		SourceBitDepth: 16,
		Data:           make([]int, len(t.Samples)),
	}
	for i, s := range t.Samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		buf.Data[i] = int(s * 32767)
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write PCM to %s: %w", path, err)
	}
	return enc.Close()
}
