package clip

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strconv"
)

// VideoSource is a looped background video decoded by ffmpeg into raw rgb24
// frames. Decoding is sequential: frames must be requested at non-decreasing
// timestamps, which is how the encoder samples a composite. Re-requesting the
// current timestamp returns the same frame, so determinism holds for the
// encoder's access pattern.
type VideoSource struct {
	cmd     *exec.Cmd
	stdout  *bufio.Reader
	stderr  bytes.Buffer
	dur     float64
	w, h    int
	fps     int
	current *image.RGBA
	lastIdx int
}

// NewVideoSource starts an ffmpeg decode of path, looped indefinitely, scaled
// to w×h at the given frame rate. Close must be called when done.
func NewVideoSource(ffmpegPath, path string, w, h, fps int, dur float64) (*VideoSource, error) {
	args := []string{
		"-stream_loop", "-1",
		"-i", path,
		"-vf", fmt.Sprintf("scale=%d:%d", w, h),
		"-r", strconv.Itoa(fps),
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"pipe:1",
	}

	cmd := exec.Command(ffmpegPath, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open ffmpeg stdout: %w", err)
	}

	v := &VideoSource{
		cmd:     cmd,
		stdout:  bufio.NewReaderSize(stdout, w*h*3),
		dur:     dur,
		w:       w,
		h:       h,
		fps:     fps,
		lastIdx: -1,
	}
	cmd.Stderr = &v.stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start ffmpeg decode of %s: %w", path, err)
	}
	return v, nil
}

func (v *VideoSource) Duration() float64 { return v.dur }

// Frame returns the decoded frame for timestamp t, advancing the underlying
// stream as needed.
func (v *VideoSource) Frame(t float64) (*image.RGBA, error) {
	idx := int(t * float64(v.fps))
	if idx <= v.lastIdx && v.current != nil {
		return v.current, nil
	}

	for v.lastIdx < idx {
		frame, err := v.readFrame()
		if err != nil {
			return nil, fmt.Errorf("video decode failed at frame %d: %w\nFFmpeg Error: %s", idx, err, v.stderr.String())
		}
		v.current = frame
		v.lastIdx++
	}
	return v.current, nil
}

func (v *VideoSource) readFrame() (*image.RGBA, error) {
	raw := make([]byte, v.w*v.h*3)
	if _, err := io.ReadFull(v.stdout, raw); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, v.w, v.h))
	for i := 0; i < v.w*v.h; i++ {
		img.Pix[i*4] = raw[i*3]
		img.Pix[i*4+1] = raw[i*3+1]
		img.Pix[i*4+2] = raw[i*3+2]
		img.Pix[i*4+3] = 0xff
	}
	return img, nil
}

// Close stops the ffmpeg process.
func (v *VideoSource) Close() error {
	if v.cmd.Process != nil {
		_ = v.cmd.Process.Kill()
	}
	return v.cmd.Wait()
}
