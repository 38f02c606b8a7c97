package cmd

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// FFmpeg converts the audio stream found in input into an
// MP3 file at output, dropping any video track
func FFmpeg(ctx context.Context, input, output string) error {
	var (
		buffer bytes.Buffer
		cmd    = exec.CommandContext(ctx, "ffmpeg",
			"-y",
			"-i", input,
			"-vn",
			"-codec:a", "libmp3lame",
			"-q:a", "0",
			output,
		)
	)
	cmd.Stdout = &buffer
	cmd.Stderr = &buffer
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.New(buffer.String())
	}
	return nil
}
