package cmd

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// YouTubeDl pulls the best available audio-only stream for
// url into path, keeping the native container: conversion
// to the target format happens in a dedicated ffmpeg pass
func YouTubeDl(ctx context.Context, url, path string) error {
	var (
		output bytes.Buffer
		cmd    = exec.CommandContext(ctx, "yt-dlp",
			"--format", "bestaudio",
			"--output", path,
			"--no-playlist",
			"--continue",
			"--no-overwrites",
			"--retry-sleep", "exp=1::2",
			"--quiet",
			url,
		)
	)
	cmd.Stdout = &output
	cmd.Stderr = &output
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.New(output.String())
	}
	return nil
}
