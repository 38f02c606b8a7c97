package cmd

import (
	"fmt"
	"os"

	"github.com/ppartarr/tunedeck/util/anchor"
	"github.com/spf13/cobra"
)

var (
	tui     = anchor.New(anchor.Red)
	cmdRoot = &cobra.Command{
		Use:   "tunedeck",
		Short: "Mirror streaming-service collections as local audio files",
	}
)

func Execute() {
	if err := cmdRoot.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
