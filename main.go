package main

import "github.com/ppartarr/tunedeck/cmd"

func main() {
	cmd.Execute()
}
