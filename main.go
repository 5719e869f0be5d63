package main

import "github.com/wfraser/pianoroll/cmd"

func main() {
	cmd.Execute()
}
