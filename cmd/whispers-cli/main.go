package main

import "github.com/nfrund/examwhispers/cmd/whispers-cli/cmd"

func main() {
	cmd.Execute()
}
