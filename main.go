package main

import "github.com/naka-gawa/github-assistant/cmd"

func main() {
	cmd.Execute()
}
