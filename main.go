package main

import "github.com/agentic-research/moosepick/cmd"

func main() {
	cmd.Execute()
}
