package main

import "feedbackme/cmd/cli/command"

func main() {
	command.Execute()
}
