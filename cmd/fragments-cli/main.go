package main

import "fragments/cmd/fragments-cli/cmd"

func main() {
	cmd.Execute()
}
