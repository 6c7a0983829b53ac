package main

import "planvault/cmd/planvault-cli/cmd"

func main() {
	cmd.Execute()
}
