package main

import (
	"outreach-backend/cmd/outreach-cli/cmd"
)

func main() {
	cmd.Execute()
}
