package main

import "github.com/dbrheo/agentcore/cmd"

func main() {
	cmd.Execute()
}
