package main

import "github.com/rawbytedev/zwire/cmd/zwire/cmd"

func main() {
	cmd.Execute()
}
