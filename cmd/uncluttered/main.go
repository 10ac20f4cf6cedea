package main

import "github.com/brendaninnis/uncluttered-cli/internal/cli"

func main() {
	cli.Execute()
}
