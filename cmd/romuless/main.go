package main

import "github.com/mydehq/romuless/internal/cli"

func main() {
	cli.Execute()
}
