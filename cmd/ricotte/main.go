package main

import "github.com/mcoot/ricotte-api/internal/cli"

func main() {
	cli.Execute()
}
