package main

import "github.com/goliatone/go-footnotes/internal/cli"

func main() {
	cli.Execute()
}
