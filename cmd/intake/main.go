package main

import "github.com/ogulcanaydogan/budget-intake/internal/cli"

func main() {
	cli.Execute()
}
