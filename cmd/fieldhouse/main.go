package main

import "github.com/fortuna/fieldhouse/internal/cli"

func main() {
	cli.Execute()
}
