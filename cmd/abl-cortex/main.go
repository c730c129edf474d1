package main

import "github.com/mvp-joe/abl-cortex/internal/cli"

func main() {
	cli.Execute()
}
