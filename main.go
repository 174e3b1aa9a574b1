package main

import "inputctl/internal/cli"

func main() {
	cli.Execute()
}
