package main

import "container-os/internal/cli"

func main() {
	cli.Execute()
}
