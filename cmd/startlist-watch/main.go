package main

import "github.com/pfrederiksen/startlist-watch/internal/cli"

func main() {
	cli.Execute()
}
