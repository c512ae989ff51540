package main

import "github.com/pfrederiksen/stadium-fixtures/internal/cli"

func main() {
	cli.Execute()
}
