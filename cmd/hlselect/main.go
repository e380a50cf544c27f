package main

import "github.com/forPelevin/hlselect/internal/cli"

func main() {
	cli.Main()
}
