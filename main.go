package main

import "github.com/chrisbataille/hoards/internal/cli"

func main() {
	cli.Execute()
}
