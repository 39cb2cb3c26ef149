package main

import "antiswear/internal/cli"

func main() {
	cli.Execute()
}
