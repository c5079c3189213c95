package main

import "vcdbw/internal/cli"

func main() {
	cli.Execute()
}
