package main

import "geometa/internal/cli"

func main() {
	cli.Execute()
}
