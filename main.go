package main

import "github.com/trackdeck/trackdeck/internal/cli"

func main() {
	cli.Execute()
}
