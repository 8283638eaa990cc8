package main

import "github.com/mcoot/jogador/internal/cli"

func main() {
	cli.Execute()
}
