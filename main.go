package main

import "github.com/diogo/gemvoice/internal/commands"

func main() {
	commands.Execute()
}
