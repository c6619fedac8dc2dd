package main

import (
	"github.com/rubyscope/rubyscope/internal/cli"
)

func main() {
	cli.Execute()
}
