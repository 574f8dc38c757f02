package main

import (
	"os"

	"github.com/julianvb03/GESA/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
