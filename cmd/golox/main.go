package main

import (
	"os"

	"github.com/cwbudde/go-lox/cmd/golox/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
