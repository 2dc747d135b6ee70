package main

import (
	"os"

	"github.com/SeppDev/eclipse-sub000/cmd"
)

func main() {
	os.Exit(cmd.RunCompiler())
}
