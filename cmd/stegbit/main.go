package main

import (
	"github.com/stegbit/stegbit/cmd/stegbit/cmd"
)

func main() {
	cmd.Execute()
}
