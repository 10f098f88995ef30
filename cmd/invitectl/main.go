package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"weddinginvite/cmd/invitectl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.New(color.FgRed, color.Bold).Sprint("Error: ")+err.Error())
		os.Exit(1)
	}
}
