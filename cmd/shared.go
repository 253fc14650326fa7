package cmd

import (
	"fmt"
	"os"

	"github.com/gookit/color"
)

func printStatus(msg string) {
	if quiet {
		return
	}
	fmt.Fprintln(os.Stderr, msg)
}

func printDone(msg string) {
	if quiet {
		return
	}
	color.Green.Println(msg)
}
