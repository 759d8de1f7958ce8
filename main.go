// main is the entry point for the lintscore CLI.
package main

import (
	"fmt"
	"os"

	"github.com/lintscore/lintscore/cmd"
)

func main() {
	err := cmd.Execute()
	cmd.CloseStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
