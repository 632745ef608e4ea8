package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/cloudkeeper/ck-prism/cmd/root"
	promptutils "github.com/cloudkeeper/ck-prism/utils/prompt"
)

func main() {
	root.RootCmd.SilenceErrors = true
	if err := root.RootCmd.Execute(); err != nil {
		// Interrupts already printed their own message.
		if !errors.Is(err, promptutils.ErrInterrupted) && !errors.Is(err, context.Canceled) {
			fmt.Println("Error:", err)
		}
		os.Exit(1)
	}
}
