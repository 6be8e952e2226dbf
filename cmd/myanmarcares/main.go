// Command myanmarcares queries the MyanmarCares content API from the shell.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	sdk "github.com/myanmarcares/myanmarcares/sdk/go"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", sdk.UserMessage(err))
		stop()
		os.Exit(1)
	}
}
