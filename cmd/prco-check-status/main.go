package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	checkerrors "github.com/prco/check-status/pkg/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "\n%v\n\n", err)

		var validationErr *checkerrors.ValidationError
		var parseErr *checkerrors.ParseError
		if errors.As(err, &validationErr) || errors.As(err, &parseErr) {
			fmt.Fprint(os.Stderr, root.UsageString())
		}
		stop()
		os.Exit(1)
	}
}
