package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ytmirror/ytmirror/internal/importer"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, importer.ErrSyncInProgress) {
			fmt.Fprintln(os.Stderr, "Error: a sync is already running")
			os.Exit(2)
		}

		exitOnError(err)
	}
}
