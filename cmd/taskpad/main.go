package main

import (
	"fmt"
	"log"
	"os"

	"taskpad/internal/apiclient"
	"taskpad/internal/config"
	"taskpad/internal/syncer"
	"taskpad/internal/tui"
)

func main() {
	// the TUI owns the terminal; keep the std logger out of the way
	log.SetOutput(os.Stderr)

	cfg, err := config.Load("taskpad.yml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	remote := apiclient.New(cfg.Client.BaseURL, cfg.Client.Timeout())
	ctrl := syncer.NewController(remote)

	if err := tui.Run(ctrl, cfg.Client.Timeout()); err != nil {
		fmt.Fprintf(os.Stderr, "taskpad: %v\n", err)
		os.Exit(1)
	}
}
