package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/handiism/video-downloader/internal/config"
	"github.com/handiism/video-downloader/internal/tui"
)

func main() {
	var (
		configFlag  = flag.String("config", "", "Path to config file")
		envFlag     = flag.String("env", ".env", "Path to .env file with VDL_* overrides")
		verboseFlag = flag.Bool("verbose", false, "Show verbose output")
	)
	flag.Parse()

	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if err := settings.LoadEnv(*envFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading environment: %v\n", err)
		os.Exit(1)
	}
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid settings: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(settings, *verboseFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
