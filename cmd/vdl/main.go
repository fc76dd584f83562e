package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/handiism/video-downloader/internal/audio"
	"github.com/handiism/video-downloader/internal/config"
	"github.com/handiism/video-downloader/internal/download"
	vhttp "github.com/handiism/video-downloader/internal/http"
	ioutils "github.com/handiism/video-downloader/internal/io"
	"github.com/handiism/video-downloader/internal/model"
	"github.com/mattn/go-colorable"
)

func main() {
	// Command line flags
	var (
		urlsFlag     = flag.String("url", "", "Video URL(s) to download (comma-separated or newline-separated)")
		qualityFlag  = flag.String("quality", "", "Quality: "+qualityList()+" (overrides config)")
		endpointFlag = flag.String("endpoint", "", "Conversion service endpoint (overrides config)")
		outputFlag   = flag.String("output", "", "Output directory (overrides config)")
		configFlag   = flag.String("config", "", "Path to config file")
		envFlag      = flag.String("env", ".env", "Path to .env file with VDL_* overrides")
		playlistFlag = flag.Bool("playlist", false, "Create playlist file for the downloaded files")
		verboseFlag  = flag.Bool("verbose", false, "Show verbose output")
		timeoutFlag  = flag.String("timeout", "", "Request timeout, e.g. 90s or 5m (overrides config)")
	)

	flag.Parse()

	stdout := colorable.NewColorableStdout()
	stderr := colorable.NewColorableStderr()

	// CLI mode - require URL
	if *urlsFlag == "" && flag.NArg() == 0 {
		fmt.Fprintln(stdout, "Video Downloader - Download videos and audio through a conversion service")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Usage:")
		fmt.Fprintln(stdout, "  vdl -url <URL> [options]")
		fmt.Fprintln(stdout, "  vdl <URL> [options]")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "For interactive mode, use: vdl-tui")
		fmt.Fprintln(stdout)
		flag.CommandLine.SetOutput(stdout)
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if err := settings.LoadEnv(*envFlag); err != nil {
		fmt.Fprintf(stderr, "Error loading environment: %v\n", err)
		os.Exit(1)
	}

	// Apply flags
	if *endpointFlag != "" {
		settings.Endpoint = *endpointFlag
	}
	if *outputFlag != "" {
		settings.DownloadsPath = *outputFlag
	}
	if *qualityFlag != "" {
		settings.DefaultQuality = *qualityFlag
	}
	if *playlistFlag {
		settings.CreatePlaylist = true
	}
	if *timeoutFlag != "" {
		timeout, err := config.ParseDuration(*timeoutFlag)
		if err != nil {
			fmt.Fprintf(stderr, "Error: -timeout: %v\n", err)
			os.Exit(1)
		}
		settings.RequestTimeout = timeout
	}
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: invalid settings: %v\n", err)
		os.Exit(1)
	}

	// Get URLs
	input := *urlsFlag
	if input == "" {
		input = strings.Join(flag.Args(), "\n")
	}
	urls := download.ParseInputURLs(input)

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(stdout, "\nInterrupted, cancelling...")
		cancel()
	}()

	out := newConsole(stdout, *verboseFlag)

	client, err := vhttp.NewClient(settings)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	saver := ioutils.NewFileSaver(client, settings.DownloadsPath)
	orch, err := download.NewOrchestrator(settings, download.Collaborators{
		Poster:    client,
		Saver:     saver,
		TempStore: ioutils.NewTempDir(settings.DownloadsPath),
		Status:    out,
		Progress:  out,
	}, download.Options{
		OnEvent:   out.OnEvent,
		AfterSave: download.DefaultHooks(settings, client),
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	saver.OnProgress = orch.DownloadProgress

	fmt.Fprintln(stdout, titleStyle.Render("▶ Video Downloader"))
	fmt.Fprintln(stdout, dimStyle.Render(strings.Repeat("━", 40)))
	fmt.Fprintln(stdout)

	results := download.RunBatch(ctx, orch, urls, settings.DefaultQuality, func(download.BatchResult) {
		fmt.Fprintln(stdout)
	})
	orch.Close()

	var saved []model.SavedFile
	var totalSize int64
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		saved = append(saved, *r.File)
		totalSize += r.File.Size
	}

	if settings.CreatePlaylist && len(saved) > 0 {
		creator := audio.NewPlaylistCreator(audio.ParsePlaylistFormat(settings.PlaylistFormat), settings.M3UExtended)
		name := audio.PlaylistName(settings.PlaylistFileNameFormat, time.Now())
		path, err := creator.Save(ctx, saver.Dir(), name, saved)
		if err != nil {
			out.OnEvent(download.ProgressEvent{Message: fmt.Sprintf("Could not create playlist: %v", err), Level: download.LevelWarning})
		} else {
			out.OnEvent(download.ProgressEvent{Message: "Playlist saved to " + path, Level: download.LevelInfo})
		}
	}

	fmt.Fprintln(stdout, dimStyle.Render(strings.Repeat("━", 40)))
	fmt.Fprintf(stdout, "✨ Complete! Saved %d/%d files (%s)\n", len(saved), len(urls), humanize.Bytes(uint64(totalSize)))

	if ctx.Err() != nil {
		fmt.Fprintln(stdout, "Download cancelled.")
		os.Exit(130)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func qualityList() string {
	names := make([]string, 0, len(model.Qualities()))
	for _, q := range model.Qualities() {
		names = append(names, q.String())
	}
	return strings.Join(names, ", ")
}
