package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	InitializeLogger()
}

// Populated by ldflags
var (
	version            string
	buildUnixTimestamp string
	commitHash         string
)

func main() {
	ts, _ := strconv.ParseInt(buildUnixTimestamp, 10, 64)
	buildInfo := BuildInfo{
		Version:    version,
		BuildTime:  time.Unix(ts, 0),
		CommitHash: commitHash,
	}

	var flags Flags
	versionFlag := flag.Bool("version", false, "Print version")
	systemdFlag := flag.Bool("systemd", false, "Print systemd service file")
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	flag.StringVar(&flags.ConfigPath, "config", "", "Path to config file (default ~/"+ConfigFileName+")")
	flag.StringVar(&flags.Dir, "dir", "", "Directory of images to view (default current directory)")
	flag.StringVar(&flags.Sort, "sort", "", "Sort order: name-asc, name-desc, modified-asc, modified-desc, size-asc, size-desc")
	flag.Parse()

	if *versionFlag {
		fmt.Println("ive version:", buildInfo.Version)
		fmt.Println("Built on:", buildInfo.BuildTime)
		fmt.Println("Commit hash:", buildInfo.CommitHash)
		return
	}

	if *debugFlag {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	fs := NewIveOSFS()

	config, err := NewConfig(fs, flags, os.Getenv)
	if err != nil {
		log.Fatal().Err(err).Msg("Config initialization failed")
	}

	if *systemdFlag {
		if err := SystemdServiceFile(os.Stdout, config.Dir()); err != nil {
			log.Fatal().Err(err).Msg("Could not write systemd service file")
		}
		return
	}

	log.Info().
		Str("version", buildInfo.Version).
		Str("build_timestamp", buildInfo.BuildTime.Format(time.RFC3339)).
		Str("commit_hash", buildInfo.CommitHash).
		Msg("Initializing ive")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader := NewImageLoader(fs, config.Dir(), config.ImageFilter(), config.SortOrder())
	viewer, err := NewViewer(loader, config.HistorySize())
	if err != nil {
		log.Fatal().Err(err).Msg("Viewer initialization failed")
	}
	defer viewer.Close()

	if err := viewer.Load(); err != nil {
		log.Fatal().Err(err).Msg("Could not load images")
	}

	slideshow := NewSlideshow(ctx, viewer, config.SlideshowInterval())
	if config.StartSlideshow() {
		slideshow.Start()
	}

	if err := StartServer(ctx, config, buildInfo, viewer, slideshow); err != nil {
		log.Err(err).Msg("Server closed with error")
	}
}
