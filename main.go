package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "nvreader [file]",
	Short: "PDF and comic book viewer with a background music player",
	Long: `nvreader displays PDF pages or comic book archives (cbz, cbr, cb7)
in a scrollable window and plays mp3, wav or ogg files in the background.

An optional file argument is opened at startup.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file path (default "+getConfigPath()+")")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	result := loadConfig(cfgFile)
	cfg := result.Config
	setupLogging(cfg.LogLevel, debug, os.Stderr)
	log.Debug().Str("path", result.Path).Str("status", result.Status).Msg("configuration loaded")
	for _, w := range result.Warnings {
		log.Warn().Msg(w)
	}

	if err := InitGraphics(); err != nil {
		return fmt.Errorf("failed to load font: %w", err)
	}

	dialogs := zenityDialogs{}
	viewer := NewViewer(result, NewEbitenAudio(cfg.Volume), dialogs, ebitenWindow{})
	defer viewer.Close()

	if len(args) == 1 {
		if err := viewer.OpenFile(args[0]); err != nil {
			log.Error().Err(err).Str("path", args[0]).Msg("failed to open startup file")
			viewer.reportError(err)
		}
	}

	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowSizeLimits(minWidth, minHeight, -1, -1)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetScreenClearedEveryFrame(false)
	if cfg.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	if err := ebiten.RunGame(viewer); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
