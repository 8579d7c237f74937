package main

import (
	"fmt"
	"os"

	nested "github.com/antonfisher/nested-logrus-formatter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/markrepedersen/netparser/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "netparser",
	Short:         "Capture, decode and inspect network traffic",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}

		return setupLogger(cfg.Log)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default netparser.yml)")
	rootCmd.AddCommand(sniffCmd, readCmd, devicesCmd)
}

func setupLogger(lc config.Log) error {
	level, err := log.ParseLevel(lc.Level)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", lc.Level, err)
	}
	log.SetLevel(level)
	log.SetFormatter(&nested.Formatter{
		HideKeys:        true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	if lc.File != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   lc.File,
			MaxSize:    lc.MaxSize,
			MaxBackups: lc.MaxBackups,
			MaxAge:     lc.MaxAge,
			Compress:   lc.Compress,
		})
	} else {
		log.SetOutput(os.Stderr)
	}

	return nil
}
