// glTF Viewer - drop a .glb or .gltf file onto the window to inspect it.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/gltf-viewer/internal/config"
	"github.com/Faultbox/gltf-viewer/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if path := config.WriteConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", path)
		return
	}

	fileCfg := logger.DefaultFileConfig(cfg.Logging.LogFile)
	fileCfg.MaxSizeMB = cfg.Logging.MaxSizeMB
	fileCfg.MaxBackups = cfg.Logging.MaxBackups
	fileCfg.MaxAgeDays = cfg.Logging.MaxAgeDays
	fileCfg.Compress = cfg.Logging.Compress
	if err := logger.Init(logger.Config{Level: cfg.Logging.Level, Console: true, File: fileCfg}); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== glTF Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	app, err := NewApp(cfg)
	if err != nil {
		logger.Error("failed to start viewer", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	if path := config.StartupFile(); path != "" {
		app.requestLoad(path)
	}

	app.Run()
	logger.Info("viewer closed normally")
}
