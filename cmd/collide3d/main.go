package main

import (
	"flag"
	"log"

	"collide3d/internal/config"
	"collide3d/internal/game"
	"collide3d/internal/level"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "viewer config file (YAML)")
	levelPath := flag.String("level", "", "level file (YAML), overrides the config")
	writeConfig := flag.Bool("write-config", false, "write the effective config to -config and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *levelPath != "" {
		cfg.Level = *levelPath
	}

	if *writeConfig {
		if err := cfg.Save(*configPath); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}
		log.Printf("Wrote %s", *configPath)
		return
	}

	lvl := level.Default()
	if cfg.Level != "" {
		lvl, err = level.Load(cfg.Level)
		if err != nil {
			log.Fatalf("Failed to load level: %v", err)
		}
	}

	g, err := game.New(cfg, lvl)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	g.Run()
}
