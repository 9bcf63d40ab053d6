package main

import (
	"log"

	"upstreamnews/internal/app"
	"upstreamnews/internal/config"
)

func main() {
	cfg, err := config.Load("config.json")
	if err != nil {
		log.Fatalf("FATAL: could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("FATAL: invalid config: %v", err)
	}
	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("FATAL: could not init app: %v", err)
	}
	if err := application.Run(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}
