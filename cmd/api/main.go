package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"tabnote/internal/app"
	"tabnote/internal/config"
)

func main() {
	port := flag.String("port", "", "server port (overrides PORT)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if p := strings.TrimSpace(*port); p != "" {
		if !strings.HasPrefix(p, ":") {
			p = ":" + p
		}
		cfg.Port = p
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	if err := a.Run(context.Background()); err != nil {
		log.Fatalf("server: %v", err)
	}
}
