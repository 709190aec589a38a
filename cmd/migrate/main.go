package main

import (
	"flag"
	"log"

	"pedalads/internal/config"
	"pedalads/internal/db"
)

func main() {
	flag.Parse()
	args := flag.Args()

	if len(args) < 1 {
		log.Fatal("Usage: migrate COMMAND\n\nCommands:\n  up\n  down\n  status")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	sqlDB, err := db.OpenSQL(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer sqlDB.Close()

	log.Printf("Running migrate %s on %s", args[0], cfg.GetDSNSafe())
	if err := db.Migrate(sqlDB, args[0]); err != nil {
		log.Fatalf("Migration %s failed: %v", args[0], err)
	}
}
