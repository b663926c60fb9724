package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/ariefcatur/reservation-calendar/internal/config"
	"github.com/ariefcatur/reservation-calendar/internal/migrations"
)

const (
	migrationUp   = "up"
	migrationDown = "down"
)

// Storage settings come from the same environment as cmd/api; -target
// overrides the path or DSN.
func main() {
	_ = godotenv.Load()

	storage, err := config.LoadStorage()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var target, migrationType string
	flag.StringVar(&migrationType, "migration-type", migrationUp, "migration type (up|down)")
	flag.StringVar(&target, "target", storage.Target(), "sqlite file path or postgres DSN")
	flag.Parse()

	var applied bool
	switch migrationType {
	case migrationUp:
		applied, err = migrations.Up(storage.StorageDriver, target)
	case migrationDown:
		applied, err = migrations.Down(storage.StorageDriver, target)
	default:
		fmt.Fprintf(os.Stderr, "unknown migration type %q\n", migrationType)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if !applied {
		fmt.Println("no migrations to apply")
		return
	}
	fmt.Printf("migrations %s applied successfully\n", migrationType)
}
