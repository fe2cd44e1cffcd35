// migrate applies or rolls back the embedded schema migrations.
// Run: go run ./cmd/migrate [up | down N]
package main

import (
	"log"
	"os"
	"strconv"

	"github.com/ErlanBelekov/goals-api/internal/infrastructure/postgres"
)

func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "up":
		if err := postgres.MigrateUp(dbURL); err != nil {
			log.Fatal(err)
		}
		log.Println("migrations applied")
	case "down":
		steps := 1
		if len(os.Args) > 2 {
			n, err := strconv.Atoi(os.Args[2])
			if err != nil {
				log.Fatalf("invalid step count %q: %v", os.Args[2], err)
			}
			steps = n
		}
		if err := postgres.MigrateDown(dbURL, steps); err != nil {
			log.Fatal(err)
		}
		log.Printf("rolled back %d migration(s)", steps)
	default:
		log.Fatalf("unknown command %q (want up or down N)", cmd)
	}
}
