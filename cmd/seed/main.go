// Package main provides a tool to seed the database with demo shop data.
//
// It replays a script of assistant commands through the built-in keyword
// interpreter, so seeding exercises the same path a typed command takes.
//
// Usage:
//
//	DATA_PATH=~/shopmate go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/shopmateapp/shopmate-server/internal/assistant"
	"github.com/shopmateapp/shopmate-server/internal/domain"
	"github.com/shopmateapp/shopmate-server/internal/store"
)

var seedCommands = []string{
	"add contact Sarah Miller, sarah.miller@example.com",
	"add contact James O'Connor",
	"add contact Maria Santos, maria@santosbooks.example.com",
	"add contact Priya Patel",

	"add book Dune by Frank Herbert for $9.99",
	"add book The Left Hand of Darkness by Ursula K. Le Guin for $12.50",
	"add book Hyperion by Dan Simmons for $8.75",
	"add book Beloved by Toni Morrison for $11.00",

	"restock 12 copies of Dune",
	"restock 6 copies of The Left Hand of Darkness",
	"restock 4 copies of Hyperion",
	"restock 8 copies of Beloved",

	"create event Poetry Night at the back room",
	"create event Author Signing at main floor",

	"Sarah Miller is attending Poetry Night",
	"Priya Patel is attending Poetry Night",
	"Maria Santos is attending Author Signing",

	"sell 2 copies of Dune to Sarah Miller",
	"sell 1 copy of Beloved to James O'Connor",
	"sell 3 copies of Hyperion to Maria Santos",
}

func main() {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/shopmate")
	}
	dbPath := filepath.Join(dataPath, "db")

	fmt.Printf("Opening database at: %s\n", dbPath)

	st, err := store.New(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	ctx := context.Background()

	understander := assistant.NewKeywordUnderstander()
	dispatcher := assistant.NewDispatcher(st, nil)
	caller := assistant.Caller{
		UserID: "user_seed",
		Name:   "Seed Script",
		Role:   domain.RoleAdmin,
		IsRoot: true,
	}

	failures := 0
	for _, command := range seedCommands {
		interp, err := understander.Understand(ctx, command, caller.IsAdmin())
		if err != nil {
			log.Fatalf("Interpret %q: %v", command, err)
		}

		intent, err := assistant.ParseIntent(interp)
		if err != nil {
			log.Fatalf("Parse %q: %v", command, err)
		}

		result := dispatcher.Dispatch(ctx, intent, caller)
		status := "ok"
		if !result.Success {
			status = "FAILED"
			failures++
		}
		fmt.Printf("%-60s %s: %s\n", command, status, result.Message)
	}

	if failures > 0 {
		log.Fatalf("%d of %d commands failed", failures, len(seedCommands))
	}
	fmt.Printf("\nSeeded %d commands.\n", len(seedCommands))
}
