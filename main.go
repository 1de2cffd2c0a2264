package main

import (
	"fmt"
	"os"

	"github.com/librarium/bibliotheque/internal/config"
	"github.com/librarium/bibliotheque/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	switch os.Args[1] {
	case "resetdb":
		cfg := config.NewConfig()
		if err := entrypoint.ResetDatabase(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Catalog tables dropped and recreated. Accounts and audit trail were preserved.")

	case "version":
		fmt.Printf("bibliotheque %s (%s)\n", Version, Commit)

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve     Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  resetdb   Drop and recreate the catalog tables (books, members, loans)\n")
	fmt.Fprintf(os.Stderr, "  version   Print the version\n")
	fmt.Fprintf(os.Stderr, "\nConfiguration is read from environment variables (PORT, DATABASE_PATH, AUTH_MODE, ...).\n")
}
