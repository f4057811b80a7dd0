// migrate applies or rolls back the embedded schema migrations, or prints the applied version.
package main

import (
	"flag"
	"fmt"
	"os"

	"healthtrack/backend/internal/config"
	"healthtrack/backend/internal/db/migrate"
)

func main() {
	direction := flag.String("direction", migrate.DirectionUp, "Migration direction: up or down")
	status := flag.Bool("status", false, "Print the applied schema version and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if cfg.DatabaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
		os.Exit(1)
	}

	if *status {
		st, err := migrate.Version(cfg.DatabaseURL)
		if err != nil {
			fmt.Fprintln(os.Stderr, "migrate:", err)
			os.Exit(1)
		}
		if !st.Applied {
			fmt.Println("no migrations applied")
			return
		}
		fmt.Printf("version %d (dirty: %t)\n", st.Version, st.Dirty)
		return
	}

	if err := migrate.Run(cfg.DatabaseURL, *direction); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}
