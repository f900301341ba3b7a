// Command seeder imports bundled lesson content outside the server.
//
// Flags:
//
//	--seed         comma-separated seed names (default: all catalog seeds)
//	--catalog-dir  read seeds from a directory instead of the bundled catalog
//	--force        import even if the launch gate is set
//	--dry-run      import into an in-memory store; no database needed
//	--list         print the catalog and exit
//	--reset        delete all lesson content and saved phrases
//	--confirm      required together with --reset
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/heartmarshall/triplingo-backend/internal/app"
	"github.com/heartmarshall/triplingo-backend/internal/config"
)

func main() {
	seedFlag := flag.String("seed", "", "comma-separated seeds to import (default: all)")
	catalogDirFlag := flag.String("catalog-dir", "", "directory of seed YAML files")
	forceFlag := flag.Bool("force", false, "import even if already imported")
	dryRunFlag := flag.Bool("dry-run", false, "import into memory without touching the database")
	listFlag := flag.Bool("list", false, "list catalog seeds and exit")
	resetFlag := flag.Bool("reset", false, "delete all lesson content and saved phrases")
	confirmFlag := flag.Bool("confirm", false, "confirm --reset")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	err := app.RunSeeder(ctx, app.SeederOptions{
		Seeds:      config.ParseSeedNames(*seedFlag),
		CatalogDir: *catalogDirFlag,
		Force:      *forceFlag,
		DryRun:     *dryRunFlag,
		Reset:      *resetFlag,
		Confirm:    *confirmFlag,
		List:       *listFlag,
	}, os.Stdout)
	if err != nil {
		if !errors.Is(err, app.ErrSeedsFailed) {
			slog.Error("seeder failed", slog.String("error", err.Error()))
		}
		os.Exit(1)
	}
}
