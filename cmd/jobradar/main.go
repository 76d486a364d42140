package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"jobradar/internal/config"
	"jobradar/internal/dedupe"
	"jobradar/internal/domain"
	"jobradar/internal/email"
	"jobradar/internal/output"
	"jobradar/internal/pipeline"
	"jobradar/internal/scrape"
	"jobradar/internal/secrets"
	"jobradar/internal/store"
)

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	config.LoadEnv()

	switch os.Args[1] {
	case "run":
		if err := runCmd(os.Args[2:]); err != nil {
			log.Fatalf("[jobradar] %v", err)
		}
	case "export":
		if err := exportCmd(os.Args[2:]); err != nil {
			log.Fatalf("[jobradar] %v", err)
		}
	case "init":
		if err := initCmd(); err != nil {
			log.Fatalf("[jobradar] %v", err)
		}
	case "password":
		if err := passwordCmd(os.Args[2:]); err != nil {
			log.Fatalf("[jobradar] %v", err)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: jobradar <command> [flags]

commands:
  run       collect, filter, score, and deliver new listings
  export    re-export the last archived run's outputs
  init      write a validated user config into the data dir
  password  store or clear an IMAP/SMTP password in the OS keychain

run flags:
  --city        limit the run to one configured city
  --since       recency window, informational (default 24h)
  --dry-run     run the pipeline but skip email and dedupe persistence
  --no-email    skip email delivery
  --no-markdown skip the Markdown output file
  --reset       clear the dedupe state before running`)
}

func bootstrap() (config.Config, string, error) {
	dataDir := os.Getenv("JOBRADAR_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return config.Config{}, "", err
	}

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		return config.Config{}, "", fmt.Errorf("config bootstrap failed: %w", err)
	}

	cfg, err := config.Load(userCfgPath)
	if err != nil {
		return config.Config{}, "", fmt.Errorf("config load failed (%s): %w", userCfgPath, err)
	}
	if cfg.App.DataDir == "" {
		cfg.App.DataDir = dataDir
	}
	if cfg.App.OutputDir == "" {
		cfg.App.OutputDir = "output"
	}
	if err := config.OverlayExcludes(&cfg, filepath.Join(dataDir, "resume_excludes.yml")); err != nil {
		return config.Config{}, "", err
	}
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, "", err
	}
	return cfg, dataDir, nil
}

func runCmd(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	city := fs.String("city", "", "limit to one configured city")
	since := fs.String("since", "24h", "recency window (informational)")
	dryRun := fs.Bool("dry-run", false, "skip email send and dedupe persistence")
	noEmail := fs.Bool("no-email", false, "skip email delivery")
	noMarkdown := fs.Bool("no-markdown", false, "skip Markdown output")
	reset := fs.Bool("reset", false, "clear the dedupe state before running")
	if err := fs.Parse(args); err != nil {
		return err
	}
	_ = since // recency is enforced by the connectors themselves

	cfg, dataDir, err := bootstrap()
	if err != nil {
		return err
	}

	locations := cfg.Locations.Primary
	if *city != "" {
		loc, ok := matchCity(*city, cfg.Locations.Primary)
		if !ok {
			return fmt.Errorf("unknown city %q, configured cities: %s",
				*city, strings.Join(cfg.Locations.Primary, ", "))
		}
		locations = []string{loc}
	}

	deduper := dedupe.New(&dedupe.FileStore{Path: filepath.Join(dataDir, "seen_jobs.json")})
	if *reset {
		if err := deduper.ResetState(); err != nil {
			return err
		}
	}

	runDate := time.Now()
	log.Printf("[jobradar] starting run for: %s", strings.Join(locations, ", "))

	ctx := context.Background()
	collected := scrape.Collect(ctx, cfg, locations)

	runCfg := cfg
	runCfg.Locations.Primary = locations
	scored, err := pipeline.New(runCfg, deduper).Run(collected, !*dryRun)
	if err != nil {
		return err
	}
	if len(scored) == 0 {
		log.Printf("[jobradar] no new listings this run")
		return nil
	}

	if err := archive(ctx, dataDir, scored); err != nil {
		log.Printf("[store] archive failed: %v", err)
	}

	csvPath, err := writeOutputs(cfg, scored, locations, runDate, !*noMarkdown)
	if err != nil {
		return err
	}

	if cfg.Email.Enabled && !*dryRun && !*noEmail {
		if err := email.Send(cfg, scored, csvPath, runDate); err != nil {
			log.Printf("[email] %v", err)
		}
	} else {
		log.Printf("[jobradar] email skipped")
	}

	log.Printf("[jobradar] done, %d new jobs saved to %s", len(scored), cfg.App.OutputDir)
	return nil
}

func exportCmd(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	noMarkdown := fs.Bool("no-markdown", false, "skip Markdown output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, dataDir, err := bootstrap()
	if err != nil {
		return err
	}

	db, err := store.Open(filepath.Join(dataDir, "jobradar.db"))
	if err != nil {
		return err
	}
	defer db.Close()
	if err := store.Migrate(db); err != nil {
		return err
	}

	ctx := context.Background()
	day, err := store.LatestRunDate(ctx, db)
	if err != nil {
		return err
	}
	if day.IsZero() {
		log.Printf("[jobradar] archive is empty, nothing to export")
		return nil
	}

	listings, err := store.ListRun(ctx, db, day)
	if err != nil {
		return err
	}
	log.Printf("[jobradar] exporting %d listings from %s", len(listings), day.Format("2006-01-02"))

	_, err = writeOutputs(cfg, listings, cfg.Locations.Primary, day, !*noMarkdown)
	return err
}

func archive(ctx context.Context, dataDir string, listings []domain.Listing) error {
	db, err := store.Open(filepath.Join(dataDir, "jobradar.db"))
	if err != nil {
		return err
	}
	defer db.Close()
	if err := store.Migrate(db); err != nil {
		return err
	}
	added, err := store.ArchiveRun(ctx, db, listings)
	if err != nil {
		return err
	}
	log.Printf("[store] archived %d listings", added)
	if n, err := store.CleanupOldListings(db); err == nil && n > 0 {
		log.Printf("[store] cleaned up %d old rows", n)
	}
	return nil
}

func writeOutputs(cfg config.Config, listings []domain.Listing, cities []string, runDate time.Time, markdown bool) (csvPath string, err error) {
	dir := cfg.App.OutputDir
	csvPath, err = output.SaveCSV(dir, listings, runDate)
	if err != nil {
		return "", err
	}
	if _, err := output.SaveHTML(dir, listings, cities, runDate); err != nil {
		return "", err
	}
	if markdown {
		if _, err := output.SaveMarkdown(dir, listings, cities, runDate); err != nil {
			return "", err
		}
	}
	return csvPath, nil
}

// initCmd bootstraps the user config and rewrites it normalized, so hand
// edits get validated and missing sections gain their defaults.
func initCmd() error {
	cfg, dataDir, err := bootstrap()
	if err != nil {
		return err
	}
	userPath := filepath.Join(dataDir, "config.yml")
	if err := config.SaveAtomic(userPath, cfg); err != nil {
		return err
	}
	log.Printf("[jobradar] config written to %s", userPath)
	return nil
}

func passwordCmd(args []string) error {
	fs := flag.NewFlagSet("password", flag.ExitOnError)
	proto := fs.String("proto", "imap", "which credential: imap or smtp")
	clear := fs.Bool("clear", false, "remove the stored password instead of setting it")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, _, err := bootstrap()
	if err != nil {
		return err
	}

	var account string
	switch *proto {
	case "imap":
		account = secrets.IMAPKeyringAccount(cfg.IMAP.Username, cfg.IMAP.Host)
	case "smtp":
		account = secrets.SMTPKeyringAccount(cfg.Email.From, cfg.Email.SMTPHost)
	default:
		return fmt.Errorf("unknown proto %q, use imap or smtp", *proto)
	}

	if *clear {
		if err := secrets.DeletePassword(account); err != nil {
			return err
		}
		log.Printf("[jobradar] %s password cleared", *proto)
		return nil
	}

	fmt.Fprintf(os.Stderr, "password for %s: ", account)
	sc := bufio.NewScanner(os.Stdin)
	if !sc.Scan() {
		return fmt.Errorf("no password read from stdin")
	}
	if err := secrets.SetPassword(account, strings.TrimSpace(sc.Text())); err != nil {
		return err
	}
	log.Printf("[jobradar] %s password stored in keychain", *proto)
	return nil
}

// matchCity resolves a case-insensitive city argument against the configured
// primary locations.
func matchCity(arg string, cities []string) (string, bool) {
	for _, c := range cities {
		if strings.EqualFold(arg, c) {
			return c, true
		}
	}
	return "", false
}
