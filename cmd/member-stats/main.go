package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Laye1997/malika-bi-nu-begg-d/common/logger"
	"github.com/Laye1997/malika-bi-nu-begg-d/internal/config"
	"github.com/Laye1997/malika-bi-nu-begg-d/internal/domain"
	"github.com/Laye1997/malika-bi-nu-begg-d/internal/repository"
	"github.com/Laye1997/malika-bi-nu-begg-d/internal/service"

	"go.uber.org/zap"
)

// member-stats prints the member count per neighborhood of the configured
// backend (same env variables as mbb-members).
func main() {
	var backend = flag.String("backend", "", "Override MEMBERS_BACKEND (excel, remote, sheets, postgres, sqlite)")
	var asJSON = flag.Bool("json", false, "Print the full statistics as JSON")
	var timeout = flag.Duration("timeout", 30*time.Second, "Overall timeout")
	flag.Parse()

	cfg := config.Load()
	if *backend != "" {
		cfg.Members.Backend = *backend
	}

	log, err := logger.NewLogger("warn", "console", "member-stats")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	repo, closeRepo, err := repository.Open(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open backend %q: %v\n", cfg.Members.Backend, err)
		os.Exit(1)
	}
	defer func() {
		if err := closeRepo(); err != nil {
			log.Warn("close backend failed", zap.Error(err))
		}
	}()

	svc := service.NewMemberService(repo, service.MemberServiceOptions{}, log)
	snap, err := svc.ListAll(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load members: %v\n", err)
		os.Exit(2)
	}

	stats, err := svc.GroupByNeighborhood(snap)
	if err != nil && !errors.Is(err, domain.ErrColumnNotFound) {
		fmt.Fprintf(os.Stderr, "group members: %v\n", err)
		os.Exit(2)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(stats); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("Total members: %d\n", stats.Total)
	if errors.Is(err, domain.ErrColumnNotFound) {
		fmt.Println("No neighborhood column in the source.")
		return
	}
	for _, c := range stats.Ordered {
		fmt.Printf("%-32s %5d\n", c.Neighborhood, c.Count)
	}
	if stats.Unspecified > 0 {
		fmt.Printf("%-32s %5d\n", "(unspecified)", stats.Unspecified)
	}
}
