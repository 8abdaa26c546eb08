// Command seed-events posts the sample event catalog to a running
// instance over HTTP. Safe to rerun: already seeded ids are skipped.
package main

import (
	"context"
	"flag"
	"os"
	"strconv"
	"time"

	"partyconnect/internal/seed"
	"partyconnect/pkg/logger"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultTotalBudget = 2 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:8080", "Base URL of the service")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()

	ctx, cancel := context.WithTimeout(context.Background(), defaultTotalBudget)
	defer cancel()

	poster := seed.NewPoster(*baseURL, *timeout)
	n, err := poster.Post(ctx)
	if err != nil {
		log.Error(ctx, "seeding failed after "+strconv.Itoa(n)+" events", logger.Error(err))
		os.Exit(1)
	}
	log.Info(ctx, "seeding complete", logger.Int("created", n), logger.String("url", *baseURL))
}
