package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"scholar-metrics-go/config"
	"scholar-metrics-go/internal/fetcher"
	"scholar-metrics-go/internal/logging"
	"scholar-metrics-go/internal/service"
)

// defaultUser 默认学者ID
const defaultUser = "H7sOPf8AAAAJ"

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	var (
		user    string
		verbose bool
	)
	flag.StringVar(&user, "user", defaultUser, "Google Scholar author id")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	level := "warn"
	if verbose {
		level = "debug"
	}
	logging.Setup(level, "console")

	svc := service.NewScholarService(fetcher.NewScholarFetcher(cfg.BaseURL, cfg.UserAgent, cfg.FetchTimeout), nil)

	out := svc.Render(context.Background(), user)
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	fmt.Fprint(os.Stdout, out)
}
