// Command adhoc-flight runs an ad-hoc query against an Arrow Flight SQL
// server, prints the results to the console, and optionally saves them to an
// Arrow IPC stream file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adhoc-flight/adhoc-go"
	"github.com/adhoc-flight/adhoc-go/queryutil"
)

func main() {
	var cfg adhoc.Config
	flag.StringVar(&cfg.Host, "host", "localhost", "Flight SQL server host")
	flag.IntVar(&cfg.Port, "port", 32010, "Flight SQL server port")
	flag.StringVar(&cfg.User, "user", "", "username for the basic auth handshake")
	flag.StringVar(&cfg.Pass, "pass", "", "password for the basic auth handshake")
	flag.StringVar(&cfg.PAT, "pat", "", "personal access token (takes precedence over -user/-pass)")
	flag.BoolVar(&cfg.TLS, "tls", false, "connect with TLS")
	flag.BoolVar(&cfg.InsecureSkipVerify, "insecure", false, "skip server certificate verification (TLS only)")
	query := flag.String("query", "", "query to run (required)")
	binary := flag.String("binary", "", "path to save results as an Arrow IPC stream file")
	pretty := flag.Bool("pretty", false, "render results as an aligned table instead of TSV")
	verbose := flag.Bool("v", false, "enable debug logging")

	// Environment overrides sit between flag defaults and explicit flags.
	cfg.FromEnv()
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *query == "" {
		flag.Usage()
		fmt.Fprintln(os.Stderr, "missing required -query")
		os.Exit(2)
	}

	if err := run(cfg, *query, *binary, *pretty); err != nil {
		slog.Error("query failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg adhoc.Config, query, binary string, pretty bool) error {
	ctx := context.Background()

	client, err := adhoc.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			queryutil.PrintErrorOnClosed(cerr)
		}
	}()
	queryutil.PrintAuthenticated(cfg.Host, cfg.Port)

	queryutil.PrintRunningQuery(query)
	records, err := client.Execute(ctx, query)
	if err != nil {
		return err
	}
	defer func() {
		for _, rec := range records {
			rec.Release()
		}
	}()

	queryutil.PrintPreamble()
	for _, rec := range records {
		if pretty {
			queryutil.PrintResultsTable(rec)
		} else {
			queryutil.PrintResults(rec)
		}
	}

	if binary != "" {
		for i, rec := range records {
			path := binary
			if len(records) > 1 {
				path = numberedPath(binary, i)
			}
			if err := queryutil.WriteToBinaryFile(rec, path); err != nil {
				return err
			}
			slog.Debug("saved record batch", "path", path, "rows", rec.NumRows())
		}
	}
	return nil
}

// numberedPath inserts a batch index before the extension, so multi-batch
// results save to distinct files.
func numberedPath(path string, i int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), i, ext)
}
