// Command pprc-holder serves one data-holder process, evaluating
// incoming range-count queries against a synthetic dataset — loading
// from a persistent data source remains out of scope.
package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"github.com/jackson-maybe/PPRC/internal/cliutil"
	"github.com/jackson-maybe/PPRC/internal/config"
	"github.com/jackson-maybe/PPRC/internal/holder"
	"github.com/jackson-maybe/PPRC/internal/syntheticdata"
	"github.com/jackson-maybe/PPRC/internal/wire"
	"github.com/pkg/profile"
)

func main() {
	flagSet := flag.NewFlagSet("pprc-holder", flag.ExitOnError)
	once := flagSet.Bool("once", false, "serve exactly one session then exit")
	configPath := flagSet.String("config", "", "directory containing config.yaml")
	doProfile := flagSet.Bool("profile", false, "enable CPU profiling to ./prof")
	flagSet.Parse(os.Args[1:])

	args := flagSet.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <listen_port>\n", os.Args[0])
		os.Exit(1)
	}
	listenPort := args[0]

	cfg, err := config.Load(*configPath)
	cliutil.Check(err)

	if *doProfile {
		defer profile.Start(profile.ProfilePath("./prof")).Stop()
	}

	logger := cliutil.NewLogger("HOLDER", cfg.Color)

	store := buildStore(cfg.DataPerProv)

	ln, err := net.Listen("tcp", net.JoinHostPort("", listenPort))
	cliutil.Check(err)
	defer ln.Close()
	logger.Info("listening on :%s with %d records/provider", listenPort, cfg.DataPerProv)

	for {
		conn, err := ln.Accept()
		if err != nil {
			logger.Info("accept error: %v", err)
			continue
		}

		err = serveOne(conn, store, cfg, logger)
		conn.Close()
		if err != nil {
			logger.Info("session error: %v", err)
		} else {
			logger.Info("session complete")
		}

		if *once {
			return
		}
	}
}

func buildStore(perProvider int) *holder.Store {
	shards := syntheticdata.Progression(holder.S, perProvider)
	var records []holder.Record
	for _, shard := range shards {
		for _, r := range shard {
			records = append(records, holder.Record{X: r.X, Y: r.Y})
		}
	}
	return holder.NewStore(records)
}

func serveOne(conn net.Conn, store *holder.Store, cfg config.Config, logger *cliutil.Logger) error {
	conn.SetDeadline(time.Now().Add(cfg.Timeout))

	query, err := wire.ReadVector(conn)
	if err != nil {
		return fmt.Errorf("reading query: %w", err)
	}

	var diagLogger *log.Logger
	if cfg.Verbose {
		diagLogger = logger.Std()
	}

	result, err := holder.Evaluate(query, store, diagLogger, cfg.Progress)
	if err != nil {
		return fmt.Errorf("evaluating query: %w", err)
	}

	if err := wire.WriteVector(conn, result); err != nil {
		return fmt.Errorf("sending result: %w", err)
	}
	return nil
}
