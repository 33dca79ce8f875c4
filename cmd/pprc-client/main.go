// Command pprc-client drives one range-count query against an
// aggregator, logs the estimate, and exits.
package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/jackson-maybe/PPRC/internal/cliutil"
	"github.com/jackson-maybe/PPRC/internal/config"
	"github.com/jackson-maybe/PPRC/internal/client"
	"github.com/jackson-maybe/PPRC/internal/she"
	"github.com/jackson-maybe/PPRC/internal/keystore"
	"github.com/pkg/profile"
)

func main() {
	flagSet := flag.NewFlagSet("pprc-client", flag.ExitOnError)
	rangeSpec := flagSet.String("range", "0,100,0,100", "query range ax,bx,ay,by")
	keyFile := flagSet.String("keyfile", "", "path to a persisted secret key; generated fresh if empty")
	passphrase := flagSet.String("passphrase", "", "passphrase protecting -keyfile, if any")
	configPath := flagSet.String("config", "", "directory containing config.yaml")
	doProfile := flagSet.Bool("profile", false, "enable CPU profiling to ./prof")
	flagSet.Parse(os.Args[1:])

	args := flagSet.Args()
	if len(args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <server_ip> <port>\n", os.Args[0])
		os.Exit(1)
	}
	serverIP, port := args[0], args[1]

	cfg, err := config.Load(*configPath)
	cliutil.Check(err)

	if *doProfile {
		defer profile.Start(profile.ProfilePath("./prof")).Stop()
	}

	logger := cliutil.NewLogger("QUERY", cfg.Color)

	var ax, bx, ay, by int
	_, err = fmt.Sscanf(*rangeSpec, "%d,%d,%d,%d", &ax, &bx, &ay, &by)
	cliutil.Check(err)

	var sk *she.SecretKey
	if *keyFile != "" {
		if _, statErr := os.Stat(*keyFile); statErr == nil {
			sk, err = keystore.Load(*keyFile, []byte(*passphrase))
			cliutil.Check(err)
		} else {
			sk, err = she.GenerateSecretKey(2048, 84)
			cliutil.Check(err)
			cliutil.Check(keystore.Save(*keyFile, sk, []byte(*passphrase)))
		}
	} else {
		sk, err = she.GenerateSecretKey(2048, 84)
		cliutil.Check(err)
	}

	logger.Info("connecting to %s:%s", serverIP, port)
	conn, err := net.DialTimeout("tcp", net.JoinHostPort(serverIP, port), cfg.Timeout)
	cliutil.Check(err)
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(cfg.Timeout))

	driver := &client.Driver{SK: sk, Progress: cfg.Progress}
	start := time.Now()
	estimate, err := driver.RunQuery(conn, client.Range{AX: ax, BX: bx, AY: ay, BY: by})
	cliutil.Check(err)

	logger.Result("estimated range count: %d (took %s)", estimate, time.Since(start))
}
