// Command pprc-aggregator mediates between a client and a holder,
// accepting one client connection per session and forwarding to a
// fixed holder address.
package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/jackson-maybe/PPRC/internal/aggregator"
	"github.com/jackson-maybe/PPRC/internal/cliutil"
	"github.com/jackson-maybe/PPRC/internal/config"
	"github.com/pkg/profile"
)

func main() {
	flagSet := flag.NewFlagSet("pprc-aggregator", flag.ExitOnError)
	once := flagSet.Bool("once", false, "serve exactly one session then exit")
	configPath := flagSet.String("config", "", "directory containing config.yaml")
	doProfile := flagSet.Bool("profile", false, "enable CPU profiling to ./prof")
	flagSet.Parse(os.Args[1:])

	args := flagSet.Args()
	if len(args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <listen_port> <holder_ip> <holder_port>\n", os.Args[0])
		os.Exit(1)
	}
	listenPort, holderIP, holderPort := args[0], args[1], args[2]

	cfg, err := config.Load(*configPath)
	cliutil.Check(err)

	if *doProfile {
		defer profile.Start(profile.ProfilePath("./prof")).Stop()
	}

	logger := cliutil.NewLogger("AGG", cfg.Color)

	ln, err := net.Listen("tcp", net.JoinHostPort("", listenPort))
	cliutil.Check(err)
	defer ln.Close()
	logger.Info("listening on :%s, holder at %s:%s", listenPort, holderIP, holderPort)

	for {
		clientConn, err := ln.Accept()
		if err != nil {
			logger.Info("accept error: %v", err)
			continue
		}

		err = serveOne(clientConn, holderIP, holderPort, cfg.Timeout, logger)
		clientConn.Close()
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

func serveOne(clientConn net.Conn, holderIP, holderPort string, timeout time.Duration, logger *cliutil.Logger) error {
	clientConn.SetDeadline(time.Now().Add(timeout))

	holderConn, err := net.DialTimeout("tcp", net.JoinHostPort(holderIP, holderPort), timeout)
	if err != nil {
		return fmt.Errorf("dialing holder: %w", err)
	}
	defer holderConn.Close()
	holderConn.SetDeadline(time.Now().Add(timeout))

	return aggregator.Run(clientConn, holderConn)
}
