// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/bullchain/bullchain/chain"
	"github.com/bullchain/bullchain/genesis"
	"github.com/bullchain/bullchain/log"
	"github.com/bullchain/bullchain/logdb"
	"github.com/bullchain/bullchain/lvldb"
	"github.com/bullchain/bullchain/metrics"
)

func initLogger(lvl int, jsonLogs bool) {
	level := new(slog.LevelVar)
	level.Set(log.FromLegacyLevel(lvl))

	var handler slog.Handler
	if jsonLogs {
		handler = log.JSONHandlerWithLevel(os.Stdout, level)
	} else {
		useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
		handler = log.NewTerminalHandlerWithLevel(os.Stderr, level, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
}

func readIntFromUInt64Flag(val uint64) (int, error) {
	if val > math.MaxInt {
		return 0, fmt.Errorf("invalid value %d", val)
	}
	return int(val), nil
}

func selectGenesis(ctx *cli.Context) (*genesis.Genesis, error) {
	path := ctx.String(genesisFlag.Name)
	if path == "" {
		return genesis.NewDevnet(), nil
	}
	custom, err := genesis.LoadCustomGenesis(path)
	if err != nil {
		return nil, err
	}
	return genesis.NewCustomNet(custom)
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		return filepath.Join(home, ".bullchain")
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// openDatabases opens the main and log databases, on disk when persisting or in memory otherwise.
func openDatabases(ctx *cli.Context, gene *genesis.Genesis) (*lvldb.LevelDB, *logdb.LogDB, string, error) {
	if !ctx.Bool(persistFlag.Name) {
		mainDB, err := lvldb.NewMem()
		if err != nil {
			return nil, nil, "", err
		}
		logDB, err := logdb.NewMem()
		if err != nil {
			mainDB.Close()
			return nil, nil, "", err
		}
		return mainDB, logDB, "Memory", nil
	}

	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return nil, nil, "", errors.Errorf("--%s is required", dataDirFlag.Name)
	}
	instanceDir := filepath.Join(dataDir, gene.Name())
	if err := os.MkdirAll(instanceDir, 0o700); err != nil {
		return nil, nil, "", errors.Wrapf(err, "create instance dir [%v]", instanceDir)
	}
	mainDB, err := lvldb.New(filepath.Join(instanceDir, "main.db"), lvldb.Options{
		CacheSize:              128,
		OpenFilesCacheCapacity: 64,
	})
	if err != nil {
		return nil, nil, "", errors.Wrap(err, "open main database")
	}
	logDB, err := logdb.New(filepath.Join(instanceDir, "logs.db"))
	if err != nil {
		mainDB.Close()
		return nil, nil, "", errors.Wrap(err, "open log database")
	}
	return mainDB, logDB, instanceDir, nil
}

func withTimeout(handler http.Handler, timeoutMs uint64) http.Handler {
	if timeoutMs == 0 {
		return handler
	}
	timeout := http.TimeoutHandler(handler, time.Duration(timeoutMs)*time.Millisecond, "request timeout")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// subscriptions are long lived, and need the hijackable writer
		if websocket.IsWebSocketUpgrade(r) {
			handler.ServeHTTP(w, r)
			return
		}
		timeout.ServeHTTP(w, r)
	})
}

func metricsHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler())
	return handlers.CompressHandler(mux)
}

// serve starts a http server in the group, shut down once ctx is done.
func serve(ctx context.Context, group *errgroup.Group, addr string, handler http.Handler) (string, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", errors.Wrapf(err, "listen [%v]", addr)
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second}
	group.Go(func() error {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return "http://" + listener.Addr().String() + "/", nil
}

func printStartupMessage(gene *genesis.Genesis, bc *chain.Chain, dataDir, apiURL, metricsURL string) {
	best := bc.BestBlock()
	if metricsURL == "" {
		metricsURL = "Disabled"
	}
	fmt.Printf(`Starting %v
    Network      [ %v %v ]
    Best block   [ %v #%v ]
    Instance dir [ %v ]
    API portal   [ %v ]
    Metrics      [ %v ]
`,
		"Bullchain "+fullVersion(),
		bc.GenesisBlock().ID(), gene.Name(),
		best.ID(), best.Number(),
		dataDir,
		apiURL,
		metricsURL)

	if gene.Name() != "devnet" {
		return
	}
	for _, a := range genesis.DevAccounts() {
		fmt.Printf("    Dev account  [ %v %x ]\n", a.Address, a.PrivateKey.D.Bytes())
	}
}
