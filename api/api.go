// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"net/http/pprof"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/bullchain/bullchain/api/accounts"
	"github.com/bullchain/bullchain/api/blocks"
	"github.com/bullchain/bullchain/api/calls"
	"github.com/bullchain/bullchain/api/events"
	"github.com/bullchain/bullchain/api/posts"
	"github.com/bullchain/bullchain/api/subscriptions"
	"github.com/bullchain/bullchain/chain"
	"github.com/bullchain/bullchain/log"
	"github.com/bullchain/bullchain/logdb"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins  string
	PprofOn         bool
	EnableReqLogger bool
	EnableMetrics   bool
	LogsLimit       uint64
	BacktraceLimit  uint32
	// accept calls carrying a bare origin instead of a signature
	AllowUnsigned bool
}

// New return api router
func New(
	chain *chain.Chain,
	logDB *logdb.LogDB,
	opts Options,
) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	calls.New(chain, opts.AllowUnsigned).
		Mount(router, "/calls")
	blocks.New(chain).
		Mount(router, "/blocks")
	posts.New(chain).
		Mount(router, "/posts")
	accounts.New(chain).
		Mount(router, "/accounts")
	events.New(chain, logDB, opts.LogsLimit).
		Mount(router, "/events")
	subs := subscriptions.New(chain, logDB, origins, opts.BacktraceLimit)
	subs.Mount(router, "/subscriptions")

	if opts.PprofOn {
		router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		router.HandleFunc("/debug/pprof/profile", pprof.Profile)
		router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		router.HandleFunc("/debug/pprof/trace", pprof.Trace)
		router.PathPrefix("/debug/pprof/").HandlerFunc(pprof.Index)
	}

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	if opts.EnableReqLogger {
		handler = RequestLoggerHandler(handler, logger)
	}
	return handler.ServeHTTP, subs.Close // subscriptions handles hijacked conns, which need to be closed
}
