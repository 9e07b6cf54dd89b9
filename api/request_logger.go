// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/bullchain/bullchain/log"
)

// RequestLoggerHandler returns a http handler logging every request with its body.
func RequestLoggerHandler(handler http.Handler, logger log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			var err error
			if body, err = io.ReadAll(r.Body); err != nil {
				logger.Warn("unexpected body read error", "err", err)
				http.Error(w, "unable to read body", http.StatusBadRequest)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		start := time.Now()
		handler.ServeHTTP(w, r)
		logger.Info("API Request",
			"URI", r.URL.String(),
			"Method", r.Method,
			"Body", string(body),
			"elapsed", time.Since(start),
		)
	})
}
