// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReadIntFromUInt64Flag(t *testing.T) {
	v, err := readIntFromUInt64Flag(3)
	assert.NoError(t, err)
	assert.Equal(t, 3, v)

	_, err = readIntFromUInt64Flag(math.MaxUint64)
	assert.Error(t, err)
}

func TestWithTimeout(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	})

	rec := httptest.NewRecorder()
	withTimeout(slow, 10).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	upgrade := httptest.NewRequest(http.MethodGet, "/subscriptions/block", nil)
	upgrade.Header.Set("Connection", "Upgrade")
	upgrade.Header.Set("Upgrade", "websocket")
	rec = httptest.NewRecorder()
	withTimeout(slow, 10).ServeHTTP(rec, upgrade)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	withTimeout(http.NotFoundHandler(), 0).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	metricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/other", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
