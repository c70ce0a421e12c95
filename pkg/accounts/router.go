// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package accounts

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/bbbank/accounts-api/x/route"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics/prometheus"
	"github.com/gorilla/mux"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

var (
	accountFetchesVec = stdprometheus.NewCounterVec(stdprometheus.CounterOpts{
		Name: "account_fetches",
		Help: "Counter of GetAllAccounts store reads by outcome",
	}, []string{"outcome"})
	accountFetches = prometheus.NewCounter(accountFetchesVec)
)

func init() {
	stdprometheus.MustRegister(accountFetchesVec)
}

type Router struct {
	logger log.Logger
	repo   Repository

	fetchTimeout time.Duration
}

// NewRouter returns a Router serving accounts from repo. A positive fetchTimeout
// bounds each store read.
func NewRouter(logger log.Logger, repo Repository, fetchTimeout time.Duration) *Router {
	return &Router{
		logger:       logger,
		repo:         repo,
		fetchTimeout: fetchTimeout,
	}
}

func (router *Router) RegisterRoutes(r *mux.Router) {
	r.Methods("GET").Path("/api/accounts/GetAllAccounts").HandlerFunc(router.getAllAccounts())
}

func (router *Router) getAllAccounts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := route.NewResponder(router.logger, w, r)

		ctx := responder.Context()
		if router.fetchTimeout > 0 {
			var cancelFunc context.CancelFunc
			ctx, cancelFunc = context.WithTimeout(ctx, router.fetchTimeout)
			defer cancelFunc()
		}

		accounts, err := router.repo.GetAllAccounts(ctx)
		if err != nil {
			accountFetches.With("outcome", "failure").Add(1)
			responder.LogError("accounts", "problem reading accounts", "error", err)
			responder.Problem(err)
			return
		}
		accountFetches.With("outcome", "success").Add(1)

		if accounts == nil {
			accounts = make([]*Account, 0) // render [] rather than null
		}
		responder.Respond(func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(accounts)
		})
	}
}
