package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bsan5566/food-waste/internal/alerts"
	"github.com/bsan5566/food-waste/internal/catalog"
	"github.com/bsan5566/food-waste/internal/filter"
	"github.com/bsan5566/food-waste/internal/report"
	"github.com/bsan5566/food-waste/internal/store"
	"github.com/bsan5566/food-waste/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

type Service struct {
	logger *logrus.Logger
	config *types.Config

	providerRepo *store.ProviderRepository
	receiverRepo *store.ReceiverRepository
	listingRepo  *store.ListingRepository
	claimRepo    *store.ClaimRepository

	catalog   *catalog.Catalog
	filters   *filter.Builder
	alerts    *alerts.Evaluator
	reports   *report.Service

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	providerRepo *store.ProviderRepository,
	receiverRepo *store.ReceiverRepository,
	listingRepo *store.ListingRepository,
	claimRepo *store.ClaimRepository,
	queryCatalog *catalog.Catalog,
	filters *filter.Builder,
	alertEvaluator *alerts.Evaluator,
	reports *report.Service,
) (*Service, error) {
	mux := flow.New()

	s := &Service{
		logger: logger,
		config: config,

		providerRepo: providerRepo,
		receiverRepo: receiverRepo,
		listingRepo:  listingRepo,
		claimRepo:    claimRepo,

		catalog: queryCatalog,
		filters: filters,
		alerts:  alertEvaluator,
		reports: reports,

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)
	r.HandleFunc("/overview", s.handleOverview, http.MethodGet)

	r.HandleFunc("/listings", s.handleFilterListings, http.MethodGet)
	r.HandleFunc("/filters", s.handleFilterOptions, http.MethodGet)

	r.HandleFunc("/queries", s.handleQueryNames, http.MethodGet)
	r.HandleFunc("/queries/:name", s.handleRunQuery, http.MethodGet)

	r.HandleFunc("/alerts", s.handleAlerts, http.MethodGet)

	r.HandleFunc("/dashboard", s.handleDashboard, http.MethodGet)
	r.HandleFunc("/insights", s.handleInsights, http.MethodGet)
	r.HandleFunc("/reports", s.handleReportNames, http.MethodGet)
	r.HandleFunc("/reports/:name", s.handleRunReport, http.MethodGet)

	r.HandleFunc("/providers", s.handleListProviders, http.MethodGet)
	r.HandleFunc("/providers", s.handleCreateProvider, http.MethodPost)
	r.HandleFunc("/providers/:id", s.handleGetProvider, http.MethodGet)
	r.HandleFunc("/providers/:id", s.handleUpdateProvider, http.MethodPut)
	r.HandleFunc("/providers/:id", s.handleDeleteProvider, http.MethodDelete)

	r.HandleFunc("/receivers", s.handleListReceivers, http.MethodGet)
	r.HandleFunc("/receivers", s.handleCreateReceiver, http.MethodPost)
	r.HandleFunc("/receivers/:id", s.handleGetReceiver, http.MethodGet)
	r.HandleFunc("/receivers/:id", s.handleUpdateReceiver, http.MethodPut)
	r.HandleFunc("/receivers/:id", s.handleDeleteReceiver, http.MethodDelete)

	r.HandleFunc("/food-listings", s.handleListListings, http.MethodGet)
	r.HandleFunc("/food-listings", s.handleCreateListing, http.MethodPost)
	r.HandleFunc("/food-listings/:id", s.handleGetListing, http.MethodGet)
	r.HandleFunc("/food-listings/:id", s.handleUpdateListing, http.MethodPut)
	r.HandleFunc("/food-listings/:id", s.handleDeleteListing, http.MethodDelete)

	r.HandleFunc("/claims", s.handleListClaims, http.MethodGet)
	r.HandleFunc("/claims", s.handleCreateClaim, http.MethodPost)
	r.HandleFunc("/claims/:id", s.handleGetClaim, http.MethodGet)
	r.HandleFunc("/claims/:id", s.handleUpdateClaim, http.MethodPut)
	r.HandleFunc("/claims/:id", s.handleDeleteClaim, http.MethodDelete)
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
