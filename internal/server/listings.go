package server

import (
	"net/http"

	"github.com/bsan5566/food-waste/internal/filter"
)

type overviewData struct {
	Counts         any `json:"counts"`
	RecentListings any `json:"recent_listings"`
}

func (s *Service) handleOverview(w http.ResponseWriter, r *http.Request) {
	counts, err := s.reports.Counts(r.Context())
	if err != nil {
		s.renderError(w, err)
		return
	}

	recent, err := s.listingRepo.RecentListings(r.Context())
	if err != nil {
		s.renderError(w, err)
		return
	}

	s.renderJSON(w, http.StatusOK, overviewData{Counts: counts, RecentListings: recent})
}

func (s *Service) handleFilterListings(w http.ResponseWriter, r *http.Request) {
	var sel filter.Selections
	if err := decoder.Decode(&sel, r.URL.Query()); err != nil {
		s.badRequest(w, "invalid filter parameters")
		return
	}

	table, err := s.filters.Listings(r.Context(), sel)
	if err != nil {
		s.renderError(w, err)
		return
	}

	s.renderJSON(w, http.StatusOK, table)
}

func (s *Service) handleFilterOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.filters.Options(r.Context())
	if err != nil {
		s.renderError(w, err)
		return
	}

	s.renderJSON(w, http.StatusOK, opts)
}

func (s *Service) handleAlerts(w http.ResponseWriter, r *http.Request) {
	results, err := s.alerts.Evaluate(r.Context())
	if err != nil {
		s.renderError(w, err)
		return
	}

	s.renderJSON(w, http.StatusOK, results)
}
