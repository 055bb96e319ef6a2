package server

import (
	"net/http"
	"strconv"

	"github.com/bsan5566/food-waste/internal/catalog"

	"github.com/alexedwards/flow"
)

func (s *Service) handleQueryNames(w http.ResponseWriter, _ *http.Request) {
	s.renderJSON(w, http.StatusOK, catalog.Names)
}

func (s *Service) handleRunQuery(w http.ResponseWriter, r *http.Request) {
	name := catalog.QueryName(flow.Param(r.Context(), "name"))

	var params catalog.Params
	if city := r.URL.Query().Get("city"); city != "" {
		params.City = &city
	}
	if daysRaw := r.URL.Query().Get("days"); daysRaw != "" {
		days, err := strconv.Atoi(daysRaw)
		if err != nil || days < 0 {
			s.badRequest(w, "days must be a non-negative integer")
			return
		}
		params.Days = &days
	}

	table, err := s.catalog.Run(r.Context(), name, params)
	if err != nil {
		s.renderError(w, err)
		return
	}

	s.renderJSON(w, http.StatusOK, table)
}
