package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/bsan5566/food-waste/internal/report"

	"github.com/alexedwards/flow"
)

func (s *Service) handleReportNames(w http.ResponseWriter, _ *http.Request) {
	s.renderJSON(w, http.StatusOK, report.Names)
}

func (s *Service) handleRunReport(w http.ResponseWriter, r *http.Request) {
	name := report.ReportName(flow.Param(r.Context(), "name"))

	table, err := s.reports.Run(r.Context(), name)
	if err != nil {
		s.renderError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		filename := strings.ToLower(strings.ReplaceAll(string(name), " ", "_")) + ".csv"
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		if err := report.WriteCSV(w, table); err != nil {
			s.logger.WithError(err).Error("failed to write csv report")
		}
		return
	}

	s.renderJSON(w, http.StatusOK, table)
}

func (s *Service) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := s.reports.Dashboard(r.Context())
	if err != nil {
		s.renderError(w, err)
		return
	}

	s.renderJSON(w, http.StatusOK, dashboard)
}

func (s *Service) handleInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := s.reports.Insights(r.Context())
	if err != nil {
		s.renderError(w, err)
		return
	}

	s.renderJSON(w, http.StatusOK, insights)
}
