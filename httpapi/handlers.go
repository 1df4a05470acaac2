package httpapi

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/aouyang1/go-oceanheat/store"
	"github.com/gorilla/mux"
)

// BirthYearParam optionally adds the personal impact to a report.
const BirthYearParam = "birth_year"

func (s *Server) getSeries(w http.ResponseWriter, req *http.Request) {
	series, err := s.analyzer.Series()
	if err != nil {
		s.writeError(w, req, err)
		return
	}
	s.write(w, req, http.StatusOK, series)
}

func (s *Server) getStats(w http.ResponseWriter, req *http.Request) {
	st, err := s.analyzer.ImpactStats()
	if err != nil {
		s.writeError(w, req, err)
		return
	}
	s.write(w, req, http.StatusOK, st)
}

func (s *Server) getPersonal(w http.ResponseWriter, req *http.Request) {
	year, err := strconv.Atoi(mux.Vars(req)["year"])
	if err != nil {
		s.write(w, req, http.StatusBadRequest, errorResponse{Error: "birth year must be an integer"})
		return
	}

	p, err := s.analyzer.PersonalImpact(year)
	if err != nil {
		s.writeError(w, req, err)
		return
	}
	s.write(w, req, http.StatusOK, p)
}

func (s *Server) getReport(w http.ResponseWriter, req *http.Request) {
	var birthYear *int
	if raw := req.URL.Query().Get(BirthYearParam); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			s.write(w, req, http.StatusBadRequest, errorResponse{Error: "birth year must be an integer"})
			return
		}
		birthYear = &year
	}

	r, err := s.analyzer.Report(birthYear)
	if err != nil {
		s.writeError(w, req, err)
		return
	}
	s.write(w, req, http.StatusOK, r)
}

func (s *Server) postReload(w http.ResponseWriter, req *http.Request) {
	st, err := s.analyzer.Reload(req.Context())
	if err != nil {
		s.logger.Warnw("reload failed", "error", err)
		s.writeError(w, req, err)
		return
	}
	s.write(w, req, http.StatusOK, st)
}

func (s *Server) getChart(w http.ResponseWriter, req *http.Request) {
	var buf bytes.Buffer
	if err := s.analyzer.RenderChart(&buf); err != nil {
		s.writeError(w, req, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Errorw("unable to write chart", "error", err)
	}
}

func (s *Server) getHealth(w http.ResponseWriter, req *http.Request) {
	s.write(w, req, http.StatusOK, map[string]bool{"loaded": s.analyzer.Loaded()})
}

func (s *Server) write(w http.ResponseWriter, req *http.Request, status int, data any) {
	if err := writeResponse(w, req, status, data); err != nil {
		s.logger.Errorw("unable to encode response", "path", req.URL.Path, "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, req *http.Request, err error) {
	s.write(w, req, statusFor(err), errorResponse{Error: s.analyzer.ErrorMessage(err)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotLoaded):
		return http.StatusServiceUnavailable
	case errors.Is(err, store.ErrFetch):
		return http.StatusBadGateway
	case errors.Is(err, store.ErrEmptyData):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
