package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sort"

	"github.com/google/uuid"

	"github.com/jonathan/career-insights/internal/analysis"
	"github.com/jonathan/career-insights/internal/catalog"
	"github.com/jonathan/career-insights/internal/schemas"
	"github.com/jonathan/career-insights/internal/statcan"
	"github.com/jonathan/career-insights/internal/types"
)

// AnalyzeRequest represents the request body for /analyze. Either a selection
// (field, education, region) to fetch from Statistics Canada, or an inline
// snapshot to analyze as-is.
type AnalyzeRequest struct {
	Field     string `json:"field,omitempty"`
	Subfield  string `json:"subfield,omitempty"`
	Education string `json:"education,omitempty"`
	Region    string `json:"region,omitempty"`

	Snapshot json.RawMessage `json:"snapshot,omitempty"`

	// Analyses restricts which analyses run; empty means all nine.
	Analyses []string `json:"analyses,omitempty"`
}

// AnalyzeResponse represents the response for /analyze
type AnalyzeResponse struct {
	RequestID string             `json:"request_id"`
	Selection *statcan.Selection `json:"selection,omitempty"`
	FromCache bool               `json:"from_cache"`
	Results   analysis.ResultSet `json:"results"`
}

// MatchRequest represents the request body for /match
type MatchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// MatchResponse represents the response for /match
type MatchResponse struct {
	Query   string          `json:"query"`
	Matches []catalog.Match `json:"matches"`
}

// handleAnalyze runs the analysis suite for a selection or an inline snapshot
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	names, err := resolveAnalysisNames(req.Analyses)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	requestID := uuid.New().String()

	var (
		snap      *types.SurveySnapshot
		selection *statcan.Selection
		fromCache bool
	)

	if len(req.Snapshot) > 0 {
		snap, err = s.decodeSnapshot(req.Snapshot)
		if err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
	} else {
		sel := statcan.Selection{
			Field:     req.Field,
			Subfield:  req.Subfield,
			Education: req.Education,
			Region:    req.Region,
		}
		if err := s.validate.Struct(sel); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "field and education are required when no snapshot is given")
			return
		}

		log.Printf("Fetching snapshot for %q / %q / %q (request %s)",
			sel.Field, sel.Education, sel.Region, requestID)

		cached, err := s.snapshots.Snapshot(r.Context(), sel)
		if err != nil {
			unavailable := &ErrSnapshotUnavailable{Cause: err}
			s.errorResponse(w, HTTPStatus(unavailable), unavailable.Error())
			return
		}
		snap = cached.Snapshot
		fromCache = cached.FromCache
		selection = &sel
	}

	results := analysis.RunAll(snap, analysis.Options{
		Costs:         s.cfg.CostTable(),
		ShortNames:    catalog.ShortNames(),
		ResolveSeries: catalog.UnemploymentSeriesKey,
	})

	if len(names) < len(analysis.AnalysisNames) {
		filtered := make(analysis.ResultSet, len(names))
		for _, name := range names {
			filtered[name] = results[name]
		}
		results = filtered
	}

	s.jsonResponse(w, http.StatusOK, AnalyzeResponse{
		RequestID: requestID,
		Selection: selection,
		FromCache: fromCache,
		Results:   results,
	})
}

// decodeSnapshot validates an inline snapshot against the JSON schema and
// unmarshals it.
func (s *Server) decodeSnapshot(raw json.RawMessage) (*types.SurveySnapshot, error) {
	if err := schemas.ValidateBytes(s.schemaPath, raw); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return nil, &ErrValidation{Field: "snapshot", Message: validationErr.Error()}
		}
		return nil, err
	}

	var snap types.SurveySnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, &ErrValidation{Field: "snapshot", Message: err.Error()}
	}
	return &snap, nil
}

// resolveAnalysisNames checks requested analysis names against the known set.
// An empty request means all analyses.
func resolveAnalysisNames(requested []string) ([]string, error) {
	if len(requested) == 0 {
		return analysis.AnalysisNames, nil
	}
	known := make(map[string]bool, len(analysis.AnalysisNames))
	for _, name := range analysis.AnalysisNames {
		known[name] = true
	}
	for _, name := range requested {
		if !known[name] {
			return nil, &ErrUnknownAnalysis{Name: name}
		}
	}
	return requested, nil
}

// handleMatch resolves a free-text field-of-study query
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.Query == "" {
		s.errorResponse(w, http.StatusBadRequest, "query is required")
		return
	}

	matches := catalog.MatchFields(req.Query)
	if req.Limit > 0 && len(matches) > req.Limit {
		matches = matches[:req.Limit]
	}
	if matches == nil {
		matches = []catalog.Match{}
	}

	s.jsonResponse(w, http.StatusOK, MatchResponse{
		Query:   req.Query,
		Matches: matches,
	})
}

// FieldInfo is one entry of the /catalog/fields listing
type FieldInfo struct {
	ID        types.FieldID `json:"id"`
	Name      string        `json:"name"`
	ShortName string        `json:"short_name"`
	Subfields []string      `json:"subfields,omitempty"`
}

// handleListFields lists the broad fields of study
func (s *Server) handleListFields(w http.ResponseWriter, _ *http.Request) {
	fields := catalog.Fields()
	out := make([]FieldInfo, 0, len(fields))
	for _, f := range fields {
		info := FieldInfo{ID: f.ID, Name: f.Name, ShortName: f.ShortName}
		for name := range f.Subfields {
			info.Subfields = append(info.Subfields, name)
		}
		sort.Strings(info.Subfields)
		out = append(out, info)
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"fields": out})
}

// EducationLevelInfo is one entry of the /catalog/education-levels listing
type EducationLevelInfo struct {
	Name          string  `json:"name"`
	StatCanLabel  string  `json:"statcan_label"`
	AnnualCost    float64 `json:"annual_cost"`
	DurationYears int     `json:"duration_years"`
}

// handleListEducationLevels lists the canonical education levels in
// ascending order
func (s *Server) handleListEducationLevels(w http.ResponseWriter, _ *http.Request) {
	levels := catalog.EducationLevels()
	out := make([]EducationLevelInfo, 0, len(levels))
	for _, l := range levels {
		out = append(out, EducationLevelInfo{
			Name:          l.Name,
			StatCanLabel:  l.StatCanLabel,
			AnnualCost:    l.AnnualCost,
			DurationYears: l.DurationYears,
		})
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"education_levels": out})
}

// handleListRegions lists the supported geographies
func (s *Server) handleListRegions(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"regions": catalog.RegionNames()})
}

// handleListAnalyses lists the analysis names accepted by /analyze
func (s *Server) handleListAnalyses(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"analyses": analysis.AnalysisNames})
}
