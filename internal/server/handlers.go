package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/erikjuhani/droll/internal/errors"
	"github.com/erikjuhani/droll/internal/history"
	"github.com/erikjuhani/droll/internal/notation"
	"github.com/erikjuhani/droll/internal/platform/id"
	"github.com/erikjuhani/droll/internal/roller"
	"go.opentelemetry.io/otel/attribute"
)

const maxListLimit = 200

type rollRequest struct {
	Notation string `json:"notation"`
	Seed     *int64 `json:"seed,omitempty"`
}

type rollResponse struct {
	ID       string    `json:"id"`
	Notation string    `json:"notation"`
	Rendered string    `json:"rendered"`
	Result   int       `json:"result"`
	Seed     *int64    `json:"seed,omitempty"`
	RolledAt time.Time `json:"rolled_at"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) handleRoll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req rollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Wrap(apperrors.CodeRollInvalidBody, "invalid roll request body", err))
		return
	}

	notationText := strings.TrimSpace(req.Notation)
	if notationText == "" {
		writeError(w, apperrors.New(apperrors.CodeRollNotationEmpty, "dice notation is required"))
		return
	}

	ctx, span := s.tracer.Start(r.Context(), "droll.roll")
	defer span.End()
	span.SetAttributes(attribute.String("droll.notation", notationText))

	expr, err := notation.Parse(notationText)
	if err != nil {
		writeError(w, err)
		return
	}

	source := s.source
	if req.Seed != nil {
		source = roller.Seeded(*req.Seed)
	}
	result := notation.Eval(source)(expr)
	span.SetAttributes(attribute.Int("droll.result", result))

	recordID, err := id.NewID()
	if err != nil {
		writeError(w, err)
		return
	}

	record := history.Record{
		ID:       recordID,
		Notation: notationText,
		Rendered: expr.String(),
		Result:   result,
		Seed:     req.Seed,
		RolledAt: time.Now().UTC(),
	}
	if err := s.store.Put(ctx, record); err != nil {
		writeError(w, err)
		return
	}

	response := recordResponse(record)
	s.hub.broadcast(response)
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleListRolls(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, apperrors.New(apperrors.CodeRollInvalidLimit, "limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	records, err := s.store.List(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	responses := make([]rollResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, recordResponse(record))
	}
	writeJSON(w, http.StatusOK, map[string][]rollResponse{"rolls": responses})
}

func (s *Server) handleGetRoll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	recordID := strings.TrimPrefix(r.URL.Path, "/rolls/")
	if recordID == "" || strings.Contains(recordID, "/") {
		writeError(w, apperrors.New(apperrors.CodeHistoryEmptyID, "roll record id is required"))
		return
	}

	record, err := s.store.Get(r.Context(), recordID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recordResponse(record))
}

func recordResponse(record history.Record) rollResponse {
	return rollResponse{
		ID:       record.ID,
		Notation: record.Notation,
		Rendered: record.Rendered,
		Result:   record.Result,
		Seed:     record.Seed,
		RolledAt: record.RolledAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := apperrors.CodeOf(err)
	writeJSON(w, code.HTTPStatus(), errorResponse{
		Error: err.Error(),
		Code:  string(code),
	})
}
