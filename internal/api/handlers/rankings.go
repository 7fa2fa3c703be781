package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"order-ranking-service/internal/api/dto"
	"order-ranking-service/internal/ports"
	"order-ranking-service/internal/services"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

const (
	// Request bodies larger than this are rejected.
	maxRankingBody = 1 << 20

	statusClientClosedRequest = 499
)

type RankingHandler struct {
	Orders   ports.OrderRepository
	Menu     ports.MenuRepository
	Resolver ports.CoordinateResolver
	Workers  int
}

// ListOpen ranks every open order in the store.
func (h *RankingHandler) ListOpen(w http.ResponseWriter, r *http.Request) {
	report, err := services.RankOpenOrders(r.Context(), h.Orders, h.Menu, h.Resolver, h.Workers)
	if err != nil {
		h.fail(w, r, "rank open orders failed", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewRankingResponse(report))
}

// Rank ranks the orders supplied in the request body against the current menus.
func (h *RankingHandler) Rank(w http.ResponseWriter, r *http.Request) {
	var req dto.RankingRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRankingBody))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	report, err := services.RankOrders(r.Context(), req.ToDomain(), h.Menu, h.Resolver, h.Workers)
	if err != nil {
		h.fail(w, r, "rank orders failed", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewRankingResponse(report))
}

func (h *RankingHandler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	status := http.StatusInternalServerError
	text := "internal server error"
	if ctxErr := r.Context().Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		status = statusClientClosedRequest
		text = "request cancelled"
	}

	log.Error().Err(err).Str("req_id", middleware.GetReqID(r.Context())).Msg(msg)
	writeError(w, r, status, text)
}
