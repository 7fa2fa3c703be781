package handlers

import (
	"net/http"
	"order-ranking-service/internal/api/dto"
	"order-ranking-service/internal/ports"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// ProductHandler exposes the product catalogue used to build ranking requests.
type ProductHandler struct {
	Menu ports.MenuRepository
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.Menu.ListProducts(r.Context())
	if err != nil {
		log.Error().Err(err).Str("req_id", middleware.GetReqID(r.Context())).Msg("list products failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListProductsResponse{
		Products: make([]dto.ProductResponse, 0, len(products)),
	}
	for _, p := range products {
		res.Products = append(res.Products, dto.ProductResponse{
			ProductID: p.ProductID,
			Name:      p.Name,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
