package handlers

import (
	"net/http"

	"github.com/nimaarv/chatspark/internal/services/countries"
)

type CountryHandler struct {
	client *countries.Client
}

func NewCountryHandler(client *countries.Client) *CountryHandler {
	return &CountryHandler{client: client}
}

// GetCountries serves the dial-code directory for the phone entry form.
func (h *CountryHandler) GetCountries(w http.ResponseWriter, r *http.Request) {
	list, err := h.client.List(r.Context())
	if err != nil {
		writeError(w, "Could not load countries", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
