package emission

import (
	"net/http"

	"github.com/redmonkez12/carbon-tracker/internal/httputil"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// List returns the emission factor table
// @Summary      List emission factors
// @Tags         emission
// @Produce      json
// @Success      200 {array} Factor
// @Router       /api/emission-factors [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, All(), http.StatusOK)
}
