package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/veldra/planforge/internal/domain"
	"github.com/veldra/planforge/internal/logger"
	"github.com/veldra/planforge/internal/planner"
)

// PlanRequest is the body of POST /api/v1/plan.
type PlanRequest struct {
	ItemID     string            `json:"item_id" validate:"required"`
	Rate       float64           `json:"rate" validate:"required,gt=0"`
	Mode       string            `json:"mode,omitempty" validate:"projection_mode"`
	Selections map[string]string `json:"selections,omitempty"`
}

// HandlePlan computes the production plan for one item at a target rate.
func HandlePlan(service planner.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req PlanRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Plan"); err != nil {
			return
		}

		result, err := service.Plan(r.Context(), domain.PlanRequest{
			ItemID:     req.ItemID,
			Rate:       req.Rate,
			Mode:       domain.ProjectionMode(req.Mode),
			Selections: req.Selections,
		})
		if err != nil {
			respondPlanError(w, log.Warn, err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// respondPlanError classifies core errors into HTTP responses. Resolution
// failures are the caller's to fix (bad item, missing selection, cyclic
// data choice) and carry the offending item or chain; aggregation and
// data errors indicate broken catalog data and stay server-side.
func respondPlanError(w http.ResponseWriter, logf func(string, ...any), err error) {
	var resErr *domain.ResolutionError
	if errors.As(err, &resErr) {
		resp := ErrorResponse{Item: resErr.ItemID}
		status := http.StatusUnprocessableEntity

		switch {
		case errors.Is(err, domain.ErrUnknownItem):
			resp.Error = ErrMsgUnknownItem
			status = http.StatusNotFound
		case errors.Is(err, domain.ErrMissingSelection):
			resp.Error = ErrMsgMissingSelection
		case errors.Is(err, domain.ErrInvalidSelection):
			resp.Error = ErrMsgInvalidSelection
		case errors.Is(err, domain.ErrUnknownRecipe):
			resp.Error = ErrMsgUnknownRecipe
		case errors.Is(err, domain.ErrNonPositiveRate):
			resp.Error = ErrMsgRateMustBePositive
			status = http.StatusBadRequest
		case errors.Is(err, domain.ErrRecipeCycle):
			resp.Error = ErrMsgRecipeCycle
			resp.Chain = strings.Join(resErr.Chain, " -> ")
		default:
			resp.Error = ErrMsgInvalidRequestSummary
		}

		logf("Plan rejected", "error", err)
		respondJSON(w, status, resp)
		return
	}

	logf("Plan failed", "error", err)
	respondError(w, http.StatusInternalServerError, ErrMsgPlanFailed)
}
