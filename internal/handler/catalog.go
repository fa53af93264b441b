package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veldra/planforge/internal/domain"
	"github.com/veldra/planforge/internal/logger"
	"github.com/veldra/planforge/internal/planner"
)

// HandleGetCatalog returns counts and the content hash of the loaded catalog.
func HandleGetCatalog(service planner.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, service.CatalogInfo(r.Context()))
	}
}

// HandleGetItems lists all catalog items in definition order.
func HandleGetItems(service planner.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, DataResponse{Data: service.Items(r.Context())})
	}
}

// HandleGetItemRecipes lists the recipes producing one item. Raw items
// yield an empty list; an item with several entries needs a selection in
// plan requests.
func HandleGetItemRecipes(service planner.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID := chi.URLParam(r, "itemID")

		recipes, err := service.RecipesFor(r.Context(), itemID)
		if err != nil {
			if errors.Is(err, domain.ErrUnknownItem) {
				respondJSON(w, http.StatusNotFound, ErrorResponse{Error: ErrMsgUnknownItem, Item: itemID})
				return
			}
			logger.FromContext(r.Context()).Error("Failed to get recipes", "item", itemID, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgGetRecipesFailed)
			return
		}

		if recipes == nil {
			recipes = []domain.Recipe{}
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: recipes})
	}
}

// HandleGetMachines lists all machine types in definition order.
func HandleGetMachines(service planner.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, DataResponse{Data: service.Machines(r.Context())})
	}
}

// HandleReloadCatalog re-reads the definition files and swaps the catalog
// atomically. Load failures leave the previous catalog serving.
func HandleReloadCatalog(service planner.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := service.Reload(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Error("Catalog reload failed", "error", err)
			respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ErrMsgCatalogReloadFailed})
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Message: MsgCatalogReloadedSuccess, Data: info})
	}
}
