package handler

// Generic HTTP error messages for client responses.
// Handlers and tests both reference these constants.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	ErrMsgPlanFailed          = "Failed to compute plan"
	ErrMsgUnknownItem         = "Unknown item"
	ErrMsgMissingSelection    = "Item has multiple recipes; a recipe selection is required"
	ErrMsgInvalidSelection    = "Selected recipe does not produce the item"
	ErrMsgUnknownRecipe       = "Unknown recipe"
	ErrMsgRecipeCycle         = "Circular recipe dependency"
	ErrMsgRateMustBePositive  = "Rate must be positive"
	ErrMsgGetRecipesFailed    = "Failed to retrieve recipes"
	ErrMsgCatalogReloadFailed = "Failed to reload catalog"
	ErrMsgUnauthorized        = "Unauthorized"
)

// Success messages for API responses
const (
	MsgCatalogReloadedSuccess = "Catalog reloaded successfully"
)
