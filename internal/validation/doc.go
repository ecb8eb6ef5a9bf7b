// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

/*
Package validation validates API request structs with go-playground/validator.

A single validator instance is shared by all handlers; it caches struct
metadata and is safe for concurrent use. Besides the built-in tags it knows:

  - seoul_district: the value is one of the 25 Seoul district names
  - budget_step: an integer budget bound is a multiple of 5000 won

Request types that embed Budget are also checked for min_budget <= max_budget.

Errors come back as *RequestValidationError, which converts to the API's
VALIDATION_ERROR body with ToAPIError:

	type recommendRequest struct {
		District string `json:"district" validate:"required,seoul_district"`
		validation.Budget
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}
*/
package validation
