package handlers

import "baseware/internal/response"

// Re-export response functions for convenience
var (
	SendSuccess         = response.SendSuccess
	SendSuccessNoData   = response.SendSuccessNoData
	SendError           = response.SendError
	SendValidationError = response.SendValidationError
)
