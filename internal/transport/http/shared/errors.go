package shared

import (
	"errors"
	"net/http"

	"ptotracker/internal/domain/pto"
	"ptotracker/internal/transport/http/api"
)

// RespondDomainError maps a ledger error onto the HTTP surface. Unknown
// errors collapse to a 500 with the given fallback code and message.
func RespondDomainError(w http.ResponseWriter, err error, requestID, fallbackCode, fallbackMessage string) {
	var validation *pto.ValidationError
	switch {
	case errors.As(err, &validation):
		issues := make([]ValidationIssue, 0, len(validation.Issues))
		for _, issue := range validation.Issues {
			issues = append(issues, ValidationIssue{Field: issue.Field, Reason: issue.Reason})
		}
		FailValidation(w, requestID, issues)
	case errors.Is(err, pto.ErrInsufficientHours):
		api.Fail(w, http.StatusBadRequest, "insufficient_hours", err.Error(), requestID)
	case errors.Is(err, pto.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "resource not found", requestID)
	case errors.Is(err, pto.ErrDuplicateCode):
		api.Fail(w, http.StatusConflict, "duplicate_code", "code must be unique", requestID)
	case errors.Is(err, pto.ErrTypeInUse):
		api.Fail(w, http.StatusConflict, "type_in_use", "cannot delete PTO type; it is in use, deactivate instead", requestID)
	case errors.Is(err, pto.ErrForbidden):
		api.Fail(w, http.StatusForbidden, "forbidden", err.Error(), requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, fallbackCode, fallbackMessage, requestID)
	}
}
