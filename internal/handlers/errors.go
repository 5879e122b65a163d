package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salonora/salon-booking/internal/httperr"
)

// statusForCode maps domain error codes to HTTP statuses. Codes not
// listed here are treated as validation failures (400).
var statusForCode = map[string]int{
	"not_found":                    http.StatusNotFound,
	"slot_conflict":                http.StatusConflict,
	"invalid_transition":           http.StatusConflict,
	"invalid_state":                http.StatusConflict,
	"cancellation_deadline_passed": http.StatusConflict,
}

// writeDomainError renders a domain BusinessError and reports whether
// it handled err. Non-domain errors fall through to the caller.
func writeDomainError(c *gin.Context, err error) bool {
	be, ok := httperr.AsBusiness(err)
	if !ok {
		return false
	}

	status, found := statusForCode[be.Code]
	if !found {
		status = http.StatusBadRequest
	}

	if be.Field != "" {
		httperr.Field(c, status, be.Field, be.Code)
		return true
	}

	httperr.Write(c, status, be.Code, "")
	return true
}
