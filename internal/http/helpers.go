package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/librarium/bibliotheque/internal/circulation"
	"github.com/librarium/bibliotheque/internal/database"
	"github.com/librarium/bibliotheque/internal/validation"
)

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"` // set for validation failures
	Details any    `json:"details,omitempty"`
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// PaginatedResponse wraps paginated data with metadata.
type PaginatedResponse struct {
	Data    any   `json:"data"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"has_more"`
}

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondConflict sends a 409 Conflict response.
func respondConflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, ErrorResponse{Error: message})
}

// respondInternalError logs the error and sends a 500 response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// respondStoreError maps a repository or circulation error to a status
// code. The resource name is used for 404 bodies.
func respondStoreError(c *gin.Context, err error, resource string) {
	var vErr *validation.Error
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: vErr.Message, Field: vErr.Field})
	case errors.Is(err, database.ErrNotFound):
		respondNotFound(c, resource)
	case errors.Is(err, database.ErrConflict):
		respondConflict(c, err.Error())
	case errors.Is(err, circulation.ErrBookNotFound):
		respondNotFound(c, "book")
	case errors.Is(err, circulation.ErrMemberNotFound):
		respondNotFound(c, "member")
	case errors.Is(err, circulation.ErrNoCopiesAvailable):
		respondConflict(c, "no copies available")
	case errors.Is(err, circulation.ErrAlreadyReturned):
		respondConflict(c, "loan already returned")
	default:
		respondInternalError(c, err, resource)
	}
}

// parseIDParam extracts and validates an unsigned integer ID from URL
// parameters. Responds with a 400 and returns (0, false) on failure.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parseQueryID extracts and validates an unsigned integer ID from query
// parameters. Responds with a 400 and returns (0, false) on failure.
func parseQueryID(c *gin.Context, paramName string) (uint, bool) {
	id, err := strconv.ParseUint(c.Query(paramName), 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parsePagination reads limit/offset query parameters with defaults.
func parsePagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}
