package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	auditdb "github.com/librarium/bibliotheque/internal/database/audit"
	"github.com/librarium/bibliotheque/internal/entities"
)

type AuditController struct {
	repo *auditdb.Repository
}

func NewAuditController(repo *auditdb.Repository) *AuditController {
	return &AuditController{repo: repo}
}

// ListEvents returns paginated audit events, most recent first.
// Supports ?type=catalog|circulation|auth, ?limit and ?offset.
func (controller *AuditController) ListEvents(c *gin.Context) {
	limit, offset := parsePagination(c)

	var (
		events []entities.AuditEvent
		total  int64
		err    error
	)
	if eventType := c.Query("type"); eventType != "" {
		events, total, err = controller.repo.GetEventsByType(entities.AuditEventType(eventType), limit, offset)
	} else {
		events, total, err = controller.repo.GetEvents(limit, offset)
	}
	if err != nil {
		respondInternalError(c, err, "list audit events")
		return
	}

	c.IndentedJSON(http.StatusOK, PaginatedResponse{
		Data:    events,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(events)) < total,
	})
}
