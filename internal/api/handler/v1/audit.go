package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/palpita/lottery-api/internal/api/handler/v1/response"
	"github.com/palpita/lottery-api/internal/domain"
)

type AuditService interface {
	List(ctx context.Context, entity string, limit, offset int) ([]domain.AuditLog, error)
}

type AuditHandler struct {
	svc  AuditService
	uSvc UserService
}

func NewAuditHandler(svc AuditService, uSvc UserService) *AuditHandler {
	return &AuditHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleGetAuditLogs godoc
// @Summary      List configuration audit entries
// @Tags         audit
// @Produce      json
// @Param        entity  query  string  false  "Filter by entity (e.g. area_config)"
// @Param        limit   query  int     false  "Page size (default 50, max 200)"
// @Param        offset  query  int     false  "Offset"
// @Success      200  {array}   domain.AuditLog
// @Failure      403  {object}  response.Err
// @Router       /audit-logs [get]
// @Security BearerAuth
func (h *AuditHandler) HandleGetAuditLogs(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if respErr = requireManager(user); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	limit, offset := parsePagination(ctx)

	logs, err := h.svc.List(ctx.Request.Context(), ctx.Query("entity"), limit, offset)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetAuditLogs -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, logs)
}
