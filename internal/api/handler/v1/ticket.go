package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/palpita/lottery-api/internal/api/handler/v1/request"
	"github.com/palpita/lottery-api/internal/api/handler/v1/response"
	"github.com/palpita/lottery-api/internal/domain"
	"github.com/palpita/lottery-api/internal/service"
)

type TicketService interface {
	Issue(ctx context.Context, companyID *uint, input service.IssueTicketInput) (domain.Ticket, error)
	FindByArea(ctx context.Context, areaID uint, companyID *uint, limit, offset int) ([]domain.Ticket, error)
}

type TicketHandler struct {
	svc  TicketService
	uSvc UserService
}

func NewTicketHandler(svc TicketService, uSvc UserService) *TicketHandler {
	return &TicketHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleIssueTicket godoc
// @Summary      Sell a ticket
// @Description  Charges the buyer, stamps the ticket with the area's current series and next serial, and cycles the series when the game's maximum per series is reached.
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        input  body      request.IssueTicketRequest  true  "Sale"
// @Success      201    {object}  domain.Ticket
// @Failure      400    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /tickets [post]
// @Security BearerAuth
func (h *TicketHandler) HandleIssueTicket(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.IssueTicketRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	ticket, err := h.svc.Issue(ctx.Request.Context(), user.Tenant(), service.IssueTicketInput{
		AreaID:          input.AreaID,
		GameID:          input.GameID,
		BuyerName:       input.BuyerName,
		PaymentMethodID: input.PaymentMethodID,
		SoldByID:        user.ID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAreaNotFound):
			response.RenderErr(ctx, response.ErrNotFound("area", "ID", input.AreaID))
		case errors.Is(err, service.ErrGameNotFound):
			response.RenderErr(ctx, response.ErrNotFound("game", "ID", input.GameID))
		case errors.Is(err, service.ErrGameInactive),
			errors.Is(err, service.ErrTenantMismatch):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleIssueTicket -> h.svc.Issue -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, ticket)
}

// HandleGetAreaTickets godoc
// @Summary      List tickets sold in an area
// @Tags         tickets
// @Produce      json
// @Param        areaID  path   int  true   "Area ID"
// @Param        limit   query  int  false  "Page size (default 50, max 200)"
// @Param        offset  query  int  false  "Offset"
// @Success      200  {array}   domain.Ticket
// @Failure      401  {object}  response.Err
// @Router       /areas/{areaID}/tickets [get]
// @Security BearerAuth
func (h *TicketHandler) HandleGetAreaTickets(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	areaID, respErr := parseUintParam(ctx, "areaID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	limit, offset := parsePagination(ctx)

	tickets, err := h.svc.FindByArea(ctx.Request.Context(), areaID, user.Tenant(), limit, offset)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetAreaTickets -> h.svc.FindByArea -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, tickets)
}
