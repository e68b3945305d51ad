package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/palpita/lottery-api/internal/api/handler/v1/request"
	"github.com/palpita/lottery-api/internal/api/handler/v1/response"
	"github.com/palpita/lottery-api/internal/domain"
)

type CompanyService interface {
	Create(ctx context.Context, company domain.Company) (domain.Company, error)
	FindAll(ctx context.Context) ([]domain.Company, error)
}

type CompanyHandler struct {
	svc  CompanyService
	uSvc UserService
}

func NewCompanyHandler(svc CompanyService, uSvc UserService) *CompanyHandler {
	return &CompanyHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateCompany godoc
// @Summary      Register a tenant company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateCompanyRequest  true  "Company"
// @Success      201    {object}  domain.Company
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Router       /companies [post]
// @Security BearerAuth
func (h *CompanyHandler) HandleCreateCompany(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if !user.IsPlatformAdmin() {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not a platform admin", user.ID)))
		return
	}

	var input request.CreateCompanyRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	company, err := h.svc.Create(ctx.Request.Context(), domain.Company{
		Name:     input.Name,
		Document: input.Document,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateCompany -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, company)
}

// HandleGetCompanies godoc
// @Summary      List tenant companies
// @Tags         companies
// @Produce      json
// @Success      200  {array}   domain.Company
// @Failure      403  {object}  response.Err
// @Router       /companies [get]
// @Security BearerAuth
func (h *CompanyHandler) HandleGetCompanies(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if !user.IsPlatformAdmin() {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not a platform admin", user.ID)))
		return
	}

	companies, err := h.svc.FindAll(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetCompanies -> h.svc.FindAll -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, companies)
}
