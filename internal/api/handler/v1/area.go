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

type AreaService interface {
	Create(ctx context.Context, area domain.Area) (domain.Area, error)
	FindAll(ctx context.Context, companyID *uint) ([]domain.Area, error)
	FindByID(ctx context.Context, id uint, companyID *uint) (domain.Area, error)
	Update(ctx context.Context, id uint, companyID *uint, patch domain.AreaPatch) (domain.Area, error)
	Delete(ctx context.Context, id uint, companyID *uint) error
	CycleSeries(ctx context.Context, id uint, companyID *uint) (domain.Area, error)
	UpsertConfig(ctx context.Context, conf domain.AreaConfig, adminID *uint) (domain.AreaConfig, error)
	DeleteConfig(ctx context.Context, areaID, gameID uint, adminID *uint) error
}

type AreaHandler struct {
	svc  AreaService
	gSvc GameService
	uSvc UserService
}

func NewAreaHandler(svc AreaService, gSvc GameService, uSvc UserService) *AreaHandler {
	return &AreaHandler{
		svc:  svc,
		gSvc: gSvc,
		uSvc: uSvc,
	}
}

// HandleCreateArea godoc
// @Summary      Create a sales area
// @Description  Registers an area and initializes its series counter at the configured series number.
// @Tags         areas
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateAreaRequest  true  "Area details"
// @Success      201    {object}  domain.Area
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /areas [post]
// @Security BearerAuth
func (h *AreaHandler) HandleCreateArea(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if respErr = requireManager(user); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.CreateAreaRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	companyID, respErr := resolveCompanyID(user, input.CompanyID)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	area, err := h.svc.Create(ctx.Request.Context(), domain.Area{
		Name:         input.Name,
		City:         input.City,
		State:        input.State,
		CompanyID:    companyID,
		SeriesNumber: input.SeriesNumber,
	})
	if err != nil {
		if errors.Is(err, service.ErrMalformedSeries) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateArea -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, area)
}

// HandleGetAreas godoc
// @Summary      List areas
// @Description  Lists the caller's company areas; platform admins see all tenants.
// @Tags         areas
// @Produce      json
// @Success      200  {array}   domain.Area
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /areas [get]
// @Security BearerAuth
func (h *AreaHandler) HandleGetAreas(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	areas, err := h.svc.FindAll(ctx.Request.Context(), user.Tenant())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetAreas -> h.svc.FindAll -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, areas)
}

// HandleGetArea godoc
// @Summary      Get one area
// @Tags         areas
// @Produce      json
// @Param        areaID  path      int  true  "Area ID"
// @Success      200  {object}  domain.Area
// @Failure      404  {object}  response.Err
// @Router       /areas/{areaID} [get]
// @Security BearerAuth
func (h *AreaHandler) HandleGetArea(ctx *gin.Context) {
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

	area, err := h.svc.FindByID(ctx.Request.Context(), areaID, user.Tenant())
	if err != nil {
		if errors.Is(err, service.ErrAreaNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("area", "ID", areaID))
			return
		}

		err = fmt.Errorf("v1.HandleGetArea -> h.svc.FindByID -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, area)
}

// HandleUpdateArea godoc
// @Summary      Update an area
// @Description  Patches area attributes. Supplying series_number reconfigures the series counter: the current series becomes that value and the ticket count resets.
// @Tags         areas
// @Accept       json
// @Produce      json
// @Param        areaID  path      int                        true  "Area ID"
// @Param        input   body      request.UpdateAreaRequest  true  "Patch"
// @Success      200  {object}  domain.Area
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /areas/{areaID} [patch]
// @Security BearerAuth
func (h *AreaHandler) HandleUpdateArea(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if respErr = requireManager(user); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	areaID, respErr := parseUintParam(ctx, "areaID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.UpdateAreaRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	area, err := h.svc.Update(ctx.Request.Context(), areaID, user.Tenant(), domain.AreaPatch{
		Name:         input.Name,
		City:         input.City,
		State:        input.State,
		SeriesNumber: input.SeriesNumber,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAreaNotFound):
			response.RenderErr(ctx, response.ErrNotFound("area", "ID", areaID))
		case errors.Is(err, service.ErrMalformedSeries):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateArea -> h.svc.Update -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, area)
}

// HandleDeleteArea godoc
// @Summary      Delete an area
// @Description  Fails with 409 when tickets or other records still reference the area; deactivate instead.
// @Tags         areas
// @Produce      json
// @Param        areaID  path  int  true  "Area ID"
// @Success      204
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Router       /areas/{areaID} [delete]
// @Security BearerAuth
func (h *AreaHandler) HandleDeleteArea(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if respErr = requireManager(user); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	areaID, respErr := parseUintParam(ctx, "areaID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), areaID, user.Tenant()); err != nil {
		switch {
		case errors.Is(err, service.ErrAreaNotFound):
			response.RenderErr(ctx, response.ErrNotFound("area", "ID", areaID))
		case errors.Is(err, service.ErrAreaHasDependents):
			response.RenderErr(ctx, response.ErrConflict("area has dependent records; deactivate it instead of deleting"))
		default:
			err = fmt.Errorf("v1.HandleDeleteArea -> h.svc.Delete -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleCycleSeries godoc
// @Summary      Advance an area to its next series
// @Description  Increments the current series (zero-padded to at least 4 digits) and resets the ticket count.
// @Tags         areas
// @Produce      json
// @Param        areaID  path  int  true  "Area ID"
// @Success      200  {object}  domain.Area
// @Failure      404  {object}  response.Err
// @Router       /areas/{areaID}/cycle-series [post]
// @Security BearerAuth
func (h *AreaHandler) HandleCycleSeries(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if respErr = requireManager(user); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	areaID, respErr := parseUintParam(ctx, "areaID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	area, err := h.svc.CycleSeries(ctx.Request.Context(), areaID, user.Tenant())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAreaNotFound):
			response.RenderErr(ctx, response.ErrNotFound("area", "ID", areaID))
		case errors.Is(err, service.ErrMalformedSeries):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleCycleSeries -> h.svc.CycleSeries -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, area)
}

// HandleUpsertAreaConfig godoc
// @Summary      Create or update the (area, game) commercial override
// @Description  Upserts keyed on the (area, game) pair; repeated calls never create a second row. The change is audit-logged.
// @Tags         areas
// @Accept       json
// @Produce      json
// @Param        areaID  path      int                              true  "Area ID"
// @Param        gameID  path      int                              true  "Game ID"
// @Param        input   body      request.UpsertAreaConfigRequest  true  "Overrides"
// @Success      200  {object}  domain.AreaConfig
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /areas/{areaID}/games/{gameID}/config [put]
// @Security BearerAuth
func (h *AreaHandler) HandleUpsertAreaConfig(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if respErr = requireManager(user); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	areaID, respErr := parseUintParam(ctx, "areaID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	gameID, respErr := parseUintParam(ctx, "gameID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	// Ownership checks before any write: both sides of the (area, game)
	// pair must exist inside the caller's tenant.
	if _, err := h.svc.FindByID(ctx.Request.Context(), areaID, user.Tenant()); err != nil {
		if errors.Is(err, service.ErrAreaNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("area", "ID", areaID))
			return
		}

		err = fmt.Errorf("v1.HandleUpsertAreaConfig -> h.svc.FindByID -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}
	if _, err := h.gSvc.FindByID(ctx.Request.Context(), gameID, user.Tenant()); err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("game", "ID", gameID))
			return
		}

		err = fmt.Errorf("v1.HandleUpsertAreaConfig -> h.gSvc.FindByID -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	var input request.UpsertAreaConfigRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	adminID := user.ID
	conf, err := h.svc.UpsertConfig(ctx.Request.Context(), domain.AreaConfig{
		AreaID:          areaID,
		GameID:          gameID,
		CommissionRate:  input.CommissionRate,
		PrizeMultiplier: input.PrizeMultiplier,
		MaxLiability:    input.MaxLiability,
		ExtractionTimes: input.ExtractionTimes,
	}, &adminID)
	if err != nil {
		err = fmt.Errorf("v1.HandleUpsertAreaConfig -> h.svc.UpsertConfig -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, conf)
}

// HandleDeleteAreaConfig godoc
// @Summary      Delete the (area, game) commercial override
// @Tags         areas
// @Produce      json
// @Param        areaID  path  int  true  "Area ID"
// @Param        gameID  path  int  true  "Game ID"
// @Success      204
// @Failure      404  {object}  response.Err
// @Router       /areas/{areaID}/games/{gameID}/config [delete]
// @Security BearerAuth
func (h *AreaHandler) HandleDeleteAreaConfig(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if respErr = requireManager(user); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	areaID, respErr := parseUintParam(ctx, "areaID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	gameID, respErr := parseUintParam(ctx, "gameID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if _, err := h.svc.FindByID(ctx.Request.Context(), areaID, user.Tenant()); err != nil {
		if errors.Is(err, service.ErrAreaNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("area", "ID", areaID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteAreaConfig -> h.svc.FindByID -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	adminID := user.ID
	if err := h.svc.DeleteConfig(ctx.Request.Context(), areaID, gameID, &adminID); err != nil {
		if errors.Is(err, service.ErrAreaConfigNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("area config", "area/game", fmt.Sprintf("%d/%d", areaID, gameID)))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteAreaConfig -> h.svc.DeleteConfig -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
