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

type GameService interface {
	Create(ctx context.Context, game domain.Game) (domain.Game, error)
	FindAll(ctx context.Context, companyID *uint) ([]domain.Game, error)
	FindByID(ctx context.Context, id uint, companyID *uint) (domain.Game, error)
	Update(ctx context.Context, id uint, companyID *uint, patch domain.GamePatch) (domain.Game, error)
	Delete(ctx context.Context, id uint, companyID *uint) error
	UpsertExtractionSeries(ctx context.Context, companyID *uint, es domain.ExtractionSeries, adminID *uint) (domain.ExtractionSeries, error)
}

type GameHandler struct {
	svc  GameService
	uSvc UserService
}

func NewGameHandler(svc GameService, uSvc UserService) *GameHandler {
	return &GameHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateGame godoc
// @Summary      Create a game
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateGameRequest  true  "Game details"
// @Success      201    {object}  domain.Game
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Router       /games [post]
// @Security BearerAuth
func (h *GameHandler) HandleCreateGame(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if respErr = requireManager(user); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.CreateGameRequest
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

	game, err := h.svc.Create(ctx.Request.Context(), domain.Game{
		Name:                input.Name,
		CompanyID:           companyID,
		MaxTicketsPerSeries: input.MaxTicketsPerSeries,
		TicketPriceCents:    input.TicketPriceCents,
		Active:              true,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateGame -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, game)
}

// HandleGetGames godoc
// @Summary      List games
// @Tags         games
// @Produce      json
// @Success      200  {array}   domain.Game
// @Failure      401  {object}  response.Err
// @Router       /games [get]
// @Security BearerAuth
func (h *GameHandler) HandleGetGames(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	games, err := h.svc.FindAll(ctx.Request.Context(), user.Tenant())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetGames -> h.svc.FindAll -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, games)
}

// HandleGetGame godoc
// @Summary      Get one game
// @Tags         games
// @Produce      json
// @Param        gameID  path      int  true  "Game ID"
// @Success      200  {object}  domain.Game
// @Failure      404  {object}  response.Err
// @Router       /games/{gameID} [get]
// @Security BearerAuth
func (h *GameHandler) HandleGetGame(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	gameID, respErr := parseUintParam(ctx, "gameID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	game, err := h.svc.FindByID(ctx.Request.Context(), gameID, user.Tenant())
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("game", "ID", gameID))
			return
		}

		err = fmt.Errorf("v1.HandleGetGame -> h.svc.FindByID -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, game)
}

// HandleUpdateGame godoc
// @Summary      Update a game
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        gameID  path      int                        true  "Game ID"
// @Param        input   body      request.UpdateGameRequest  true  "Patch"
// @Success      200  {object}  domain.Game
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /games/{gameID} [patch]
// @Security BearerAuth
func (h *GameHandler) HandleUpdateGame(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if respErr = requireManager(user); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	gameID, respErr := parseUintParam(ctx, "gameID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.UpdateGameRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	game, err := h.svc.Update(ctx.Request.Context(), gameID, user.Tenant(), domain.GamePatch{
		Name:                input.Name,
		MaxTicketsPerSeries: input.MaxTicketsPerSeries,
		TicketPriceCents:    input.TicketPriceCents,
		Active:              input.Active,
	})
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("game", "ID", gameID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateGame -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, game)
}

// HandleDeleteGame godoc
// @Summary      Delete a game
// @Description  Fails with 409 when tickets or extraction series still reference the game; deactivate instead.
// @Tags         games
// @Produce      json
// @Param        gameID  path  int  true  "Game ID"
// @Success      204
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Router       /games/{gameID} [delete]
// @Security BearerAuth
func (h *GameHandler) HandleDeleteGame(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if respErr = requireManager(user); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	gameID, respErr := parseUintParam(ctx, "gameID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), gameID, user.Tenant()); err != nil {
		switch {
		case errors.Is(err, service.ErrGameNotFound):
			response.RenderErr(ctx, response.ErrNotFound("game", "ID", gameID))
		case errors.Is(err, service.ErrGameHasDependents):
			response.RenderErr(ctx, response.ErrConflict("game has dependent records; deactivate it instead of deleting"))
		default:
			err = fmt.Errorf("v1.HandleDeleteGame -> h.svc.Delete -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleUpsertExtractionSeries godoc
// @Summary      Set the last-series counter for a scheduled draw
// @Description  Upserts keyed on (game, area, time); a null area_id means the counter applies company-wide.
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        gameID  path      int                                    true  "Game ID"
// @Param        input   body      request.UpsertExtractionSeriesRequest  true  "Counter"
// @Success      200  {object}  domain.ExtractionSeries
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /games/{gameID}/extraction-series [put]
// @Security BearerAuth
func (h *GameHandler) HandleUpsertExtractionSeries(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if respErr = requireManager(user); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	gameID, respErr := parseUintParam(ctx, "gameID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.UpsertExtractionSeriesRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	adminID := user.ID
	es, err := h.svc.UpsertExtractionSeries(ctx.Request.Context(), user.Tenant(), domain.ExtractionSeries{
		GameID:     gameID,
		AreaID:     input.AreaID,
		Time:       input.Time,
		LastSeries: input.LastSeries,
	}, &adminID)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("game", "ID", gameID))
			return
		}

		err = fmt.Errorf("v1.HandleUpsertExtractionSeries -> h.svc.UpsertExtractionSeries -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, es)
}
