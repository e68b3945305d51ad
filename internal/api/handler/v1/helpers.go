package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/palpita/lottery-api/internal/api/handler/v1/response"
	"github.com/palpita/lottery-api/internal/api/middleware"
	"github.com/palpita/lottery-api/internal/domain"
)

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

func getUserFromContext(ctx *gin.Context, uSvc UserService) (domain.User, *response.Err) {
	rawID, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return domain.User{}, response.ErrUnauthorized("missing authentication")
	}

	userID, ok := rawID.(uint)
	if !ok {
		return domain.User{}, response.ErrUnauthorized("invalid authentication context")
	}

	user, err := uSvc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("getUserFromContext -> uSvc.GetUser -> %w", err)

		return domain.User{}, response.ErrInternalServerError(err)
	}

	return user, nil
}

func parseUintParam(ctx *gin.Context, name string) (uint, *response.Err) {
	raw := ctx.Param(name)

	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid %v %q", name, raw))
	}

	return uint(value), nil
}

// requireManager rejects callers that are neither platform admins nor
// company admins.
func requireManager(user domain.User) *response.Err {
	if user.Role != domain.RoleAdmin && user.Role != domain.RoleCompanyAdmin {
		return response.ErrPermissionDenied(fmt.Errorf("user %v cannot manage configuration", user.ID))
	}

	return nil
}

func parsePagination(ctx *gin.Context) (limit, offset int) {
	limit = 50
	offset = 0

	if raw := ctx.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	if raw := ctx.Query("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			offset = n
		}
	}

	return limit, offset
}

var errMissingCompany = errors.New("company_id is required for platform admins")

// resolveCompanyID decides which tenant a created record belongs to: company
// admins always write into their own company, platform admins must say which.
func resolveCompanyID(user domain.User, requested *uint) (uint, *response.Err) {
	if user.IsPlatformAdmin() {
		if requested == nil {
			return 0, response.ErrBadRequest(errMissingCompany)
		}

		return *requested, nil
	}

	if user.CompanyID == nil {
		return 0, response.ErrPermissionDenied(fmt.Errorf("user %v has no company", user.ID))
	}

	return *user.CompanyID, nil
}

// HandleHealthcheck godoc
// @Summary      Healthcheck
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
