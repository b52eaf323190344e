// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/pkg/errorspkg"
	"github.com/go-petr/pet-finance/pkg/pagepkg"
	"github.com/go-petr/pet-finance/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, userID int32, name, balance string) (domain.Account, error)
	Get(ctx context.Context, id int32) (domain.Account, error)
	List(ctx context.Context, userID, page, limit int32) ([]domain.Account, pagepkg.Meta, error)
	Update(ctx context.Context, id int32, name, balance *string) (domain.Account, error)
	Delete(ctx context.Context, id int32) error
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) *Handler {
	return &Handler{service: as}
}

type data struct {
	Account domain.Account `json:"account"`
}
type response struct {
	Data data `json:"data"`
}

func (h *Handler) fail(gctx *gin.Context, err error) {
	switch err {
	case domain.ErrAccountNotFound, domain.ErrOwnerNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(err))
		return
	case domain.ErrInvalidAmount, domain.ErrConstraintViolation:
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return
	}

	gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
}

type createRequest struct {
	UserID  int32      `json:"user_id" binding:"required,min=1"`
	Name    string     `json:"name" binding:"required"`
	Balance web.Amount `json:"balance"`
}

// Create handles http request to create account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	createdAccount, err := h.service.Create(ctx, req.UserID, req.Name, req.Balance.String())
	if err != nil {
		h.fail(gctx, err)
		return
	}

	gctx.JSON(http.StatusCreated, response{Data: data{createdAccount}})
}

type getRequest struct {
	ID int32 `uri:"id" binding:"required,min=1"`
}

// Get handles http request to get account.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	acc, err := h.service.Get(ctx, req.ID)
	if err != nil {
		h.fail(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{acc}})
}

type listRequest struct {
	UserID int32 `form:"user_id" binding:"omitempty,min=1"`
	Page   int32 `form:"page" binding:"omitempty,min=1"`
	Limit  int32 `form:"limit" binding:"omitempty,min=1,max=100"`
}

// List handles http request to list accounts, optionally of one user.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	accounts, meta, err := h.service.List(ctx, req.UserID, req.Page, req.Limit)
	if err != nil {
		h.fail(gctx, err)
		return
	}

	if accounts == nil {
		accounts = []domain.Account{}
	}

	gctx.JSON(http.StatusOK, web.Page(accounts, meta))
}

type updateRequest struct {
	Name    *string     `json:"name" binding:"omitempty,min=1"`
	Balance *web.Amount `json:"balance"`
}

// Update handles http request to rename an account or overwrite its balance.
func (h *Handler) Update(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri getRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	var req updateRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	if req.Balance != nil {
		l.Warn().Int32("account_id", uri.ID).Str("balance", req.Balance.String()).Msg("account balance overwritten")
	}

	acc, err := h.service.Update(ctx, uri.ID, req.Name, req.Balance.StringPtr())
	if err != nil {
		h.fail(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{acc}})
}

// Delete handles http request to delete account with its transactions.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	if err := h.service.Delete(ctx, req.ID); err != nil {
		h.fail(gctx, err)
		return
	}

	gctx.Status(http.StatusNoContent)
}
