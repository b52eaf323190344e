// Package userdelivery manages delivery layer of users.
package userdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/pkg/errorspkg"
	"github.com/go-petr/pet-finance/pkg/pagepkg"
	"github.com/go-petr/pet-finance/pkg/web"
	"github.com/rs/zerolog"
)

// Service provides service layer interface needed by user delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package userdelivery
type Service interface {
	Create(ctx context.Context, name, email string) (domain.User, error)
	Get(ctx context.Context, id int32) (domain.User, error)
	List(ctx context.Context, page, limit int32) ([]domain.User, pagepkg.Meta, error)
	Update(ctx context.Context, id int32, name, email string) (domain.User, error)
	Delete(ctx context.Context, id int32) error
}

// Handler facilitates user delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns user handler.
func NewHandler(us Service) *Handler {
	return &Handler{service: us}
}

type data struct {
	User domain.User `json:"user"`
}

type response struct {
	Data data `json:"data"`
}

func (h *Handler) fail(gctx *gin.Context, err error) {
	switch err {
	case domain.ErrUserNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case domain.ErrEmailAlreadyExists:
		gctx.JSON(http.StatusConflict, web.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

type userRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type idRequest struct {
	ID int32 `uri:"id" binding:"required,min=1"`
}

type listRequest struct {
	Page  int32 `form:"page" binding:"omitempty,min=1"`
	Limit int32 `form:"limit" binding:"omitempty,min=1,max=100"`
}

// Create handles http request to create user.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req userRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	user, err := h.service.Create(ctx, req.Name, req.Email)
	if err != nil {
		h.fail(gctx, err)
		return
	}

	gctx.JSON(http.StatusCreated, response{Data: data{user}})
}

// Get handles http request to get user.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req idRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	user, err := h.service.Get(ctx, req.ID)
	if err != nil {
		h.fail(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{user}})
}

// List handles http request to list users page by page.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	users, meta, err := h.service.List(ctx, req.Page, req.Limit)
	if err != nil {
		h.fail(gctx, err)
		return
	}

	if users == nil {
		users = []domain.User{}
	}

	gctx.JSON(http.StatusOK, web.Page(users, meta))
}

// Update handles http request to replace user name and email.
func (h *Handler) Update(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri idRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	var req userRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	user, err := h.service.Update(ctx, uri.ID, req.Name, req.Email)
	if err != nil {
		h.fail(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{user}})
}

// Delete handles http request to delete user with all of its accounts.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req idRequest
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
