// Package categorydelivery manages delivery layer of categories.
package categorydelivery

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

// Service provides service layer interface needed by category delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package categorydelivery
type Service interface {
	Create(ctx context.Context, name, categoryType string) (domain.Category, error)
	Get(ctx context.Context, id int32) (domain.Category, error)
	List(ctx context.Context, page, limit int32) ([]domain.Category, pagepkg.Meta, error)
	Update(ctx context.Context, id int32, name, categoryType string) (domain.Category, error)
	Delete(ctx context.Context, id int32) error
}

// Handler facilitates category delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns category handler.
func NewHandler(cs Service) *Handler {
	return &Handler{service: cs}
}

type data struct {
	Category domain.Category `json:"category"`
}

type response struct {
	Data data `json:"data"`
}

func (h *Handler) fail(gctx *gin.Context, err error) {
	switch err {
	case domain.ErrCategoryNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case domain.ErrInvalidCategoryType:
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	case domain.ErrCategoryInUse:
		gctx.JSON(http.StatusConflict, web.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required,category_type"`
}

type idRequest struct {
	ID int32 `uri:"id" binding:"required,min=1"`
}

type listRequest struct {
	Page  int32 `form:"page" binding:"omitempty,min=1"`
	Limit int32 `form:"limit" binding:"omitempty,min=1,max=100"`
}

// Create handles http request to create category.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req categoryRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	category, err := h.service.Create(ctx, req.Name, req.Type)
	if err != nil {
		h.fail(gctx, err)
		return
	}

	gctx.JSON(http.StatusCreated, response{Data: data{category}})
}

// Get handles http request to get category.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req idRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	category, err := h.service.Get(ctx, req.ID)
	if err != nil {
		h.fail(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{category}})
}

// List handles http request to list categories.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	categories, meta, err := h.service.List(ctx, req.Page, req.Limit)
	if err != nil {
		h.fail(gctx, err)
		return
	}

	if categories == nil {
		categories = []domain.Category{}
	}

	gctx.JSON(http.StatusOK, web.Page(categories, meta))
}

// Update handles http request to replace category name and type.
func (h *Handler) Update(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri idRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	var req categoryRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	category, err := h.service.Update(ctx, uri.ID, req.Name, req.Type)
	if err != nil {
		h.fail(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{category}})
}

// Delete handles http request to delete category.
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
