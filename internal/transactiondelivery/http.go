// Package transactiondelivery manages delivery layer of the transactions ledger.
package transactiondelivery

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

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	Create(ctx context.Context, accountID, categoryID int32, amount, description string) (domain.TransactionTxResult, error)
	Get(ctx context.Context, id int64) (domain.Transaction, error)
	List(ctx context.Context, accountID, page, limit int32) ([]domain.Transaction, pagepkg.Meta, error)
	Update(ctx context.Context, id int64, amount *string, categoryID *int32, description *string) (domain.TransactionTxResult, error)
	Delete(ctx context.Context, id int64) (domain.TransactionTxResult, error)
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transaction handler.
func NewHandler(ts Service) *Handler {
	return &Handler{service: ts}
}

type data struct {
	Transaction domain.Transaction `json:"transaction"`
}
type response struct {
	Data data `json:"data"`
}

type txData struct {
	Transaction domain.Transaction `json:"transaction"`
	Account     domain.Account     `json:"account"`
}
type txResponse struct {
	Data txData `json:"data"`
}

func newTxResponse(r domain.TransactionTxResult) txResponse {
	return txResponse{Data: txData{Transaction: r.Transaction, Account: r.Account}}
}

func (h *Handler) fail(gctx *gin.Context, err error) {
	switch err {
	case domain.ErrTransactionNotFound, domain.ErrAccountNotFound, domain.ErrCategoryNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(err))
		return
	case domain.ErrInvalidAmount, domain.ErrConstraintViolation:
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return
	}

	gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
}

type createRequest struct {
	AccountID   int32      `json:"account_id" binding:"required,min=1"`
	CategoryID  int32      `json:"category_id" binding:"required,min=1"`
	Amount      web.Amount `json:"amount" binding:"required"`
	Description string     `json:"description"`
}

// Create handles http request to post a transaction.
//
// The response carries the account with its balance after the transaction.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	result, err := h.service.Create(ctx, req.AccountID, req.CategoryID, req.Amount.String(), req.Description)
	if err != nil {
		h.fail(gctx, err)
		return
	}

	gctx.JSON(http.StatusCreated, newTxResponse(result))
}

type idRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// Get handles http request to get transaction.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req idRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	txn, err := h.service.Get(ctx, req.ID)
	if err != nil {
		h.fail(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{txn}})
}

type listRequest struct {
	AccountID int32 `form:"account_id" binding:"omitempty,min=1"`
	Page      int32 `form:"page" binding:"omitempty,min=1"`
	Limit     int32 `form:"limit" binding:"omitempty,min=1,max=100"`
}

// List handles http request to list transactions, optionally of one account.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	transactions, meta, err := h.service.List(ctx, req.AccountID, req.Page, req.Limit)
	if err != nil {
		h.fail(gctx, err)
		return
	}

	if transactions == nil {
		transactions = []domain.Transaction{}
	}

	gctx.JSON(http.StatusOK, web.Page(transactions, meta))
}

type updateRequest struct {
	Amount      *web.Amount    `json:"amount"`
	CategoryID  *int32         `json:"category_id" binding:"omitempty,min=1"`
	Description optionalString `json:"description"`
	AccountID   *int32         `json:"account_id"`
}

// Update handles http request to change amount, category or description of
// a transaction. Omitted fields are left untouched.
func (h *Handler) Update(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri idRequest
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

	if req.AccountID != nil {
		l.Info().Int64("transaction_id", uri.ID).Err(domain.ErrAccountImmutable).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrAccountImmutable))

		return
	}

	result, err := h.service.Update(ctx, uri.ID, req.Amount.StringPtr(), req.CategoryID, req.Description.ptr())
	if err != nil {
		h.fail(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, newTxResponse(result))
}

// Delete handles http request to delete a transaction.
//
// The response carries the removed transaction and the account balance after
// its reversal.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req idRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	result, err := h.service.Delete(ctx, req.ID)
	if err != nil {
		h.fail(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, newTxResponse(result))
}
