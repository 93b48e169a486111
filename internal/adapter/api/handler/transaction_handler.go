package handler

import (
	"github.com/labstack/echo/v4"

	"trailtrade/internal/usecase"
	"trailtrade/pkg/errors"
	"trailtrade/pkg/response"
)

type TransactionHandler struct {
	transactionUseCase *usecase.TransactionUseCase
}

func NewTransactionHandler(transactionUseCase *usecase.TransactionUseCase) *TransactionHandler {
	return &TransactionHandler{
		transactionUseCase: transactionUseCase,
	}
}

func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	uid := c.Get("uid").(string)

	transactions, err := h.transactionUseCase.ListForUser(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, transactions)
}

func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	uid := c.Get("uid").(string)
	id := c.Param("id")

	tx, err := h.transactionUseCase.GetByID(c.Request().Context(), id, uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, tx)
}

type placeDepositRequest struct {
	GearID string `json:"gear_id" validate:"required"`
	ChatID string `json:"chat_id" validate:"required"`
}

func (h *TransactionHandler) PlaceDeposit(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req placeDepositRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	tx, err := h.transactionUseCase.PlaceDeposit(c.Request().Context(), uid, usecase.PlaceDepositInput{
		GearID: req.GearID,
		ChatID: req.ChatID,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, tx)
}

func (h *TransactionHandler) CompleteTransaction(c echo.Context) error {
	uid := c.Get("uid").(string)
	id := c.Param("id")

	tx, err := h.transactionUseCase.Complete(c.Request().Context(), id, uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, tx)
}

func (h *TransactionHandler) CancelTransaction(c echo.Context) error {
	uid := c.Get("uid").(string)
	id := c.Param("id")

	tx, err := h.transactionUseCase.Cancel(c.Request().Context(), id, uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, tx)
}
