package handler

import (
	"encoding/json"
	"net/http"

	"polystore/internal/delivery/api/response"
	domainerrors "polystore/internal/domain/errors"
	"polystore/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// TransferHandler exposes the account seeding and transfer endpoints.
type TransferHandler struct {
	uc usecase.TransferUsecase
}

// NewTransferHandler is the constructor for TransferHandler, injected by Fx.
func NewTransferHandler(uc usecase.TransferUsecase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Amounts accept a JSON number, a JSON string or a form value.
type transferRequest struct {
	From   string      `json:"from" form:"from" validate:"required"`
	To     string      `json:"to" form:"to" validate:"required"`
	Amount json.Number `json:"amount" form:"amount" validate:"required"`
}

type createAccountRequest struct {
	Balance json.Number `json:"balance" form:"balance" validate:"required"`
}

type transferResponse struct {
	From        string          `json:"from"`
	To          string          `json:"to"`
	Amount      decimal.Decimal `json:"amount"`
	FromBalance decimal.Decimal `json:"from_balance"`
	ToBalance   decimal.Decimal `json:"to_balance"`
	State       string          `json:"state"`
}

// Transfer handles POST /user/transfer.
func (h *TransferHandler) Transfer(c echo.Context) error {
	var req transferRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid transfer input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		return err
	}

	output, err := h.uc.Transfer(c.Request().Context(), &usecase.TransferInput{
		FromID: req.From,
		ToID:   req.To,
		Amount: amount,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, &transferResponse{
		From:        output.FromID,
		To:          output.ToID,
		Amount:      output.Amount,
		FromBalance: output.FromBalance,
		ToBalance:   output.ToBalance,
		State:       string(output.State),
	})
}

// CreateAccount handles POST /account.
func (h *TransferHandler) CreateAccount(c echo.Context) error {
	var req createAccountRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid account input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	balance, err := parseAmount("balance", req.Balance)
	if err != nil {
		return err
	}

	account, err := h.uc.CreateAccount(c.Request().Context(), &usecase.CreateAccountInput{Balance: balance})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, account)
}

// GetAccount handles GET /account/:id. An absent account renders as "data": null.
func (h *TransferHandler) GetAccount(c echo.Context) error {
	account, err := h.uc.GetAccount(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}
	if account == nil {
		return response.Success(c, http.StatusOK, nil)
	}

	return response.Success(c, http.StatusOK, account)
}

func parseAmount(field string, raw json.Number) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw.String())
	if err != nil {
		return decimal.Zero, domainerrors.ErrValidationFailed.WithDetails(field + ": not a decimal")
	}

	return amount, nil
}
