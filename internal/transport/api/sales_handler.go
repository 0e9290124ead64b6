package api

import (
	"context"
	"net/http"

	"github.com/fsdevblog/lynx-sales/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SalesHandler struct {
	saleSvs SaleServicer
}

func NewSalesHandler(saleSvs SaleServicer) *SalesHandler {
	return &SalesHandler{
		saleSvs: saleSvs,
	}
}

type RegisterSaleParams struct {
	CustomerID  uuid.UUID   `binding:"required"               json:"customer_id"`
	AmountCents int64       `json:"amount_cents"`
	Note        *string     `binding:"omitempty,max_bytes=500" json:"note"`
	MemberIDs   []uuid.UUID `binding:"required"               json:"member_ids"`
	// WithPayment создать вместе с продажей связанный платёж на ту же сумму.
	WithPayment    bool       `json:"with_payment"`
	SubscriptionID *uuid.UUID `json:"subscription_id"`
}

type RegisterSaleResponse struct {
	SaleID    uuid.UUID  `json:"sale_id"`
	PaymentID *uuid.UUID `json:"payment_id,omitempty"`
}

// Register POST RouteGroup + SalesRoute. Регистрирует продажу и делит её сумму между участниками.
func (h *SalesHandler) Register(c *gin.Context) {
	var params RegisterSaleParams
	if !bindJSON(c, &params) {
		return
	}

	args := service.RegisterSaleArgs{
		CustomerID:  params.CustomerID,
		AmountCents: params.AmountCents,
		Note:        params.Note,
		MemberIDs:   params.MemberIDs,
	}
	if params.WithPayment || params.SubscriptionID != nil {
		args.Payment = &service.PaymentLink{SubscriptionID: params.SubscriptionID}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultServiceTimeout)
	defer cancel()

	registered, err := h.saleSvs.RegisterSaleWithSplit(ctx, args)
	if err != nil {
		abortWithServiceError(c, "could not register sale", err)
		return
	}

	c.JSON(http.StatusCreated, RegisterSaleResponse{
		SaleID:    registered.SaleID,
		PaymentID: registered.PaymentID,
	})
}

// Show GET RouteGroup + SaleRoute. Продажа и участники её разбиения в порядке разбиения.
func (h *SalesHandler) Show(c *gin.Context) {
	saleID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultServiceTimeout)
	defer cancel()

	details, err := h.saleSvs.FetchSaleDetails(ctx, saleID)
	if err != nil {
		abortWithServiceError(c, "could not load sale", err)
		return
	}

	c.JSON(http.StatusOK, newSaleResponse(details))
}

type UpdateSplitParams struct {
	AmountCents int64       `json:"amount_cents"`
	Note        *string     `binding:"omitempty,max_bytes=500" json:"note"`
	MemberIDs   []uuid.UUID `binding:"required"               json:"member_ids"`
}

// UpdateSplit PUT RouteGroup + SaleSplitRoute. Заменяет разбиение продажи целиком.
func (h *SalesHandler) UpdateSplit(c *gin.Context) {
	saleID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var params UpdateSplitParams
	if !bindJSON(c, &params) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultServiceTimeout)
	defer cancel()

	err := h.saleSvs.UpdateSaleSplit(ctx, service.UpdateSaleSplitArgs{
		SaleID:      saleID,
		AmountCents: params.AmountCents,
		Note:        params.Note,
		MemberIDs:   params.MemberIDs,
	})
	if err != nil {
		abortWithServiceError(c, "could not update sale split", err)
		return
	}

	c.AbortWithStatus(http.StatusNoContent)
}
