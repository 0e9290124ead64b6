package api

import (
	"context"
	"net/http"
	"time"

	"github.com/fsdevblog/lynx-sales/internal/domain"
	"github.com/fsdevblog/lynx-sales/internal/money"
	"github.com/fsdevblog/lynx-sales/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// defaultPaymentsWindow период сводки платежей, если since не передан.
const defaultPaymentsWindow = 30 * 24 * time.Hour

type PaymentsHandler struct {
	paymentSvs PaymentServicer
	saleSvs    SaleServicer
	now        func() time.Time
}

func NewPaymentsHandler(paymentSvs PaymentServicer, saleSvs SaleServicer) *PaymentsHandler {
	return &PaymentsHandler{
		paymentSvs: paymentSvs,
		saleSvs:    saleSvs,
		now:        time.Now,
	}
}

type CreatePaymentParams struct {
	CustomerID     uuid.UUID  `binding:"required" json:"customer_id"`
	SubscriptionID *uuid.UUID `json:"subscription_id"`
	AmountCents    int64      `json:"amount_cents"`
}

// Create POST RouteGroup + PaymentsRoute. Платёж без продажи.
func (h *PaymentsHandler) Create(c *gin.Context) {
	var params CreatePaymentParams
	if !bindJSON(c, &params) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultServiceTimeout)
	defer cancel()

	payment, err := h.paymentSvs.CreatePayment(ctx, service.CreatePaymentArgs{
		CustomerID:     params.CustomerID,
		SubscriptionID: params.SubscriptionID,
		AmountCents:    params.AmountCents,
	})
	if err != nil {
		abortWithServiceError(c, "could not create payment", err)
		return
	}

	c.JSON(http.StatusCreated, newPaymentResponse(payment))
}

// Index GET RouteGroup + PaymentsRoute?since=RFC3339. Сводка платежей, новые первыми.
func (h *PaymentsHandler) Index(c *gin.Context) {
	since := h.now().Add(-defaultPaymentsWindow)
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "since must be an RFC3339 timestamp"})
			return
		}
		since = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultServiceTimeout)
	defer cancel()

	rows, err := h.paymentSvs.ListPaymentsSince(ctx, since)
	if err != nil {
		abortWithServiceError(c, "could not load payments", err)
		return
	}

	response := make([]PaymentOverviewResponse, len(rows))
	for i, row := range rows {
		response[i] = PaymentOverviewResponse{
			ID:               row.ID,
			PaidAt:           row.PaidAt,
			CustomerID:       row.CustomerID,
			CustomerName:     row.CustomerName,
			CustomerPhone:    row.CustomerPhone,
			ProductShortCode: row.ProductShortCode,
			ProductName:      row.ProductName,
			SaleID:           row.SaleID,
			AmountCents:      row.AmountCents,
			AmountDisplay:    money.FormatBs(row.AmountCents),
			Status:           row.Status,
		}
	}
	c.JSON(http.StatusOK, response)
}

type UpdatePaymentParams struct {
	AmountCents *int64                    `json:"amount_cents"`
	Status      *domain.PaymentStatusType `json:"status"`
}

// Update PATCH RouteGroup + PaymentRoute. Меняет только запись платежа, разбиение продажи не трогает.
func (h *PaymentsHandler) Update(c *gin.Context) {
	paymentID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var params UpdatePaymentParams
	if !bindJSON(c, &params) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultServiceTimeout)
	defer cancel()

	payment, err := h.paymentSvs.UpdatePaymentRecord(ctx, paymentID, service.UpdatePaymentArgs{
		AmountCents: params.AmountCents,
		Status:      params.Status,
	})
	if err != nil {
		abortWithServiceError(c, "could not update payment", err)
		return
	}

	c.JSON(http.StatusOK, newPaymentResponse(payment))
}

type EditSaleParams struct {
	SaleID      *uuid.UUID                `json:"sale_id"`
	AmountCents int64                     `json:"amount_cents"`
	Status      *domain.PaymentStatusType `json:"status"`
	Note        *string                   `binding:"omitempty,max_bytes=500" json:"note"`
	MemberIDs   []uuid.UUID               `json:"member_ids"`
}

// EditSale PUT RouteGroup + PaymentSaleRoute. Правка платежа вместе с разбиением связанной продажи.
func (h *PaymentsHandler) EditSale(c *gin.Context) {
	paymentID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var params EditSaleParams
	if !bindJSON(c, &params) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultServiceTimeout)
	defer cancel()

	payment, err := h.saleSvs.EditSale(ctx, service.EditSaleArgs{
		PaymentID:   paymentID,
		SaleID:      params.SaleID,
		AmountCents: params.AmountCents,
		Status:      params.Status,
		Note:        params.Note,
		MemberIDs:   params.MemberIDs,
	})
	if err != nil {
		abortWithServiceError(c, "could not edit sale", err)
		return
	}

	c.JSON(http.StatusOK, newPaymentResponse(payment))
}

// Delete DELETE RouteGroup + PaymentRoute?sale_id=. Удаляет платёж вместе с продажей и её начислениями.
func (h *PaymentsHandler) Delete(c *gin.Context) {
	paymentID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	saleID, ok := optionalUUIDQuery(c, "sale_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultServiceTimeout)
	defer cancel()

	if err := h.saleSvs.DeletePaymentCascade(ctx, paymentID, saleID); err != nil {
		abortWithServiceError(c, "could not delete payment", err)
		return
	}

	c.AbortWithStatus(http.StatusNoContent)
}

type PrepayParams struct {
	Months          int   `binding:"required,min=1,max=36" json:"months"`
	MonthPriceCents int64 `json:"month_price_cents"`
}

// Prepay POST RouteGroup + SubscriptionPrepayRoute. Оплата подписки на несколько месяцев вперёд.
func (h *PaymentsHandler) Prepay(c *gin.Context) {
	subscriptionID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var params PrepayParams
	if !bindJSON(c, &params) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultServiceTimeout)
	defer cancel()

	payment, err := h.paymentSvs.PrepayMonths(ctx, service.PrepayMonthsArgs{
		SubscriptionID:  subscriptionID,
		Months:          params.Months,
		MonthPriceCents: params.MonthPriceCents,
	})
	if err != nil {
		abortWithServiceError(c, "could not register prepayment", err)
		return
	}

	c.JSON(http.StatusCreated, newPaymentResponse(payment))
}
