package service

import (
	"fmt"

	"github.com/fsdevblog/lynx-sales/pkg/uow"
	"github.com/sirupsen/logrus"
)

type AppServices struct {
	SaleService    *SaleService
	PaymentService *PaymentService
	TeamService    *TeamService
}

func Factory(unitOfWork uow.UOW, locker Locker, l *logrus.Logger) (*AppServices, error) {
	saleService, saleServiceErr := NewSaleService(unitOfWork, locker, l)
	if saleServiceErr != nil {
		return nil, fmt.Errorf("service factory: %w", saleServiceErr)
	}

	paymentService, paymentServiceErr := NewPaymentService(unitOfWork)
	if paymentServiceErr != nil {
		return nil, fmt.Errorf("service factory: %w", paymentServiceErr)
	}

	teamService, teamServiceErr := NewTeamService(unitOfWork, l)
	if teamServiceErr != nil {
		return nil, fmt.Errorf("service factory: %w", teamServiceErr)
	}

	return &AppServices{
		SaleService:    saleService,
		PaymentService: paymentService,
		TeamService:    teamService,
	}, nil
}
