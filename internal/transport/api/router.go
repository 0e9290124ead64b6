package api

import (
	"fmt"
	"time"

	"github.com/fsdevblog/lynx-sales/internal/domain"
	"github.com/fsdevblog/lynx-sales/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	DefaultServiceTimeout = 5 * time.Second
)

const (
	RouteGroup              = "/api"
	SessionRoute            = "/session"
	SalesRoute              = "/sales"
	SaleRoute               = "/sales/:id"
	SaleSplitRoute          = "/sales/:id/split"
	PaymentsRoute           = "/payments"
	PaymentRoute            = "/payments/:id"
	PaymentSaleRoute        = "/payments/:id/sale"
	SubscriptionPrepayRoute = "/subscriptions/:id/prepay"
	TeamMembersRoute        = "/team-members"
	MonthEarningsRoute      = "/earnings/month"
)

type RouterArgs struct {
	Logger          *logrus.Logger
	SaleService     SaleServicer
	PaymentService  PaymentServicer
	TeamService     TeamServicer
	SessionResolver SessionResolver
	// JWTSecretKey если задан, токены доступа проверяются локально до обращения к провайдеру.
	JWTSecretKey []byte
}

func New(args RouterArgs) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, fmt.Errorf("new router: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	sessionHandler := NewSessionHandler()
	salesHandler := NewSalesHandler(args.SaleService)
	paymentsHandler := NewPaymentsHandler(args.PaymentService, args.SaleService)
	teamHandler := NewTeamHandler(args.TeamService)

	api := r.Group(RouteGroup)
	// все роуты группы требуют сессии, подтверждённой провайдером.
	api.Use(middlewares.AuthRequired(args.SessionResolver, args.JWTSecretKey))

	canView := middlewares.RequirePermission(domain.PermissionViewDashboard)
	canCreate := middlewares.RequirePermission(domain.PermissionCreateSale)
	canManage := middlewares.RequirePermission(domain.PermissionManageSales)

	api.GET(SessionRoute, sessionHandler.Show)

	api.POST(SalesRoute, canCreate, salesHandler.Register)
	api.GET(SaleRoute, canView, salesHandler.Show)
	api.PUT(SaleSplitRoute, canManage, salesHandler.UpdateSplit)

	api.POST(PaymentsRoute, canCreate, paymentsHandler.Create)
	api.GET(PaymentsRoute, canView, paymentsHandler.Index)
	api.PATCH(PaymentRoute, canManage, paymentsHandler.Update)
	api.DELETE(PaymentRoute, canManage, paymentsHandler.Delete)
	api.PUT(PaymentSaleRoute, canManage, paymentsHandler.EditSale)
	api.POST(SubscriptionPrepayRoute, canCreate, paymentsHandler.Prepay)

	api.GET(TeamMembersRoute, canView, teamHandler.Members)
	api.GET(MonthEarningsRoute, canView, teamHandler.EarningsThisMonth)
	return r, nil
}
