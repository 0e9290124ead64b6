package pgrepo

import (
	"fmt"

	"github.com/fsdevblog/lynx-sales/internal/repository/repoargs"
	"github.com/fsdevblog/lynx-sales/pkg/uow"
)

// Register регистрирует все репозитории postgres в unit of work.
func Register(u uow.UOW) error {
	factories := map[repoargs.RepositoryName]uow.RepositoryFactory{
		repoargs.CustomerRepoName:   func(db uow.DBTX) uow.Repository { return NewCustomerRepository(db) },
		repoargs.SaleRepoName:       func(db uow.DBTX) uow.Repository { return NewSaleRepository(db) },
		repoargs.EarningRepoName:    func(db uow.DBTX) uow.Repository { return NewEarningRepository(db) },
		repoargs.PaymentRepoName:    func(db uow.DBTX) uow.Repository { return NewPaymentRepository(db) },
		repoargs.TeamMemberRepoName: func(db uow.DBTX) uow.Repository { return NewTeamMemberRepository(db) },
		repoargs.ProfileRepoName:    func(db uow.DBTX) uow.Repository { return NewProfileRepository(db) },
	}
	for name, factory := range factories {
		if err := u.Register(uow.RepositoryName(name), factory); err != nil {
			return fmt.Errorf("register repository `%s`: %w", name, err)
		}
	}
	return nil
}
