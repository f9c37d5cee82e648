package services

import (
	portsrepo "github.com/honeymoneyapp/honeymoney_backend/internal/core/ports/repositories"
	portssvc "github.com/honeymoneyapp/honeymoney_backend/internal/core/ports/services"
	"github.com/honeymoneyapp/honeymoney_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Auth = NewAuthService(cfg, container.User)

	container.MovementType = NewMovementTypeService(repos.MovementTypeRepo)
	container.PaymentType = NewPaymentTypeService(repos.PaymentTypeRepo)
	container.Category = NewCategoryService(repos.CategoryRepo, repos.MovementTypeRepo)
	container.Tag = NewTagService(repos.TagRepo)

	container.Account = NewAccountService(repos.AccountRepo, repos.TransactionRepo)
	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		repos.AccountRepo,
		repos.MovementTypeRepo,
		repos.CategoryRepo,
		repos.PaymentTypeRepo,
		repos.TagRepo,
	)
	container.Projection = NewProjectionService(
		repos.ProjectionRepo,
		repos.AccountRepo,
		repos.MovementTypeRepo,
		repos.CategoryRepo,
		repos.PaymentTypeRepo,
	)

	return container
}
