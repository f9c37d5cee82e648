package pgsql

import (
	portsrepo "github.com/honeymoneyapp/honeymoney_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, accountRepo)
	projectionRepo := newPgxProjectionRepository(dbPool)
	categoryRepo := newPgxCategoryRepository(dbPool)
	tagRepo := newPgxTagRepository(dbPool)
	referenceRepo := newPgxReferenceRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:      accountRepo,
		TransactionRepo:  transactionRepo,
		ProjectionRepo:   projectionRepo,
		CategoryRepo:     categoryRepo,
		TagRepo:          tagRepo,
		MovementTypeRepo: referenceRepo,
		PaymentTypeRepo:  referenceRepo,
		UserRepo:         userRepo,
	}
}
