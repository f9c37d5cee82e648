package repositories

// RepositoryProvider bundles the repository facades handed to the service
// container at startup.
type RepositoryProvider struct {
	AccountRepo      AccountRepositoryFacade
	TransactionRepo  TransactionRepositoryFacade
	ProjectionRepo   ProjectionRepositoryFacade
	CategoryRepo     CategoryRepositoryFacade
	TagRepo          TagRepositoryFacade
	MovementTypeRepo MovementTypeReader
	PaymentTypeRepo  PaymentTypeReader
	UserRepo         UserRepositoryFacade
}
