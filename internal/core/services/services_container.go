package services

import (
	portsrepo "github.com/pachecofc/verde-financas-sub001/internal/core/ports/repositories"
	portssvc "github.com/pachecofc/verde-financas-sub001/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Asset = NewAssetService(repos.AssetRepo)
	container.Summary = NewSummaryService(repos.SummaryRepo)

	// The ledger engine reads reference data through the reader slices of the
	// other repositories but owns every balance and holding mutation itself.
	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		repos.AccountRepo,
		repos.CategoryRepo,
		repos.AssetRepo,
		repos.DedupRepo,
	)

	return container
}
