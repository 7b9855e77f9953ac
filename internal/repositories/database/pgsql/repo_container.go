package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/pachecofc/verde-financas-sub001/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the Postgres repositories. The dedup repository
// is provided by the caller (it lives in Redis) and may be nil.
func NewRepositoryProvider(dbPool *pgxpool.Pool, dedupRepo portsrepo.DedupRepository) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	categoryRepo := newPgxCategoryRepository(dbPool)
	assetRepo := newPgxAssetRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, accountRepo, assetRepo)
	summaryRepo := newPgxSummaryRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:     accountRepo,
		CategoryRepo:    categoryRepo,
		AssetRepo:       assetRepo,
		TransactionRepo: transactionRepo,
		SummaryRepo:     summaryRepo,
		DedupRepo:       dedupRepo,
	}
}
