package store

import "github.com/obscuralabs/blind-payroll/internal/logger"

// Repositories groups the low-level relational repositories sharing one
// database connection. Higher-level composition (audit export, seeding)
// happens in [NewStorages]; this layer is pure table access.
type Repositories struct {
	OperatorRepository   OperatorRepository
	RunRepository        RunRepository
	ItemRepository       ItemRepository
	ResultRepository     ResultRepository
	GrantRepository      GrantRepository
	DecryptionRepository DecryptionRepository
}

// NewRepositories wires every repository to the given connection.
func NewRepositories(db *DB, logger *logger.Logger) *Repositories {
	return &Repositories{
		OperatorRepository:   NewOperatorRepository(db, logger),
		RunRepository:        NewRunRepository(db, logger),
		ItemRepository:       NewItemRepository(db, logger),
		ResultRepository:     NewResultRepository(db, logger),
		GrantRepository:      NewGrantRepository(db, logger),
		DecryptionRepository: NewDecryptionRepository(db, logger),
	}
}
