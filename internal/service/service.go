package service

import (
	"github.com/carson-networks/pouch-server/internal/operator"
	"github.com/carson-networks/pouch-server/internal/storage"
)

// Service holds all business logic services. Reads go straight to storage;
// every ledger mutation is funneled through the operator so balance
// read-modify-write cycles never interleave.
type Service struct {
	User        *UserService
	Account     *AccountService
	Pouch       *PouchService
	Goal        *GoalService
	Transaction *TransactionService
	Transfer    *TransferService
}

// NewService creates a new Service with the given storage and operator.
func NewService(store *storage.Storage, op *operator.OperatorDelegator) *Service {
	return &Service{
		User:        NewUserService(store),
		Account:     NewAccountService(store, op),
		Pouch:       NewPouchService(store, op),
		Goal:        NewGoalService(store, op),
		Transaction: NewTransactionService(store, op),
		Transfer:    NewTransferService(store, op),
	}
}
