package unitofwork

import (
	"context"
	"errors"

	"mdt-records-be/internal/repository/contract"
	"mdt-records-be/internal/repository/implementation"

	"gorm.io/gorm"
)

var (
	ErrTxActive = errors.New("unitofwork: transaction already started")
	ErrNoTx     = errors.New("unitofwork: no transaction in progress")
)

// UnitOfWorkImpl hands out repositories bound to the open transaction, or to
// the plain connection when there is none.
type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return ErrTxActive
	}
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	u.tx = tx
	return nil
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return ErrNoTx
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return ErrNoTx
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) CitizenRepository() contract.CitizenRepository {
	return implementation.NewCitizenRepository(u.getDB())
}

func (u *UnitOfWorkImpl) OfficerRepository() contract.OfficerRepository {
	return implementation.NewOfficerRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ArrestRepository() contract.ArrestRepository {
	return implementation.NewArrestRepository(u.getDB())
}

func (u *UnitOfWorkImpl) WantedRepository() contract.WantedRepository {
	return implementation.NewWantedRepository(u.getDB())
}
