package store

import "gorm.io/gorm"

type Store interface {
	Close() error
	Selector() Selector
}

type DataStore struct {
	db       *gorm.DB
	selector Selector
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		db:       db,
		selector: NewSelector(db),
	}
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *DataStore) Selector() Selector {
	return s.selector
}
