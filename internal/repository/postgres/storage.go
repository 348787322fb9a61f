package postgres

import (
	"github.com/akazakov/scorefeed/internal/repository"
)

type Storage struct {
	db DBTX
}

func NewStorage(db DBTX) repository.Storage {
	return &Storage{db: db}
}

func (s *Storage) User() repository.UserRepo {
	return &UserRepo{DB: s.db}
}

func (s *Storage) Post() repository.PostRepo {
	return &PostRepo{DB: s.db}
}

func (s *Storage) Like() repository.LikeRepo {
	return &LikeRepo{DB: s.db}
}
