package service

import (
	"github.com/unisolve/backend/internal/model"
	"github.com/unisolve/backend/internal/repository"
)

type UniversityService struct {
	universityRepository repository.UniversityRepository
}

func NewUniversityService(universityRepository repository.UniversityRepository) *UniversityService {
	return &UniversityService{universityRepository: universityRepository}
}

func (s *UniversityService) All() ([]*model.University, error) {
	return s.universityRepository.All()
}
