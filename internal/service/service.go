package service

import (
	"github.com/kimyuchan-1/MiniProject-sub000/internal/domain"
)

// SafetyRepository is re-exported from domain for convenience
type SafetyRepository = domain.SafetyRepository
