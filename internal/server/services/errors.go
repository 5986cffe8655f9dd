package services

import (
	"fmt"

	"github.com/Sonchiik/Workout-Traker/internal/common"
)

// Resource-specific sentinels. Each wraps a common error so the transport
// layer can map it by kind while still showing which resource was missing.
var (
	ErrUserExists           = fmt.Errorf("username %w", common.ErrorAlreadyExists)
	ErrExerciseExists       = fmt.Errorf("exercise %w", common.ErrorAlreadyExists)
	ErrExerciseNotFound     = fmt.Errorf("exercise %w", common.ErrorNotFound)
	ErrPlanNotFound         = fmt.Errorf("workout plan %w", common.ErrorNotFound)
	ErrPlansNotFound        = fmt.Errorf("plans %w", common.ErrorNotFound)
	ErrPlanExerciseNotFound = fmt.Errorf("workout exercise %w", common.ErrorNotFound)
)
