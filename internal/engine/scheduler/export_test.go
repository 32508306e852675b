package scheduler

import "go.trai.ch/rig/internal/core/domain"

// GetStepStatusMap returns a copy of the internal step status map.
// This is exported for testing purposes only.
func (s *Scheduler) GetStepStatusMap() map[domain.InternedString]StepStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	statusMap := make(map[domain.InternedString]StepStatus, len(s.stepStatus))
	for k, v := range s.stepStatus {
		statusMap[k] = v
	}
	return statusMap
}
