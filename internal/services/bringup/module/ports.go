package module

import "asusnumpad/internal/services/bringup/domain"

// Ports defines bring-up module ports exposed via the registry
type Ports struct {
	Runner   domain.RunnerPort
	Detector domain.DetectorPort
}
