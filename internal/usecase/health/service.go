package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the service is reachable but the corpus is not usable.
	Degraded Status = "degraded"
	// Unhealthy indicates the search service is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Check names.
const (
	CheckRemote = "vectara"
	CheckCorpus = "corpus"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	remote RemotePinger
	corpus CorpusChecker
}

// New creates a Service. corpus can be nil.
func New(remote RemotePinger, corpus CorpusChecker) *Service {
	return &Service{remote: remote, corpus: corpus}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.remote.Ping(ctx); err != nil {
		checks[CheckRemote] = CheckError
		return Report{Status: Unhealthy, Checks: checks}
	}
	checks[CheckRemote] = CheckOK

	status := Healthy
	if s.corpus != nil {
		if err := s.corpus.HealthCheck(ctx); err != nil {
			checks[CheckCorpus] = CheckError
			status = Degraded
		} else {
			checks[CheckCorpus] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
