package health

import "context"

// RemotePinger checks search service reachability and credentials.
type RemotePinger interface {
	Ping(ctx context.Context) error
}

// CorpusChecker checks that the configured corpus resolves.
type CorpusChecker interface {
	HealthCheck(ctx context.Context) error
}
