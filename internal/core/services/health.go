package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/nlquery/internal/core/ports/driving"
)

// Ensure HealthService implements the interface.
var _ driving.HealthService = (*HealthService)(nil)

// Pinger is anything that can report its own reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthService pings every registered component concurrently.
type HealthService struct {
	components map[string]Pinger
}

// NewHealthService creates an empty health service.
func NewHealthService() *HealthService {
	return &HealthService{components: make(map[string]Pinger)}
}

// Register adds a component. Nil components are ignored.
func (s *HealthService) Register(name string, p Pinger) {
	if p == nil {
		return
	}
	s.components[name] = p
}

// Check pings every component and returns one entry per component.
func (s *HealthService) Check(ctx context.Context) map[string]error {
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		out = make(map[string]error, len(s.components))
	)
	for name, p := range s.components {
		wg.Add(1)
		go func(name string, p Pinger) {
			defer wg.Done()
			err := p.Ping(ctx)
			mu.Lock()
			out[name] = err
			mu.Unlock()
		}(name, p)
	}
	wg.Wait()
	return out
}
