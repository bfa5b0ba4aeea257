package jobs

import (
	"fmt"
	"strings"
	"sync"

	"github.com/kika-project/kika-sampling/pkg/models"
)

// Registry manages available job kinds
type Registry struct {
	mu    sync.RWMutex
	kinds map[models.JobType]Kind
	order []models.JobType
}

// NewRegistry creates a new job kind registry
func NewRegistry() *Registry {
	return &Registry{
		kinds: make(map[models.JobType]Kind),
	}
}

// Register adds a job kind to the registry
func (r *Registry) Register(kind Kind) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if kind.Type == "" || kind.New == nil {
		return fmt.Errorf("job kind %q needs a type and a factory", kind.Name)
	}
	if _, exists := r.kinds[kind.Type]; exists {
		return fmt.Errorf("job kind %s already registered", kind.Type)
	}

	r.kinds[kind.Type] = kind
	r.order = append(r.order, kind.Type)
	return nil
}

// Get returns the kind matching a job type or display name. Underscores in
// a job type are read as dashes, so ace_from_endf finds ace-from-endf.
func (r *Registry) Get(name string) (Kind, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	if kind, ok := r.kinds[models.JobType(key)]; ok {
		return kind, nil
	}
	for _, t := range r.order {
		if strings.EqualFold(r.kinds[t].Name, name) {
			return r.kinds[t], nil
		}
	}
	return Kind{}, fmt.Errorf("job kind %s not found", name)
}

// List returns all registered kinds in registration order
func (r *Registry) List() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]Kind, 0, len(r.order))
	for _, t := range r.order {
		kinds = append(kinds, r.kinds[t])
	}
	return kinds
}

// DefaultRegistry is the global job kind registry, preloaded with the
// built-in kinds
var DefaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, kind := range builtinKinds() {
		if err := r.Register(kind); err != nil {
			panic(err)
		}
	}
	return r
}
