package tracestore

import "sync"

// DefaultProjectName is the name used when a caller does not specify one,
// per spec.md §2.
const DefaultProjectName = "default"

// Registry hosts many independent Projects keyed by name. No data crosses
// between Projects. The zero value is ready to use.
type Registry struct {
	mu       sync.RWMutex
	projects map[string]*Project
	opts     []ProjectOption
}

// NewRegistry creates an empty Registry. opts are applied to every Project
// the Registry creates on demand.
func NewRegistry(opts ...ProjectOption) *Registry {
	return &Registry{
		projects: make(map[string]*Project),
		opts:     opts,
	}
}

// Project returns the named Project, creating it with the Registry's
// default options if it does not yet exist. An empty name resolves to
// DefaultProjectName.
func (r *Registry) Project(name string) (*Project, error) {
	if name == "" {
		name = DefaultProjectName
	}

	r.mu.RLock()
	p, ok := r.projects[name]
	r.mu.RUnlock()
	if ok {
		return p, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok = r.projects[name]; ok {
		return p, nil
	}
	p, err := NewProject(name, r.opts...)
	if err != nil {
		return nil, err
	}
	if r.projects == nil {
		r.projects = make(map[string]*Project)
	}
	r.projects[name] = p
	return p, nil
}

// Names returns the names of every Project created so far, in unspecified
// order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.projects))
	for name := range r.projects {
		names = append(names, name)
	}
	return names
}
