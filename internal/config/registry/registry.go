// Package registry provides the in-memory configuration registry that
// preference contributors register their schema nodes into.
//
// The registry owns every node it accepts: callers hand nodes over by value
// and the registry keeps its own deep copy. A registration batch is validated
// as a whole and either committed completely or rejected without changing
// registry state.
package registry

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dshills/trayprefs/internal/config/notify"
	"github.com/dshills/trayprefs/internal/config/schema"
)

// Registry maintains all registered configuration nodes and the properties
// they declare.
type Registry struct {
	mu         sync.RWMutex
	nodes      map[string]schema.Node
	properties map[string]entry // property key -> owning node

	notifier *notify.Notifier
	metrics  *metrics
}

// entry records a property together with the node that declared it.
type entry struct {
	nodeID   string
	property schema.Property
}

// Option configures a Registry.
type Option func(*Registry)

// WithNotifier announces every committed property on n.
func WithNotifier(n *notify.Notifier) Option {
	return func(r *Registry) {
		r.notifier = n
	}
}

// WithMetrics registers the registry's counters on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(r *Registry) {
		r.metrics = newMetrics(reg)
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		nodes:      make(map[string]schema.Node),
		properties: make(map[string]entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RegisterConfigurations validates and commits nodes. Either every node is
// registered or none is; the returned error is a *RegistrationError naming the
// first offending node. An empty batch is a no-op.
func (r *Registry) RegisterConfigurations(ctx context.Context, nodes []schema.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(nodes) == 0 {
		return nil
	}

	r.mu.Lock()
	if err := r.checkLocked(nodes); err != nil {
		r.mu.Unlock()
		r.metrics.rejected(err)
		return err
	}

	committed := make([]schema.Node, 0, len(nodes))
	for _, n := range nodes {
		owned := n.Clone()
		r.nodes[owned.ID] = owned
		for key, p := range owned.Properties {
			r.properties[key] = entry{nodeID: owned.ID, property: p}
		}
		committed = append(committed, owned)
	}
	r.mu.Unlock()

	r.metrics.registered(len(committed))
	if r.notifier != nil {
		for _, n := range committed {
			for _, key := range n.PropertyKeys() {
				r.notifier.NotifyRegister(notify.Registration{
					Key:     key,
					Default: n.Properties[key].Default,
					NodeID:  n.ID,
				})
			}
		}
	}
	return nil
}

// checkLocked validates a batch against itself and the current registry state.
func (r *Registry) checkLocked(nodes []schema.Node) error {
	batchIDs := make(map[string]struct{}, len(nodes))
	batchKeys := make(map[string]string)

	for _, n := range nodes {
		if err := n.Validate(); err != nil {
			return &RegistrationError{NodeID: n.ID, Err: errors.Join(ErrInvalidNode, err)}
		}

		if _, exists := r.nodes[n.ID]; exists {
			return &RegistrationError{NodeID: n.ID, Err: ErrAlreadyRegistered}
		}
		if _, dup := batchIDs[n.ID]; dup {
			return &RegistrationError{NodeID: n.ID, Err: ErrAlreadyRegistered}
		}
		batchIDs[n.ID] = struct{}{}

		for _, key := range n.PropertyKeys() {
			if owner, exists := r.properties[key]; exists {
				return &RegistrationError{NodeID: n.ID, Property: key, Owner: owner.nodeID, Err: ErrPropertyConflict}
			}
			if owner, dup := batchKeys[key]; dup {
				return &RegistrationError{NodeID: n.ID, Property: key, Owner: owner, Err: ErrPropertyConflict}
			}
			batchKeys[key] = n.ID
		}
	}
	return nil
}

// MustRegister registers nodes and panics on error.
// Useful for registering built-in nodes at init time.
func (r *Registry) MustRegister(nodes ...schema.Node) {
	if err := r.RegisterConfigurations(context.Background(), nodes); err != nil {
		panic(err)
	}
}

// Node returns a copy of the node registered under id.
func (r *Registry) Node(id string) (schema.Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.nodes[id]
	if !ok {
		return schema.Node{}, false
	}
	return n.Clone(), true
}

// Nodes returns copies of all registered nodes sorted by id.
func (r *Registry) Nodes() []schema.Node {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]schema.Node, 0, len(r.nodes))
	for _, n := range r.nodes {
		result = append(result, n.Clone())
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Property returns the schema of a registered property key.
func (r *Registry) Property(key string) (schema.Property, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.properties[key]
	if !ok {
		return schema.Property{}, false
	}
	return e.property.Clone(), true
}

// Keys returns all registered property keys sorted.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.properties))
	for k := range r.properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Default returns the default value of a property.
// Returns nil if the property is not registered.
func (r *Registry) Default(key string) any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if e, ok := r.properties[key]; ok {
		return e.property.Default
	}
	return nil
}

// Defaults returns a map of all non-nil default values.
func (r *Registry) Defaults() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]any, len(r.properties))
	for key, e := range r.properties {
		if e.property.Default != nil {
			result[key] = e.property.Default
		}
	}
	return result
}

// Validate checks a value against a registered property.
func (r *Registry) Validate(key string, value any) error {
	p, ok := r.Property(key)
	if !ok {
		return &UnknownPropertyError{Key: key}
	}
	return p.ValidateValue(key, value)
}

// Resolve overlays user values on the registered defaults.
//
// Values for registered keys are validated; an invalid value is dropped in
// favour of the default and reported in the returned *schema.ValidationErrors.
// Keys the registry does not know are passed through unchanged, since a
// settings file is shared with contributors that may not be registered yet.
func (r *Registry) Resolve(values map[string]any) (map[string]any, error) {
	result := r.Defaults()
	errs := &schema.ValidationErrors{}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := values[key]
		p, ok := r.Property(key)
		if !ok {
			result[key] = value
			continue
		}
		if err := p.ValidateValue(key, value); err != nil {
			var verr *schema.ValidationError
			if errors.As(err, &verr) {
				errs.AddError(verr)
			} else {
				errs.Add(key, err.Error())
			}
			continue
		}
		result[key] = value
	}

	return result, errs.AsError()
}
