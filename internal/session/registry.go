package session

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"
)

const DefaultRegistrySize = 1024

// SourceFactory создаёт Source для конкретного токена доступа.
type SourceFactory func(accessToken string) Source

// Registry хранит по одному Guard на токен доступа. Неиспользуемые Guard вытесняются по LRU и по времени.
type Registry struct {
	mu        sync.Mutex
	guards    *expirable.LRU[string, *Guard]
	factory   SourceFactory
	l         *logrus.Logger
	configure func(*Guard)
}

// NewRegistry создаёт реестр на size записей, запись живёт ttl с момента создания.
func NewRegistry(size int, ttl time.Duration, factory SourceFactory, l *logrus.Logger) *Registry {
	if size <= 0 {
		size = DefaultRegistrySize
	}
	return &Registry{
		guards:  expirable.NewLRU[string, *Guard](size, nil, ttl),
		factory: factory,
		l:       l,
	}
}

// SetConfigure задаёт функцию, применяемую к каждому новому Guard.
func (r *Registry) SetConfigure(fn func(*Guard)) *Registry {
	r.configure = fn
	return r
}

// Guard возвращает Guard токена, создавая его при необходимости.
func (r *Registry) Guard(accessToken string) *Guard {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g, ok := r.guards.Get(accessToken); ok {
		return g
	}
	g := NewGuard(r.factory(accessToken), r.l)
	if r.configure != nil {
		r.configure(g)
	}
	r.guards.Add(accessToken, g)
	return g
}

func (r *Registry) Len() int {
	return r.guards.Len()
}

// Resolver подтверждает сессию по токену доступа: берёт Guard токена из реестра и применяет GracePolicy.
type Resolver struct {
	registry *Registry
	policy   GracePolicy
}

func NewResolver(registry *Registry, policy GracePolicy) *Resolver {
	return &Resolver{registry: registry, policy: policy}
}

// ResolveSession возвращает сессию владельца токена или nil, если он не аутентифицирован.
func (r *Resolver) ResolveSession(ctx context.Context, accessToken string) *Session {
	return r.policy.Resolve(ctx, r.registry.Guard(accessToken))
}
