package gateway

import (
	"context"
	"fmt"
	"sync"
)

// ClientProvider constructs the backend lazily, at most once. A missing key
// fails with ErrConfiguration and memoizes nothing, so a later call can
// succeed once the key is present.
type ClientProvider struct {
	cfg     Config
	apiKey  func() string
	factory BackendFactory

	mu      sync.Mutex
	backend Backend
}

func NewClientProvider(cfg Config) *ClientProvider {
	return NewClientProviderWithFactory(cfg, EnvKeySource(cfg.APIKey), NewBackend)
}

func NewClientProviderWithFactory(cfg Config, apiKey func() string, factory BackendFactory) *ClientProvider {
	return &ClientProvider{
		cfg:     cfg,
		apiKey:  apiKey,
		factory: factory,
	}
}

func (p *ClientProvider) Backend(ctx context.Context) (Backend, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.backend != nil {
		return p.backend, nil
	}

	key := p.apiKey()
	if key == "" {
		return nil, fmt.Errorf("%w: API_KEY environment variable not set", ErrConfiguration)
	}

	backend, err := p.factory(ctx, p.cfg, key)
	if err != nil {
		return nil, err
	}

	p.backend = backend
	return backend, nil
}

var (
	defaultOnce     sync.Once
	defaultProvider *ClientProvider
)

// Default returns the process-wide provider. The config of the first call wins.
func Default(cfg Config) *ClientProvider {
	defaultOnce.Do(func() {
		defaultProvider = NewClientProvider(cfg)
	})
	return defaultProvider
}
