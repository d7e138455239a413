package contact

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/smileynet/contacts/internal/gateway"
)

// DefaultEndpoint is the contact collection the viewer loads when none is configured.
const DefaultEndpoint = "https://jsonplaceholder.typicode.com/users"

// Requester performs a single gateway request.
type Requester interface {
	Do(ctx context.Context, r gateway.Request, v any) error
}

// Source loads the contact collection from a fixed endpoint.
type Source struct {
	requester Requester
	endpoint  string
	logger    zerolog.Logger
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithEndpoint overrides DefaultEndpoint.
func WithEndpoint(url string) SourceOption {
	return func(s *Source) {
		if url != "" {
			s.endpoint = url
		}
	}
}

// WithLogger sets the logger for load events.
func WithLogger(l zerolog.Logger) SourceOption {
	return func(s *Source) {
		s.logger = l
	}
}

// NewSource creates a Source that fetches through r.
func NewSource(r Requester, opts ...SourceOption) *Source {
	s := &Source{
		requester: r,
		endpoint:  DefaultEndpoint,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Endpoint returns the URL the source fetches from.
func (s *Source) Endpoint() string {
	return s.endpoint
}

// Fetch performs one GET against the endpoint and returns the collection
// sorted by name. Each call produces a fresh collection.
func (s *Source) Fetch(ctx context.Context) ([]Contact, error) {
	log := s.logger.With().Str("load_id", uuid.NewString()).Logger()
	log.Info().Str("endpoint", s.endpoint).Msg("loading contacts")

	var contacts []Contact
	err := s.requester.Do(ctx, gateway.Request{
		Method: http.MethodGet,
		URL:    s.endpoint,
		Header: http.Header{"Content-Type": {"application/json"}},
	}, &contacts)
	if err != nil {
		log.Error().Err(err).Msg("loading contacts failed")
		return nil, fmt.Errorf("contact: fetching %s: %w", s.endpoint, err)
	}

	log.Info().Int("count", len(contacts)).Msg("contacts loaded")
	return SortByName(contacts), nil
}
