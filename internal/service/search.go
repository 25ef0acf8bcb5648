package service

import (
	"context"
	"errors"
	"sync"

	"github.com/jmercer/compass/internal/model"
)

// ErrSuperseded reports that a newer query for the same session arrived
// while this one was in flight. Callers drop the result and render nothing;
// the newer call carries the response the user should see.
var ErrSuperseded = errors.New("search superseded by a newer query")

// Searcher serializes debounced search traffic so stale responses can never
// overwrite a newer result list. Per session key, starting a search cancels
// the previous in-flight request; only the most recent query's response is
// delivered.
type Searcher struct {
	client *Client

	mu       sync.Mutex
	inflight map[string]*searchToken
}

type searchToken struct {
	cancel context.CancelFunc
}

// NewSearcher wraps a backend client with latest-wins search coordination.
func NewSearcher(client *Client) *Searcher {
	return &Searcher{
		client:   client,
		inflight: make(map[string]*searchToken),
	}
}

// Search runs an institution search for the given session key. If a newer
// Search for the same key starts before this one finishes, this call
// returns ErrSuperseded instead of its (now stale) result.
func (s *Searcher) Search(ctx context.Context, key string, params model.InstitutionSearch) (model.InstitutionPage, error) {
	ctx, cancel := context.WithCancel(ctx)
	token := &searchToken{cancel: cancel}

	s.mu.Lock()
	if prev, ok := s.inflight[key]; ok {
		prev.cancel()
	}
	s.inflight[key] = token
	s.mu.Unlock()

	page, err := s.client.SearchInstitutions(ctx, params)

	s.mu.Lock()
	latest := s.inflight[key] == token
	if latest {
		delete(s.inflight, key)
	}
	s.mu.Unlock()
	cancel()

	if !latest {
		return model.InstitutionPage{}, ErrSuperseded
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return model.InstitutionPage{}, ErrSuperseded
		}
		return model.InstitutionPage{}, err
	}
	return page, nil
}
