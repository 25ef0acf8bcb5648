package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmercer/compass/internal/model"
)

// TestSearcher_staleResponseNeverWins reproduces the debounced-search race:
// a slow response for an old query must not replace the result of a newer
// one. The old call is cancelled and reports supersession instead.
func TestSearcher_staleResponseNeverWins(t *testing.T) {
	slowStarted := make(chan struct{})
	releaseSlow := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "slow" {
			close(slowStarted)
			select {
			case <-releaseSlow:
			case <-r.Context().Done():
			}
		}
		w.Write([]byte(`{"items":[{"id":1,"name":"Result U","city":"X","state":"CA"}],"total":1,"page":1,"page_size":20}`))
	}))
	defer srv.Close()

	s := NewSearcher(NewClient(srv.URL))

	var wg sync.WaitGroup
	var slowErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, slowErr = s.Search(context.Background(), "sess", model.InstitutionSearch{Query: "slow"})
	}()

	<-slowStarted

	page, err := s.Search(context.Background(), "sess", model.InstitutionSearch{Query: "fast"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Result U", page.Items[0].Name)

	close(releaseSlow)
	wg.Wait()

	assert.True(t, errors.Is(slowErr, ErrSuperseded), "stale query should report supersession, got %v", slowErr)
}

func TestSearcher_independentSessionsDoNotInterfere(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[],"total":0,"page":1,"page_size":20}`))
	}))
	defer srv.Close()

	s := NewSearcher(NewClient(srv.URL))

	var wg sync.WaitGroup
	for _, key := range []string{"a", "b", "c"} {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			_, err := s.Search(context.Background(), key, model.InstitutionSearch{Query: key})
			assert.NoError(t, err)
		}(key)
	}
	wg.Wait()
}

func TestSearcher_sequentialQueriesAllSucceed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[],"total":0,"page":1,"page_size":20}`))
	}))
	defer srv.Close()

	s := NewSearcher(NewClient(srv.URL))
	for i := 0; i < 3; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err := s.Search(ctx, "sess", model.InstitutionSearch{Query: "q"})
		cancel()
		require.NoError(t, err)
	}
}
