package assessment_test

import (
	"sync"
	"testing"

	"github.com/RaheesAhmed/growthcompass/internal/assessment"
	"github.com/stretchr/testify/require"
)

func TestStoreLifecycle(t *testing.T) {
	t.Parallel()
	store := assessment.NewStore()

	err := store.Do("missing", func(*assessment.Session) error { return nil })
	require.ErrorIs(t, err, assessment.ErrSessionNotFound)

	session := newTestSession(t)
	store.Put(session)

	err = store.Do(session.ID(), func(s *assessment.Session) error {
		require.Same(t, session, s)
		return nil
	})
	require.NoError(t, err)

	store.Delete(session.ID())
	err = store.Do(session.ID(), func(*assessment.Session) error { return nil })
	require.ErrorIs(t, err, assessment.ErrSessionNotFound)
}

// A double-click race delivers the same submission twice; serialization must
// let exactly one through and reject the other as a stale transition.
func TestStoreSerializesSubmissions(t *testing.T) {
	t.Parallel()
	store := assessment.NewStore()
	session := newTestSession(t)
	store.Put(session)

	const attempts = 8
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- store.Do(session.ID(), func(s *assessment.Session) error {
				if s.State() != assessment.StateAwaitingLevelOneRating {
					return assessment.ErrInvalidTransition
				}
				_, err := s.SubmitLevelOneRating(2, 2)
				return err
			})
		}()
	}
	wg.Wait()
	close(results)

	var succeeded int
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, assessment.ErrInvalidTransition)
		}
	}
	require.Equal(t, 1, succeeded)
	require.Equal(t, assessment.StateAwaitingDeepDiveDecision, session.State())
}
