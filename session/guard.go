package session

import (
	"context"
	"errors"
	"net/url"
	"time"
)

var (
	// ErrSessionTimeout means the session never resolved before the guard
	// deadline, usually a hung initial fetch.
	ErrSessionTimeout = errors.New("session resolution timed out")

	// ErrUnauthenticated means the session resolved to no user.
	ErrUnauthenticated = errors.New("not authenticated")
)

// DefaultGuardTimeout bounds how long a route guard waits for the initial
// session resolution before giving up.
const DefaultGuardTimeout = 15 * time.Second

// WaitForUser blocks until the session resolves, then returns the current
// user or ErrUnauthenticated. A zero timeout uses DefaultGuardTimeout.
// The wait never spins: it resolves off the subscription stream.
func (s *Store) WaitForUser(ctx context.Context, timeout time.Duration) (*User, error) {
	if timeout <= 0 {
		timeout = DefaultGuardTimeout
	}

	snapshots, cancel := s.Subscribe()
	defer cancel()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
			return nil, ErrSessionTimeout
		case st, ok := <-snapshots:
			if !ok {
				return nil, ErrUnauthenticated
			}
			if st.Loading {
				continue
			}
			if st.User == nil {
				return nil, ErrUnauthenticated
			}
			return st.User, nil
		}
	}
}

// LoginRedirect builds the login path carrying the originating location so
// the user lands back where they started after signing in.
func LoginRedirect(from string) string {
	if from == "" {
		return "/login"
	}
	return "/login?from=" + url.QueryEscape(from)
}
