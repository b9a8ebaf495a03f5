package client

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// bannerSuppression is how long a dismissed offline banner stays hidden
// before a still-failing probe may show it again.
const bannerSuppression = 10 * time.Second

// ConnectivityMonitor tracks reachability of the API and drives the offline
// banner: a failed probe shows the banner once, dismissing it suppresses
// re-display for a window, and a successful probe clears everything.
type ConnectivityMonitor struct {
	probe func(ctx context.Context) error
	now   func() time.Time

	mu              sync.Mutex
	offline         bool
	bannerVisible   bool
	suppressedUntil time.Time
}

// NewConnectivityMonitor builds a monitor around a probe function, usually
// a cheap GET against the health endpoint.
func NewConnectivityMonitor(probe func(ctx context.Context) error) *ConnectivityMonitor {
	return &ConnectivityMonitor{
		probe: probe,
		now:   time.Now,
	}
}

// HealthProbe adapts a Client into a probe for the monitor.
func HealthProbe(c *Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
		if err != nil {
			return err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		resp.Body.Close()
		// A 503 is the health handler reporting the database unreachable.
		if resp.StatusCode >= 400 {
			return fmt.Errorf("health endpoint returned %d", resp.StatusCode)
		}
		return nil
	}
}

// Check runs the probe and updates banner state. It returns true when the
// API is reachable.
func (m *ConnectivityMonitor) Check(ctx context.Context) bool {
	err := m.probe(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err == nil {
		m.offline = false
		m.bannerVisible = false
		m.suppressedUntil = time.Time{}
		return true
	}

	m.offline = true
	if m.now().Before(m.suppressedUntil) {
		return false
	}
	m.bannerVisible = true
	return false
}

// Offline reports the result of the last probe.
func (m *ConnectivityMonitor) Offline() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.offline
}

// BannerVisible reports whether the offline banner should render.
func (m *ConnectivityMonitor) BannerVisible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bannerVisible
}

// Dismiss hides the banner and suppresses re-display for the suppression
// window. The offline flag itself is untouched.
func (m *ConnectivityMonitor) Dismiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bannerVisible = false
	m.suppressedUntil = m.now().Add(bannerSuppression)
}

// Retry re-probes immediately, clearing any suppression first so a failure
// surfaces the banner again.
func (m *ConnectivityMonitor) Retry(ctx context.Context) bool {
	m.mu.Lock()
	m.suppressedUntil = time.Time{}
	m.mu.Unlock()
	return m.Check(ctx)
}
