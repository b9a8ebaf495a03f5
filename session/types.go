package session

import (
	"context"
	"fmt"
	"time"
)

// EventType names the auth lifecycle notifications emitted by the auth
// service.
type EventType string

const (
	SignedIn       EventType = "SIGNED_IN"
	SignedOut      EventType = "SIGNED_OUT"
	TokenRefreshed EventType = "TOKEN_REFRESHED"
)

// User is the identity embedded in a session.
type User struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
}

// Session is the cached token bundle representing a logged-in state. The
// auth service owns the canonical copy; this is read-only here.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         *User     `json:"user"`
}

// Profile is the application-level user record, distinct from the identity.
type Profile struct {
	UserID              uint    `json:"user_id"`
	Email               string  `json:"email"`
	FullName            string  `json:"full_name"`
	AvatarURL           *string `json:"avatar_url"`
	Location            string  `json:"location"`
	ImpactScore         int     `json:"impact_score"`
	EcoHeroLevel        string  `json:"eco_hero_level"`
	ReportsSubmitted    int     `json:"reports_submitted"`
	CleanupDrivesJoined int     `json:"cleanup_drives_joined"`
	VolunteerHours      int     `json:"volunteer_hours"`
	RankPosition        *int    `json:"rank_position"`
}

// Event is one auth lifecycle notification. Session is nil for SIGNED_OUT.
type Event struct {
	Type    EventType
	Session *Session
}

// AuthAPI is the surface of the external authentication service consumed by
// the store.
type AuthAPI interface {
	GetSession(ctx context.Context) (*Session, error)
	Events() <-chan Event
	SignIn(ctx context.Context, email, password string) error
	SignUp(ctx context.Context, email, password, fullName string) error
	SignInWithGoogle(ctx context.Context, code, redirectURI string) error
	ResetPassword(ctx context.Context, email string) error
	SignOut(ctx context.Context) error
}

// ProfileGateway is the data-store boundary for profile rows.
type ProfileGateway interface {
	GetProfile(ctx context.Context, userID uint) (*Profile, error)
	CreateProfile(ctx context.Context, profile *Profile) (*Profile, error)
}

// ProfileErrorKind tags the failure modes of a profile fetch so callers can
// branch without string matching.
type ProfileErrorKind int

const (
	ProfileErrUnknown ProfileErrorKind = iota
	ProfileErrNotFound
	ProfileErrTableMissing
)

type ProfileFetchError struct {
	Kind ProfileErrorKind
	Err  error
}

func (e *ProfileFetchError) Error() string {
	switch e.Kind {
	case ProfileErrNotFound:
		return "profile not found"
	case ProfileErrTableMissing:
		return "profiles table not provisioned"
	default:
		return fmt.Sprintf("profile fetch failed: %v", e.Err)
	}
}

func (e *ProfileFetchError) Unwrap() error { return e.Err }

// IsProfileNotFound reports whether err is a ProfileFetchError of the
// NotFound kind.
func IsProfileNotFound(err error) bool {
	pe, ok := err.(*ProfileFetchError)
	return ok && pe.Kind == ProfileErrNotFound
}
