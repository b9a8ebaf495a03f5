package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/cleanflow-mumbai/api-go/controllers"
	"github.com/cleanflow-mumbai/api-go/session"
)

func newTestServer(t *testing.T) (*httptest.Server, *http.ServeMux) {
	t.Helper()
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, mux
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// tokenBody matches the flat shape issueTokens writes.
func tokenBody(userID int) map[string]any {
	return map[string]any{
		"token_type":    "Bearer",
		"access_token":  "at-1",
		"refresh_token": "rt-1",
		"expires_at":    time.Now().Add(time.Hour).Unix(),
		"user":          map[string]any{"id": userID, "email": "asha@example.com", "full_name": "Asha Kulkarni"},
		"success":       true,
	}
}

// TestSignInAgainstLoginHandler runs the client against the real login
// handler over sqlmock, so a drift between the client's decoding and the
// server's token body fails here.
func TestSignInAgainstLoginHandler(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "full_name", "role_id"}).
			AddRow(5, "asha@example.com", string(hash), "Asha Kulkarni", 1))
	mock.ExpectQuery(`SELECT \* FROM "roles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "user"))
	mock.ExpectQuery(`INSERT INTO "refresh_tokens"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/login", controllers.NewAuthController(db).Login)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	c := New(srv.URL)
	if err := c.SignIn(context.Background(), "asha@example.com", "hunter22"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	sess, _ := c.GetSession(context.Background())
	if sess == nil || sess.AccessToken == "" || sess.RefreshToken == "" {
		t.Fatalf("cached session missing tokens: %+v", sess)
	}
	if sess.User == nil || sess.User.ID != 5 {
		t.Fatalf("cached user = %+v, want id 5", sess.User)
	}
	if sess.ExpiresAt.IsZero() || sess.ExpiresAt.Before(time.Now()) {
		t.Errorf("expires_at = %v, want a future time", sess.ExpiresAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSignInCachesSessionAndEmitsEvent(t *testing.T) {
	srv, mux := newTestServer(t)
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["email"] != "asha@example.com" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, tokenBody(5))
	})

	c := New(srv.URL)
	if err := c.SignIn(context.Background(), "asha@example.com", "hunter22"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	sess, _ := c.GetSession(context.Background())
	if sess == nil || sess.AccessToken != "at-1" || sess.User == nil || sess.User.ID != 5 {
		t.Fatalf("cached session = %+v", sess)
	}

	select {
	case ev := <-c.Events():
		if ev.Type != session.SignedIn {
			t.Errorf("event type = %s, want SIGNED_IN", ev.Type)
		}
		if ev.Session == nil || ev.Session.User.ID != 5 {
			t.Errorf("event session = %+v", ev.Session)
		}
	default:
		t.Fatal("no SIGNED_IN event emitted")
	}
}

func TestSignInBadCredentials(t *testing.T) {
	srv, mux := newTestServer(t)
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "Invalid credentials"})
	})

	c := New(srv.URL)
	if err := c.SignIn(context.Background(), "asha@example.com", "wrong"); err == nil {
		t.Fatal("SignIn should fail")
	}
	if sess, _ := c.GetSession(context.Background()); sess != nil {
		t.Errorf("failed sign-in must not cache a session, got %+v", sess)
	}
	select {
	case ev := <-c.Events():
		t.Errorf("unexpected event %+v", ev)
	default:
	}
}

func TestSignOutEmitsEvenWhenRemoteFails(t *testing.T) {
	srv, mux := newTestServer(t)
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, tokenBody(5))
	})
	mux.HandleFunc("/api/logout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "boom"})
	})

	c := New(srv.URL)
	if err := c.SignIn(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	<-c.Events() // drain SIGNED_IN

	err := c.SignOut(context.Background())
	if err == nil {
		t.Fatal("SignOut should surface the remote error")
	}

	if sess, _ := c.GetSession(context.Background()); sess != nil {
		t.Errorf("session cache not cleared: %+v", sess)
	}
	select {
	case ev := <-c.Events():
		if ev.Type != session.SignedOut {
			t.Errorf("event type = %s, want SIGNED_OUT", ev.Type)
		}
	default:
		t.Fatal("no SIGNED_OUT event emitted")
	}
}

func TestRefreshEmitsTokenRefreshed(t *testing.T) {
	srv, mux := newTestServer(t)
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, tokenBody(5))
	})
	mux.HandleFunc("/api/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["refresh_token"] != "rt-1" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "Invalid refresh token"})
			return
		}
		// Rotation body without a user: identity must carry over.
		writeJSON(w, http.StatusOK, map[string]any{
			"token_type":    "Bearer",
			"access_token":  "at-2",
			"refresh_token": "rt-2",
			"expires_at":    time.Now().Add(time.Hour).Unix(),
			"success":       true,
		})
	})

	c := New(srv.URL)
	if err := c.SignIn(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	<-c.Events()

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	sess, _ := c.GetSession(context.Background())
	if sess.AccessToken != "at-2" || sess.RefreshToken != "rt-2" {
		t.Errorf("rotated session = %+v", sess)
	}
	if sess.User == nil || sess.User.ID != 5 {
		t.Errorf("user should carry over a rotation, got %+v", sess.User)
	}

	select {
	case ev := <-c.Events():
		if ev.Type != session.TokenRefreshed {
			t.Errorf("event type = %s, want TOKEN_REFRESHED", ev.Type)
		}
	default:
		t.Fatal("no TOKEN_REFRESHED event emitted")
	}
}

func TestGetProfileErrorKinds(t *testing.T) {
	srv, mux := newTestServer(t)
	mux.HandleFunc("/api/users/1/profile", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]any{"user_id": 1, "full_name": "Asha Kulkarni", "location": "Mumbai"},
		})
	})
	mux.HandleFunc("/api/users/2/profile", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "Profile not found"})
	})
	mux.HandleFunc("/api/users/3/profile", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"success": false, "error": "setup_required"})
	})

	c := New(srv.URL)

	profile, err := c.GetProfile(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetProfile(1): %v", err)
	}
	if profile.Location != "Mumbai" {
		t.Errorf("profile = %+v", profile)
	}

	_, err = c.GetProfile(context.Background(), 2)
	if !session.IsProfileNotFound(err) {
		t.Errorf("GetProfile(2) err = %v, want not-found kind", err)
	}

	_, err = c.GetProfile(context.Background(), 3)
	pe, ok := err.(*session.ProfileFetchError)
	if !ok || pe.Kind != session.ProfileErrTableMissing {
		t.Errorf("GetProfile(3) err = %v, want table-missing kind", err)
	}
}
