package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Responses for known and unknown emails must be byte-identical, so the
// endpoint cannot be used to probe which accounts exist.
func TestResetPasswordResponseIndistinguishable(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	gin.SetMode(gin.TestMode)

	db, mock := newMockDB(t)
	ac := NewAuthController(db)
	r := gin.New()
	r.POST("/api/reset-password", ac.ResetPassword)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).AddRow(5, "asha@example.com"))
	known := postJSON(t, r, "/api/reset-password", `{"email":"asha@example.com"}`)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))
	unknown := postJSON(t, r, "/api/reset-password", `{"email":"nobody@example.com"}`)

	if known.Code != http.StatusOK || unknown.Code != http.StatusOK {
		t.Fatalf("codes = %d / %d, want 200 for both", known.Code, unknown.Code)
	}
	if known.Body.String() != unknown.Body.String() {
		t.Errorf("bodies differ:\nknown:   %s\nunknown: %s", known.Body.String(), unknown.Body.String())
	}
	if strings.Contains(known.Body.String(), "reset_token") {
		t.Error("reset token must not be returned in the response body")
	}
}
