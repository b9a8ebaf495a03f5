package controllers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/cleanflow-mumbai/api-go/utils"
)

func reportRow(id, userID uint, reportType, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "title", "type", "status", "severity"}).
		AddRow(id, userID, "Oil slick near Juhu beach", reportType, status, "severe")
}

func TestResolveReportNotOwner(t *testing.T) {
	db, mock := newMockDB(t)
	rc := NewReportController(db)

	mock.ExpectQuery(`SELECT \* FROM "reports"`).
		WillReturnRows(reportRow(7, 2, "pollution", "pending"))

	r := authedRouter(&utils.UserClaims{UserID: 1, Role: "user"})
	r.POST("/api/reports/:id/resolve", rc.ResolveReport)
	w := doRequest(t, r, http.MethodPost, "/api/reports/7/resolve")

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d; body %s", w.Code, http.StatusForbidden, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "report owner") {
		t.Errorf("body = %s, want owner error", w.Body.String())
	}
	// The forbidden path must not touch the row.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestResolveReportNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	rc := NewReportController(db)

	mock.ExpectQuery(`SELECT \* FROM "reports"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	r := authedRouter(&utils.UserClaims{UserID: 1, Role: "user"})
	r.POST("/api/reports/:id/resolve", rc.ResolveReport)
	w := doRequest(t, r, http.MethodPost, "/api/reports/99/resolve")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestResolveReportWrongType(t *testing.T) {
	db, mock := newMockDB(t)
	rc := NewReportController(db)

	mock.ExpectQuery(`SELECT \* FROM "reports"`).
		WillReturnRows(reportRow(7, 1, "cleanup", "pending"))

	r := authedRouter(&utils.UserClaims{UserID: 1, Role: "user"})
	r.POST("/api/reports/:id/resolve", rc.ResolveReport)
	w := doRequest(t, r, http.MethodPost, "/api/reports/7/resolve")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d; body %s", w.Code, http.StatusBadRequest, w.Body.String())
	}
}

func TestResolveReportAlreadyResolved(t *testing.T) {
	db, mock := newMockDB(t)
	rc := NewReportController(db)

	mock.ExpectQuery(`SELECT \* FROM "reports"`).
		WillReturnRows(reportRow(7, 1, "pollution", "resolved"))

	r := authedRouter(&utils.UserClaims{UserID: 1, Role: "user"})
	r.POST("/api/reports/:id/resolve", rc.ResolveReport)
	w := doRequest(t, r, http.MethodPost, "/api/reports/7/resolve")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d; body %s", w.Code, http.StatusBadRequest, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "resolved") {
		t.Errorf("body = %s, want status error naming the current status", w.Body.String())
	}
}

func TestResolveReportOwnerSucceeds(t *testing.T) {
	db, mock := newMockDB(t)
	rc := NewReportController(db)

	mock.ExpectQuery(`SELECT \* FROM "reports"`).
		WillReturnRows(reportRow(7, 1, "pollution", "approved"))
	mock.ExpectExec(`UPDATE "reports" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	r := authedRouter(&utils.UserClaims{UserID: 1, Role: "user"})
	r.POST("/api/reports/:id/resolve", rc.ResolveReport)
	w := doRequest(t, r, http.MethodPost, "/api/reports/7/resolve")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body %s", w.Code, http.StatusOK, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
