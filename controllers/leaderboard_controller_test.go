package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/cleanflow-mumbai/api-go/utils"
)

func leaderboardRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"user_id", "full_name", "avatar_url", "location", "eco_hero_level", "impact_score", "rank",
	})
}

// The caller's rank must come from the full ranked set, not the requested
// page: the subquery SQL must end at the profiles scan with no ORDER BY,
// LIMIT, or OFFSET leaked in from the page query.
func TestGetLeaderboardUserRankIgnoresPagination(t *testing.T) {
	db, mock := newMockDB(t)
	lc := NewLeaderboardController(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "profiles"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
	mock.ExpectQuery(`SELECT .* FROM "profiles" .* ORDER BY rank LIMIT`).
		WillReturnRows(leaderboardRows().
			AddRow(2, "Asha Kulkarni", "", "Mumbai", "Eco Hero", 540, 1).
			AddRow(3, "Ravi Iyer", "", "Mumbai", "Eco Warrior", 390, 2))
	mock.ExpectQuery(`FROM \(SELECT .* FROM "profiles" WHERE "profiles"\."deleted_at" IS NULL\) as ranked WHERE ranked\.user_id`).
		WillReturnRows(leaderboardRows().
			AddRow(1, "Meera Shah", "", "Mumbai", "Contributor", 60, 19))

	r := authedRouter(&utils.UserClaims{UserID: 1, Role: "user"})
	r.GET("/api/leaderboard", lc.GetLeaderboard)
	w := doRequest(t, r, http.MethodGet, "/api/leaderboard?page=1&pageSize=2")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Leaderboard []LeaderboardEntry `json:"leaderboard"`
		UserRank    LeaderboardEntry   `json:"user_rank"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Leaderboard) != 2 {
		t.Errorf("page size = %d, want 2", len(resp.Leaderboard))
	}
	// Off-page caller still gets a real rank.
	if resp.UserRank.UserID != 1 || resp.UserRank.Rank != 19 {
		t.Errorf("user_rank = %+v, want user 1 at rank 19", resp.UserRank)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
