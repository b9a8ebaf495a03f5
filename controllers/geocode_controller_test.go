package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestGeocodeSearchBiasesToMumbai(t *testing.T) {
	var gotQuery string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"display_name": "Juhu Beach, Mumbai, Maharashtra, India", "lat": "19.0968", "lon": "72.8265"},
			{"display_name": "Somewhere, broken", "lat": "not-a-number", "lon": "72.0"}
		]`))
	}))
	defer upstream.Close()

	gc := &GeocodeController{BaseURL: upstream.URL, Client: upstream.Client()}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/geocode/search", gc.Search)

	w := doRequest(t, r, http.MethodGet, "/api/geocode/search?q=Juhu+Beach")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if gotQuery != "Juhu Beach Mumbai Maharashtra India" {
		t.Errorf("upstream query = %q, want Mumbai bias appended", gotQuery)
	}

	var resp struct {
		Success bool            `json:"success"`
		Data    []GeocodeResult `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	// The unparseable hit is dropped rather than surfaced as a zero point.
	if len(resp.Data) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(resp.Data))
	}
	got := resp.Data[0]
	if got.Name != "Juhu Beach" || got.Lat != 19.0968 || got.Lon != 72.8265 {
		t.Errorf("result = %+v", got)
	}
}

func TestGeocodeSearchRequiresQuery(t *testing.T) {
	gc := NewGeocodeController()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/geocode/search", gc.Search)

	w := doRequest(t, r, http.MethodGet, "/api/geocode/search")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestGeocodeSearchUpstreamDown(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close()

	gc := &GeocodeController{BaseURL: upstream.URL, Client: http.DefaultClient}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/geocode/search", gc.Search)

	w := doRequest(t, r, http.MethodGet, "/api/geocode/search?q=Dadar")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadGateway)
	}
}

func TestGeocodeReverse(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"display_name": "Mahim Creek, Mumbai", "lat": "19.041", "lon": "72.841"}`))
	}))
	defer upstream.Close()

	gc := &GeocodeController{BaseURL: upstream.URL, Client: upstream.Client()}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/geocode/reverse", gc.Reverse)

	w := doRequest(t, r, http.MethodGet, "/api/geocode/reverse?lat=19.041&lon=72.841")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data GeocodeResult `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Data.Name != "Mahim Creek" || resp.Data.Lat != 19.041 {
		t.Errorf("result = %+v", resp.Data)
	}
}
