package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// GeocodeController proxies location search to the Nominatim HTTP API,
// biasing queries toward Mumbai.
type GeocodeController struct {
	BaseURL string
	Client  *http.Client
}

type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// GeocodeResult is a parsed Nominatim hit. Lat/lon arrive as strings on the
// wire and are converted here.
type GeocodeResult struct {
	Name     string  `json:"name"`
	FullName string  `json:"fullName"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

func NewGeocodeController() *GeocodeController {
	return &GeocodeController{
		BaseURL: "https://nominatim.openstreetmap.org",
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (gc *GeocodeController) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter q is required", "success": false})
		return
	}

	endpoint := fmt.Sprintf("%s/search?format=json&q=%s&limit=5&addressdetails=1",
		gc.BaseURL, url.QueryEscape(query+" Mumbai Maharashtra India"))

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, endpoint, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build geocoding request", "success": false})
		return
	}

	resp, err := gc.Client.Do(req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Geocoding service unreachable", "success": false})
		return
	}
	defer resp.Body.Close()

	var raw []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Invalid geocoding response", "success": false})
		return
	}

	results := make([]GeocodeResult, 0, len(raw))
	for _, item := range raw {
		lat, latErr := strconv.ParseFloat(item.Lat, 64)
		lon, lonErr := strconv.ParseFloat(item.Lon, 64)
		if latErr != nil || lonErr != nil {
			continue
		}
		results = append(results, GeocodeResult{
			Name:     strings.SplitN(item.DisplayName, ",", 2)[0],
			FullName: item.DisplayName,
			Lat:      lat,
			Lon:      lon,
		})
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: results})
}

func (gc *GeocodeController) Reverse(c *gin.Context) {
	lat := c.Query("lat")
	lon := c.Query("lon")
	if lat == "" || lon == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon are required", "success": false})
		return
	}

	endpoint := fmt.Sprintf("%s/reverse?format=json&lat=%s&lon=%s",
		gc.BaseURL, url.QueryEscape(lat), url.QueryEscape(lon))

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, endpoint, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build geocoding request", "success": false})
		return
	}

	resp, err := gc.Client.Do(req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Geocoding service unreachable", "success": false})
		return
	}
	defer resp.Body.Close()

	var raw nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Invalid geocoding response", "success": false})
		return
	}

	latF, _ := strconv.ParseFloat(raw.Lat, 64)
	lonF, _ := strconv.ParseFloat(raw.Lon, 64)

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: GeocodeResult{
			Name:     strings.SplitN(raw.DisplayName, ",", 2)[0],
			FullName: raw.DisplayName,
			Lat:      latF,
			Lon:      lonF,
		},
	})
}
