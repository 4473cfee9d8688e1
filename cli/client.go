package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"
)

// ApiClient handles API requests to the dining-hall service
type ApiClient struct {
	httpClient *http.Client
	BaseURL    string
	UseMock    bool
}

// NewApiClient creates a new API client
func NewApiClient() *ApiClient {
	baseURL := os.Getenv("REFECTORY_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	client := &ApiClient{
		httpClient: &http.Client{
			Timeout: time.Second * 10,
		},
		BaseURL: baseURL,
		UseMock: false, // Default to trying the real server first
	}

	// Verify connectivity - if server is not available, use mock data
	if !client.ping() {
		fmt.Printf("Warning: API server at %s is not available. Using mock data.\n", baseURL)
		client.UseMock = true
	}

	return client
}

// ping checks if the API server is available
func (c *ApiClient) ping() bool {
	resp, err := c.httpClient.Get(c.BaseURL + "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// MissingGuest is one guest without an order on the report date
type MissingGuest struct {
	GuestID  uint   `json:"guest_id"`
	FullName string `json:"full_name"`
	Table    int    `json:"table"`
	Place    int    `json:"place"`
}

// MissingReport is the per-diet missing-order board
type MissingReport struct {
	Date         string                    `json:"date"`
	TotalMissing int                       `json:"total_missing"`
	ByDiet       map[string][]MissingGuest `json:"by_diet"`
	Message      string                    `json:"message,omitempty"`
}

// AssignResult is the outcome of a bulk default assignment
type AssignResult struct {
	Date    string `json:"date"`
	Updated int    `json:"updated"`
	Message string `json:"message,omitempty"`
}

// WaiterRow is one dish line of the waiter sheet
type WaiterRow struct {
	Dish   string `json:"dish"`
	Total  int    `json:"total"`
	Tables string `json:"tables"`
}

// WaiterBlock groups the waiter rows of one meal
type WaiterBlock struct {
	Meal string      `json:"meal"`
	Rows []WaiterRow `json:"rows"`
}

// WaiterReport is the compact waiter sheet
type WaiterReport struct {
	Date  string        `json:"date"`
	Meals []WaiterBlock `json:"meals"`
}

// DishSummary is the kitchen view of one dish
type DishSummary struct {
	Dish   string `json:"dish"`
	Total  int    `json:"total"`
	Tables []int  `json:"tables"`
}

// KitchenReport is the per-dish portion summary
type KitchenReport struct {
	Date   string        `json:"date"`
	Dishes []DishSummary `json:"dishes"`
}

// RotationInfo is the resolved cycle for a date
type RotationInfo struct {
	Date      string `json:"date"`
	CycleID   uint   `json:"cycle_id"`
	CycleName string `json:"cycle_name"`
	DayIndex  int    `json:"day_index"`
	Message   string `json:"message,omitempty"`
}

// GetMissing fetches the missing-order board. An empty date means the
// currently open selection window.
func (c *ApiClient) GetMissing(date string) (*MissingReport, error) {
	if c.UseMock {
		return mockMissing(), nil
	}
	endpoint := c.BaseURL + "/api/v1/orders/missing"
	if date != "" {
		endpoint += "?date=" + url.QueryEscape(date)
	}
	report := &MissingReport{}
	if err := c.getJSON(endpoint, report); err != nil {
		return nil, err
	}
	return report, nil
}

// AssignDefaults fills every missing guest of the diet with the default
// selections. diet "all" covers every diet.
func (c *ApiClient) AssignDefaults(date, diet string) (*AssignResult, error) {
	if c.UseMock {
		return &AssignResult{Date: date, Updated: 0, Message: "mock mode"}, nil
	}
	body, err := json.Marshal(map[string]string{
		"date":      date,
		"diet_kind": diet,
	})
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Post(c.BaseURL+"/api/v1/orders/assign", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("assign failed with status code: %d", resp.StatusCode)
	}
	result := &AssignResult{}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetWaiterReport fetches the waiter sheet for a table range
func (c *ApiClient) GetWaiterReport(date string, tableFrom, tableTo int) (*WaiterReport, error) {
	if c.UseMock {
		return mockWaiter(date), nil
	}
	endpoint := fmt.Sprintf("%s/api/v1/reports/waiter?table_from=%d&table_to=%d", c.BaseURL, tableFrom, tableTo)
	if date != "" {
		endpoint += "&date=" + url.QueryEscape(date)
	}
	report := &WaiterReport{}
	if err := c.getJSON(endpoint, report); err != nil {
		return nil, err
	}
	return report, nil
}

// GetKitchenReport fetches the per-dish portion totals
func (c *ApiClient) GetKitchenReport(date string) (*KitchenReport, error) {
	if c.UseMock {
		return mockKitchen(date), nil
	}
	endpoint := c.BaseURL + "/api/v1/reports/kitchen"
	if date != "" {
		endpoint += "?date=" + url.QueryEscape(date)
	}
	report := &KitchenReport{}
	if err := c.getJSON(endpoint, report); err != nil {
		return nil, err
	}
	return report, nil
}

// ResolveRotation asks which cycle and day a date falls on
func (c *ApiClient) ResolveRotation(date string) (*RotationInfo, error) {
	if c.UseMock {
		return &RotationInfo{Date: date, CycleName: "Menu No. 1", DayIndex: 1}, nil
	}
	endpoint := c.BaseURL + "/api/v1/rotation/resolve"
	if date != "" {
		endpoint += "?date=" + url.QueryEscape(date)
	}
	info := &RotationInfo{}
	if err := c.getJSON(endpoint, info); err != nil {
		return nil, err
	}
	return info, nil
}

func (c *ApiClient) getJSON(endpoint string, out interface{}) error {
	resp, err := c.httpClient.Get(endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request failed with status code: %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Mock data for offline demonstrations

func mockMissing() *MissingReport {
	return &MissingReport{
		Date:         time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
		TotalMissing: 3,
		ByDiet: map[string][]MissingGuest{
			"P": {
				{GuestID: 1, FullName: "Ivanova A.P.", Table: 12, Place: 1},
				{GuestID: 2, FullName: "Sidorov K.M.", Table: 12, Place: 2},
			},
			"B": {
				{GuestID: 3, FullName: "Petrov N.N.", Table: 40, Place: 3},
			},
		},
	}
}

func mockWaiter(date string) *WaiterReport {
	return &WaiterReport{
		Date: date,
		Meals: []WaiterBlock{
			{Meal: "lunch", Rows: []WaiterRow{
				{Dish: "Borscht", Total: 2, Tables: "12(1,2)"},
				{Dish: "Beef stew", Total: 1, Tables: "12(1)"},
			}},
		},
	}
}

func mockKitchen(date string) *KitchenReport {
	return &KitchenReport{
		Date: date,
		Dishes: []DishSummary{
			{Dish: "Borscht", Total: 14, Tables: []int{12, 13, 40}},
			{Dish: "Beef stew", Total: 9, Tables: []int{12, 40}},
		},
	}
}
