// Command import backfills historical observations from a CSV file of
// "date,value" rows (day-first dates) through the public API.
package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/emrekzl/trackly-backend/internal/dto"
	"github.com/emrekzl/trackly-backend/internal/timeparse"
)

func main() {
	csvPath := flag.String("csv", "", "path to CSV file with date,value rows")
	baseURL := flag.String("url", "", "API base URL, e.g. http://localhost:8080")
	email := flag.String("email", "", "account email")
	passwd := flag.String("password", "", "account password")
	metricName := flag.String("metric", "imported", "metric name to record values under")
	flag.Parse()

	if *csvPath == "" || *baseURL == "" || *email == "" || *passwd == "" {
		flag.Usage()
		os.Exit(2)
	}

	entries, err := parseCSV(*csvPath)
	if err != nil {
		slog.Error("failed to parse CSV", "path", *csvPath, "error", err)
		os.Exit(1)
	}

	client := &apiClient{
		base: normalizeURL(*baseURL),
		http: &http.Client{Timeout: 30 * time.Second},
	}

	if err := client.login(*email, *passwd); err != nil {
		slog.Error("login failed", "error", err)
		os.Exit(1)
	}
	slog.Info("authenticated", "email", *email)

	metricID, err := client.createMetric(*metricName)
	if err != nil {
		slog.Error("metric creation failed", "error", err)
		os.Exit(1)
	}

	if err := client.addValues(metricID, entries); err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}
	slog.Info("import complete", "metric", *metricName, "entries", len(entries))
}

func parseCSV(path string) ([]dto.ValueEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}

	entries := make([]dto.ValueEntry, 0, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("row %d: expected date,value", i+1)
		}
		ts, err := timeparse.ParseDayFirst(row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		entries = append(entries, dto.ValueEntry{Value: value, Timestamp: ts.Unix()})
	}
	return entries, nil
}

func normalizeURL(raw string) string {
	if !strings.Contains(raw, "http") {
		raw = "http://" + raw
	}
	return strings.TrimRight(raw, "/")
}

type apiClient struct {
	base        string
	http        *http.Client
	accessToken string
}

func (c *apiClient) login(email, passwd string) error {
	var resp dto.AuthResponse
	err := c.post("/api/auth/login", dto.LoginRequest{Email: email, Password: passwd}, &resp)
	if err != nil {
		return err
	}
	c.accessToken = resp.AccessToken
	return nil
}

func (c *apiClient) createMetric(name string) (string, error) {
	var metric struct {
		ID string `json:"id"`
	}
	if err := c.post("/api/metrics/", dto.CreateMetricRequest{Name: name}, &metric); err != nil {
		return "", err
	}
	return metric.ID, nil
}

func (c *apiClient) addValues(metricID string, entries []dto.ValueEntry) error {
	return c.post("/api/metrics/"+metricID+"/values", entries, nil)
}

func (c *apiClient) post(path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.base+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: unexpected status %d", http.MethodPost, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
