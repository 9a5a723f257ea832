package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "campusledger-cli",
		Short: "CampusLedger CLI tool",
		Long:  `A command line interface for interacting with the CampusLedger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the CampusLedger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	rosterCmd := &cobra.Command{
		Use:   "roster",
		Short: "Roster operations",
	}

	uploadCmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a roster file (csv or xlsx)",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			uploadRoster(args[0])
		},
	}
	rosterCmd.AddCommand(uploadCmd)

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the institution-wide financial summary",
		Run: func(cmd *cobra.Command, args []string) {
			showSummary()
		},
	}

	var reportYear int
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Show the monthly financial report",
		Run: func(cmd *cobra.Command, args []string) {
			showMonthlyReport(reportYear)
		},
	}
	reportCmd.Flags().IntVar(&reportYear, "year", 0, "Calendar year (defaults to current)")

	rootCmd.AddCommand(rosterCmd, summaryCmd, reportCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func uploadRoster(path string) {
	file, err := os.Open(path)
	if err != nil {
		fmt.Printf("Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	if _, err := io.Copy(fw, file); err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		os.Exit(1)
	}
	mw.Close()

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+"/api/v1/students/upload", mw.FormDataContentType(), &buf)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Upload FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result struct {
		TotalRecords    int `json:"total_records"`
		NewStudents     int `json:"new_students"`
		UpdatedStudents int `json:"updated_students"`
		Errors          int `json:"errors"`
		ErrorDetails    []struct {
			Identifier string `json:"identifier"`
			Message    string `json:"message"`
		} `json:"error_details"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Processed %d rows: %d created, %d updated, %d failed\n",
		result.TotalRecords, result.NewStudents, result.UpdatedStudents, result.Errors)
	for _, detail := range result.ErrorDetails {
		fmt.Printf("  %s: %s\n", detail.Identifier, detail.Message)
	}
}

func showSummary() {
	body := getJSON(baseURL + "/api/v1/summary")

	var summary struct {
		TotalIncome      string `json:"total_income"`
		TotalExpenditure string `json:"total_expenditure"`
		Balance          string `json:"balance"`
		Status           string `json:"status"`
		StudentCount     int    `json:"student_count"`
	}
	if err := json.Unmarshal(body, &summary); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Income:      %s\n", summary.TotalIncome)
	fmt.Printf("Expenditure: %s\n", summary.TotalExpenditure)
	fmt.Printf("Balance:     %s (%s)\n", summary.Balance, summary.Status)
	fmt.Printf("Students:    %d\n", summary.StudentCount)
}

func showMonthlyReport(year int) {
	url := baseURL + "/api/v1/reports/monthly"
	if year != 0 {
		url += "?year=" + strconv.Itoa(year)
	}
	body := getJSON(url)

	var report struct {
		Year   int `json:"year"`
		Months []struct {
			Month       int    `json:"month"`
			Income      string `json:"income"`
			Expenditure string `json:"expenditure"`
			Balance     string `json:"balance"`
		} `json:"months"`
		TotalIncome      string `json:"total_income"`
		TotalExpenditure string `json:"total_expenditure"`
	}
	if err := json.Unmarshal(body, &report); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Report for %d\n", report.Year)
	for _, m := range report.Months {
		fmt.Printf("  %02d  income=%-12s expenditure=%-12s balance=%s\n",
			m.Month, m.Income, m.Expenditure, m.Balance)
	}
	fmt.Printf("Total: income=%s expenditure=%s\n", report.TotalIncome, report.TotalExpenditure)
}

func getJSON(url string) []byte {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(url)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	return body
}
