package integration

import (
	"fmt"
	"net/http"
	"testing"

	"amanah/internal/models"
)

func TestReviewFlow(t *testing.T) {
	app := setupApp(t)

	// Score two transactions for different users.
	first := app.detect(t,
		`{"amount":100,"user_id":"buyer-10","transaction_type":"purchase","timestamp":"2025-06-15T10:00:00"}`)
	second := app.detect(t,
		`{"amount":250,"user_id":"buyer-11","transaction_type":"transfer","timestamp":"2025-06-15T11:00:00"}`)

	// Both flags appear in the listing, newest first.
	rec := app.request("GET", "/api/v1/flags", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	flags := parseJSON(t, rec)["flags"].(map[string]interface{})
	if flags["total_items"].(float64) != 2 {
		t.Fatalf("expected 2 flags, got %v", flags["total_items"])
	}
	data := flags["data"].([]interface{})
	newest := data[0].(map[string]interface{})
	if newest["transaction_id"] != second["transaction_id"] {
		t.Errorf("expected newest flag first, got %v", newest["transaction_id"])
	}
	if newest["transaction"].(map[string]interface{})["user_id"] != "buyer-11" {
		t.Error("expected the transaction to be embedded in the listing")
	}

	// Filter by owner.
	rec = app.request("GET", "/api/v1/flags?user_id=buyer-10", "")
	flags = parseJSON(t, rec)["flags"].(map[string]interface{})
	if flags["total_items"].(float64) != 1 {
		t.Errorf("expected 1 flag for buyer-10, got %v", flags["total_items"])
	}

	// Review the first flag.
	flagID := data[1].(map[string]interface{})["id"].(string)
	rec = app.request("PUT", "/api/v1/flags/"+flagID+"/review",
		`{"reviewed":true,"reviewer_comments":"false positive","reviewer_id":"analyst-1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("review failed: %d %s", rec.Code, rec.Body.String())
	}
	reviewed := parseJSON(t, rec)["flag"].(map[string]interface{})
	if reviewed["reviewed"] != true {
		t.Error("expected flag to be reviewed")
	}
	if reviewed["reviewer_comments"] != "false positive" {
		t.Errorf("unexpected comments: %v", reviewed["reviewer_comments"])
	}
	if reviewed["reviewed_at"] == nil {
		t.Error("expected reviewed_at to be set")
	}
	// Detection fields survive the review untouched.
	if reviewed["anomaly_score"].(float64) != first["score"].(float64) {
		t.Errorf("review changed the score: %v", reviewed["anomaly_score"])
	}

	// The review state is visible in a filtered listing.
	rec = app.request("GET", "/api/v1/flags?reviewed=true", "")
	flags = parseJSON(t, rec)["flags"].(map[string]interface{})
	if flags["total_items"].(float64) != 1 {
		t.Errorf("expected 1 reviewed flag, got %v", flags["total_items"])
	}

	// The review left an audit trail.
	var audits []models.AuditLog
	if err := app.DB.Where("action = ?", "REVIEW_FLAG").Find(&audits).Error; err != nil {
		t.Fatalf("audit query failed: %v", err)
	}
	if len(audits) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(audits))
	}
	if audits[0].UserID != "analyst-1" || audits[0].ResourceID != flagID {
		t.Errorf("unexpected audit entry: %+v", audits[0])
	}
}

func TestReviewFlow_Pagination(t *testing.T) {
	app := setupApp(t)

	for i := 0; i < 5; i++ {
		app.detect(t, fmt.Sprintf(
			`{"amount":%d,"user_id":"buyer-20","transaction_type":"purchase","timestamp":"2025-06-15T10:00:00"}`,
			100+i))
	}

	rec := app.request("GET", "/api/v1/flags?page=2&page_size=2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	flags := parseJSON(t, rec)["flags"].(map[string]interface{})
	if len(flags["data"].([]interface{})) != 2 {
		t.Errorf("expected 2 flags on page 2, got %d", len(flags["data"].([]interface{})))
	}
	if flags["total_items"].(float64) != 5 || flags["total_pages"].(float64) != 3 {
		t.Errorf("unexpected pagination metadata: %v", flags)
	}
}

func TestReviewFlow_NotFound(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/api/v1/flags/3b4c1de2-0000-4000-8000-000000000000", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if parseJSON(t, rec)["details"] != "FLAG_NOT_FOUND" {
		t.Errorf("unexpected error payload: %s", rec.Body.String())
	}

	rec = app.request("PUT", "/api/v1/flags/3b4c1de2-0000-4000-8000-000000000000/review", `{"reviewed":true}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = app.request("GET", "/api/v1/transactions/3b4c1de2-0000-4000-8000-000000000001", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if parseJSON(t, rec)["details"] != "TRANSACTION_NOT_FOUND" {
		t.Errorf("unexpected error payload: %s", rec.Body.String())
	}
}
