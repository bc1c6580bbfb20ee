package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func recordTransaction(t *testing.T, r *gin.Engine, token string, body gin.H) envelope {
	t.Helper()
	w, env := doJSON(t, r, http.MethodPost, "/api/transactions", token, body)
	if w.Code != http.StatusOK {
		t.Fatalf("record transaction: got %d %s", w.Code, w.Body.String())
	}
	return env
}

func TestRecordAndListTransaction(t *testing.T) {
	db := setupDB(t)
	r := setupRouter(t, db, "")
	token := registerAndLogin(t, r)

	recordTransaction(t, r, token, gin.H{
		"shop_name":    "Gampaha",
		"date":         "2024-01-15",
		"sales":        "1000",
		"cash_out":     "200",
		"expenses":     gin.H{"Salary": "300"},
		"description":  "test",
		"bank_deposit": "500",
	})

	w, env := doJSON(t, r, http.MethodGet, "/api/transactions", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: got %d", w.Code)
	}

	items, _ := env.Data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("got %d transactions, want 1", len(items))
	}
	item := items[0].(map[string]interface{})

	checks := map[string]string{
		"shop_name":    "Gampaha",
		"date":         "2024-01-15",
		"sales":        "1000.00",
		"cash_out":     "200.00",
		"description":  "test",
		"bank_deposit": "500.00",
	}
	for field, want := range checks {
		if got := item[field]; got != want {
			t.Errorf("%s: got %v, want %v", field, got, want)
		}
	}

	// expenses round-trip through the JSON document column
	expenses, _ := item["expenses"].(map[string]interface{})
	if len(expenses) != 1 {
		t.Fatalf("got %d expense entries, want 1", len(expenses))
	}
	if got := expenses["Salary"]; got != "300" {
		t.Errorf("Salary expense: got %v, want 300", got)
	}
}

func TestRecordTransactionRejectsNegativeAmounts(t *testing.T) {
	db := setupDB(t)
	r := setupRouter(t, db, "")
	token := registerAndLogin(t, r)

	for field, body := range map[string]gin.H{
		"sales":        {"shop_name": "Gampaha", "date": "2024-01-15", "sales": "-1"},
		"cash_out":     {"shop_name": "Gampaha", "date": "2024-01-15", "cash_out": "-1"},
		"bank_deposit": {"shop_name": "Gampaha", "date": "2024-01-15", "bank_deposit": "-1"},
		"expense":      {"shop_name": "Gampaha", "date": "2024-01-15", "expenses": gin.H{"Rent": "-5"}},
	} {
		w, _ := doJSON(t, r, http.MethodPost, "/api/transactions", token, body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("negative %s: got %d, want 400", field, w.Code)
		}
	}
}

func TestRecordTransactionRejectsUnknownShopAndCategory(t *testing.T) {
	db := setupDB(t)
	r := setupRouter(t, db, "")
	token := registerAndLogin(t, r)

	w, _ := doJSON(t, r, http.MethodPost, "/api/transactions", token, gin.H{
		"shop_name": "Colombo",
		"date":      "2024-01-15",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown shop: got %d, want 400", w.Code)
	}

	w, _ = doJSON(t, r, http.MethodPost, "/api/transactions", token, gin.H{
		"shop_name": "Gampaha",
		"date":      "2024-01-15",
		"expenses":  gin.H{"Fuel": "10"},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown category: got %d, want 400", w.Code)
	}
}

func TestTransactionDefaultsToZeroAmounts(t *testing.T) {
	db := setupDB(t)
	r := setupRouter(t, db, "")
	token := registerAndLogin(t, r)

	// only the required fields; every amount omitted
	recordTransaction(t, r, token, gin.H{
		"shop_name": "Nittambuwa",
		"date":      "2024-02-01",
	})

	_, env := doJSON(t, r, http.MethodGet, "/api/transactions", token, nil)
	items, _ := env.Data["items"].([]interface{})
	item := items[0].(map[string]interface{})
	for _, field := range []string{"sales", "cash_out", "bank_deposit"} {
		if got := item[field]; got != "0.00" {
			t.Errorf("%s: got %v, want 0.00", field, got)
		}
	}
}

func TestListDepositsOnlyPositive(t *testing.T) {
	db := setupDB(t)
	r := setupRouter(t, db, "")
	token := registerAndLogin(t, r)

	recordTransaction(t, r, token, gin.H{
		"shop_name": "Gampaha", "date": "2024-01-15", "bank_deposit": "500",
	})
	recordTransaction(t, r, token, gin.H{
		"shop_name": "Nittambuwa", "date": "2024-01-16",
	})

	_, env := doJSON(t, r, http.MethodGet, "/api/deposits", token, nil)
	items, _ := env.Data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("got %d deposits, want 1", len(items))
	}
	item := items[0].(map[string]interface{})
	if item["shop_name"] != "Gampaha" || item["bank_deposit"] != "500.00" {
		t.Errorf("unexpected deposit row: %v", item)
	}
}

func TestListTransactionsShopFilter(t *testing.T) {
	db := setupDB(t)
	r := setupRouter(t, db, "")
	token := registerAndLogin(t, r)

	recordTransaction(t, r, token, gin.H{"shop_name": "Gampaha", "date": "2024-01-15", "sales": "100"})
	recordTransaction(t, r, token, gin.H{"shop_name": "Nittambuwa", "date": "2024-01-15", "sales": "200"})

	_, env := doJSON(t, r, http.MethodGet, "/api/transactions?shop=Gampaha", token, nil)
	items, _ := env.Data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("got %d transactions, want 1", len(items))
	}
	if items[0].(map[string]interface{})["shop_name"] != "Gampaha" {
		t.Error("filter returned the wrong shop")
	}

	w, _ := doJSON(t, r, http.MethodGet, "/api/transactions?shop=Colombo", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown shop filter: got %d, want 400", w.Code)
	}
}
