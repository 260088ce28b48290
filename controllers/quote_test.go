package controllers

import (
	"crmhub-backend/config"
	"crmhub-backend/models"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateQuoteComputesTotalsServerSide(t *testing.T) {
	setupTestDB(t)
	r := testRouter()

	w := doJSON(t, r, "POST", "/api/quotes", map[string]interface{}{
		"quoteNumber":   "Q-2026-001",
		"clientCompany": "Acme",
		"items": []map[string]interface{}{
			{"name": "Licenses", "quantity": 10, "rate": 99.5},
			{"name": "Onboarding", "quantity": 1, "rate": 500},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var quote models.Quote
	require.NoError(t, config.DB.Preload("Items").First(&quote).Error)
	assert.Equal(t, "Draft", quote.Status) // default
	assert.InDelta(t, 1495.0, quote.Subtotal, 0.001)
	assert.InDelta(t, 1495.0, quote.Total, 0.001)
	require.Len(t, quote.Items, 2)
	assert.InDelta(t, 995.0, quote.Items[0].Total, 0.001)
}

func TestCreateQuoteZeroQuantityDefaultsToOne(t *testing.T) {
	setupTestDB(t)
	r := testRouter()

	w := doJSON(t, r, "POST", "/api/quotes", map[string]interface{}{
		"quoteNumber":   "Q-2026-002",
		"clientCompany": "Acme",
		"items": []map[string]interface{}{
			{"name": "Support", "rate": 100},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var quote models.Quote
	require.NoError(t, config.DB.Preload("Items").First(&quote).Error)
	require.Len(t, quote.Items, 1)
	assert.Equal(t, 1, quote.Items[0].Quantity)
	assert.InDelta(t, 100.0, quote.Subtotal, 0.001)
}

func TestCreateQuoteInvalidStatusRejected(t *testing.T) {
	setupTestDB(t)
	r := testRouter()

	w := doJSON(t, r, "POST", "/api/quotes", map[string]interface{}{
		"quoteNumber":   "Q-2026-003",
		"clientCompany": "Acme",
		"status":        "Pondering",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateQuoteDuplicateNumberConflicts(t *testing.T) {
	setupTestDB(t)
	r := testRouter()

	payload := map[string]interface{}{
		"quoteNumber":   "Q-2026-004",
		"clientCompany": "Acme",
	}
	w := doJSON(t, r, "POST", "/api/quotes", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "POST", "/api/quotes", payload)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateQuoteReplacesItemsAndRecomputes(t *testing.T) {
	setupTestDB(t)
	r := testRouter()

	w := doJSON(t, r, "POST", "/api/quotes", map[string]interface{}{
		"quoteNumber":   "Q-2026-005",
		"clientCompany": "Acme",
		"items": []map[string]interface{}{
			{"name": "Old line", "quantity": 2, "rate": 50},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var quote models.Quote
	require.NoError(t, config.DB.First(&quote).Error)

	w = doJSON(t, r, "PATCH", "/api/quotes/"+quote.ID.String(), map[string]interface{}{
		"items": []map[string]interface{}{
			{"name": "New line", "quantity": 3, "rate": 200},
		},
		"status": "Sent",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.Quote
	require.NoError(t, config.DB.Preload("Items").First(&updated, "id = ?", quote.ID).Error)
	assert.Equal(t, "Sent", updated.Status)
	assert.InDelta(t, 600.0, updated.Subtotal, 0.001)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, "New line", updated.Items[0].Name)
}

func TestListQuotesStatusSummary(t *testing.T) {
	setupTestDB(t)
	r := testRouter()

	for i, status := range []string{"Draft", "Sent", "Sent"} {
		w := doJSON(t, r, "POST", "/api/quotes", map[string]interface{}{
			"quoteNumber":   "Q-" + string(rune('A'+i)),
			"clientCompany": "Acme",
			"status":        status,
			"items": []map[string]interface{}{
				{"name": "Line", "quantity": 1, "rate": 100},
			},
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, r, "GET", "/api/quotes?status=Sent", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.EqualValues(t, 3, body["total"])
	assert.EqualValues(t, 2, body["filtered"])

	summary := body["summary"].(map[string]interface{})
	assert.EqualValues(t, 200, summary["totalAmount"])
}
