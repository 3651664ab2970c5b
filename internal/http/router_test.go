package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/medistock/internal/auth"
	"github.com/MrJamesThe3rd/medistock/internal/checkout"
	checkoutStore "github.com/MrJamesThe3rd/medistock/internal/checkout/store"
	"github.com/MrJamesThe3rd/medistock/internal/export"
	api "github.com/MrJamesThe3rd/medistock/internal/http"
	authapi "github.com/MrJamesThe3rd/medistock/internal/http/auth"
	exportapi "github.com/MrJamesThe3rd/medistock/internal/http/export"
	importapi "github.com/MrJamesThe3rd/medistock/internal/http/importcsv"
	inventoryapi "github.com/MrJamesThe3rd/medistock/internal/http/inventory"
	reportapi "github.com/MrJamesThe3rd/medistock/internal/http/report"
	salesapi "github.com/MrJamesThe3rd/medistock/internal/http/sales"
	"github.com/MrJamesThe3rd/medistock/internal/importer"
	"github.com/MrJamesThe3rd/medistock/internal/inventory"
	inventoryStore "github.com/MrJamesThe3rd/medistock/internal/inventory/store"
	"github.com/MrJamesThe3rd/medistock/internal/report"
	"github.com/MrJamesThe3rd/medistock/internal/sales"
	salesStore "github.com/MrJamesThe3rd/medistock/internal/sales/store"
	"github.com/MrJamesThe3rd/medistock/internal/session"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := session.Open(t.TempDir(), session.Seed)
	require.NoError(t, err)

	authSvc := auth.NewService("test-secret", time.Hour)
	invSvc := inventory.NewService(inventoryStore.New(db))
	salesSvc := sales.NewService(salesStore.New(db))
	checkoutSvc := checkout.NewService(checkoutStore.New(db))
	reportSvc := report.NewService(invSvc, salesSvc)
	exportSvc := export.NewService(salesSvc)

	handler := api.New(
		authSvc,
		authapi.NewHandler(authSvc),
		inventoryapi.NewHandler(invSvc),
		salesapi.NewHandler(salesSvc, checkoutSvc),
		reportapi.NewHandler(reportSvc),
		exportapi.NewHandler(exportSvc),
		importapi.NewHandler(importer.New(), invSvc),
	)

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	return ts
}

func login(t *testing.T, ts *httptest.Server, role string) string {
	t.Helper()

	body := fmt.Sprintf(`{"email":"pharmacist@example.com","password":"pw","role":%q}`, role)

	resp, err := http.Post(ts.URL+"/api/v1/auth/login", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Token)

	return out.Token
}

func doJSON(t *testing.T, ts *httptest.Server, method, path, token, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func seededItemID(t *testing.T, ts *httptest.Server, token, name string) uuid.UUID {
	t.Helper()

	resp := doJSON(t, ts, http.MethodGet, "/api/v1/inventory", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var items []struct {
		ID   uuid.UUID `json:"id"`
		Name string    `json:"name"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))

	for _, item := range items {
		if item.Name == name {
			return item.ID
		}
	}

	t.Fatalf("item %q not found", name)

	return uuid.Nil
}

func TestLogin(t *testing.T) {
	ts := newServer(t)

	t.Run("AdminAndStaff", func(t *testing.T) {
		assert.NotEmpty(t, login(t, ts, "admin"))
		assert.NotEmpty(t, login(t, ts, "staff"))
	})

	t.Run("UnknownRole", func(t *testing.T) {
		body := `{"email":"x@example.com","password":"pw","role":"superuser"}`
		resp, err := http.Post(ts.URL+"/api/v1/auth/login", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("MissingCredentials", func(t *testing.T) {
		body := `{"role":"admin"}`
		resp, err := http.Post(ts.URL+"/api/v1/auth/login", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestAuthentication(t *testing.T) {
	ts := newServer(t)

	t.Run("NoToken", func(t *testing.T) {
		resp := doJSON(t, ts, http.MethodGet, "/api/v1/inventory", "", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("GarbageToken", func(t *testing.T) {
		resp := doJSON(t, ts, http.MethodGet, "/api/v1/inventory", "not.a.token", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRoleGating(t *testing.T) {
	ts := newServer(t)
	staff := login(t, ts, "staff")
	admin := login(t, ts, "admin")

	t.Run("StaffCanRead", func(t *testing.T) {
		resp := doJSON(t, ts, http.MethodGet, "/api/v1/inventory", staff, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp = doJSON(t, ts, http.MethodGet, "/api/v1/sales", staff, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp = doJSON(t, ts, http.MethodGet, "/api/v1/reports/summary", staff, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("StaffCannotMutate", func(t *testing.T) {
		body := `{"name":"Ibuprofen 400mg","category":"Analgesic","unit":"strip","stock":40,"price":2.1}`
		resp := doJSON(t, ts, http.MethodPost, "/api/v1/inventory", staff, body)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("AdminCanMutate", func(t *testing.T) {
		body := `{"name":"Ibuprofen 400mg","category":"Analgesic","unit":"strip","stock":40,"price":2.1}`
		resp := doJSON(t, ts, http.MethodPost, "/api/v1/inventory", admin, body)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})
}

func TestInventoryValidation(t *testing.T) {
	ts := newServer(t)
	admin := login(t, ts, "admin")

	resp := doJSON(t, ts, http.MethodPost, "/api/v1/inventory", admin, `{"name":"","category":"x","unit":"y"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInventoryUpdate_UnknownIDAnswers204(t *testing.T) {
	ts := newServer(t)
	admin := login(t, ts, "admin")

	path := "/api/v1/inventory/" + uuid.NewString()
	resp := doJSON(t, ts, http.MethodPatch, path, admin, `{"stock":10}`)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestRecordSale(t *testing.T) {
	ts := newServer(t)
	admin := login(t, ts, "admin")

	itemID := seededItemID(t, ts, admin, "Paracetamol 500mg")

	t.Run("Success", func(t *testing.T) {
		body := fmt.Sprintf(`{"item_id":%q,"quantity":5,"date":"2024-06-01"}`, itemID)
		resp := doJSON(t, ts, http.MethodPost, "/api/v1/sales", admin, body)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var sale struct {
			ItemName string `json:"item_name"`
			Quantity int    `json:"quantity"`
			Date     string `json:"date"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&sale))
		assert.Equal(t, "Paracetamol 500mg", sale.ItemName)
		assert.Equal(t, 5, sale.Quantity)
		assert.Equal(t, "2024-06-01", sale.Date)
	})

	t.Run("InsufficientStock", func(t *testing.T) {
		body := fmt.Sprintf(`{"item_id":%q,"quantity":100000}`, itemID)
		resp := doJSON(t, ts, http.MethodPost, "/api/v1/sales", admin, body)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("UnknownItem", func(t *testing.T) {
		body := fmt.Sprintf(`{"item_id":%q,"quantity":1}`, uuid.New())
		resp := doJSON(t, ts, http.MethodPost, "/api/v1/sales", admin, body)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("ZeroQuantity", func(t *testing.T) {
		body := fmt.Sprintf(`{"item_id":%q,"quantity":0}`, itemID)
		resp := doJSON(t, ts, http.MethodPost, "/api/v1/sales", admin, body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("BadDate", func(t *testing.T) {
		body := fmt.Sprintf(`{"item_id":%q,"quantity":1,"date":"01/06/2024"}`, itemID)
		resp := doJSON(t, ts, http.MethodPost, "/api/v1/sales", admin, body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSalesList_Pipeline(t *testing.T) {
	ts := newServer(t)
	admin := login(t, ts, "admin")

	itemID := seededItemID(t, ts, admin, "Amoxicillin 250mg")

	// Three more entries on top of the seeded one.
	for _, quantity := range []int{2, 4, 6} {
		body := fmt.Sprintf(`{"item_id":%q,"quantity":%d,"date":"2024-06-01"}`, itemID, quantity)
		resp := doJSON(t, ts, http.MethodPost, "/api/v1/sales", admin, body)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	decode := func(t *testing.T, resp *http.Response) (quantities []int, total int) {
		t.Helper()

		var out struct {
			Sales []struct {
				Quantity int `json:"quantity"`
			} `json:"sales"`
			Total int `json:"total"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

		for _, sale := range out.Sales {
			quantities = append(quantities, sale.Quantity)
		}

		return quantities, out.Total
	}

	t.Run("FilterByItemName", func(t *testing.T) {
		resp := doJSON(t, ts, http.MethodGet, "/api/v1/sales?search=amoxicillin", admin, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		quantities, total := decode(t, resp)
		assert.Equal(t, 3, total)
		assert.Equal(t, []int{2, 4, 6}, quantities)
	})

	t.Run("SortByQuantityDesc", func(t *testing.T) {
		resp := doJSON(t, ts, http.MethodGet, "/api/v1/sales?sort=quantity&dir=desc", admin, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		quantities, total := decode(t, resp)
		assert.Equal(t, 4, total)
		assert.Equal(t, []int{8, 6, 4, 2}, quantities)
	})

	t.Run("Paginate", func(t *testing.T) {
		resp := doJSON(t, ts, http.MethodGet, "/api/v1/sales?page=2&page_size=3", admin, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		quantities, total := decode(t, resp)
		assert.Equal(t, 4, total)
		assert.Len(t, quantities, 1)
	})

	t.Run("PageOutOfRange", func(t *testing.T) {
		resp := doJSON(t, ts, http.MethodGet, "/api/v1/sales?page=99", admin, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		quantities, total := decode(t, resp)
		assert.Equal(t, 4, total)
		assert.Empty(t, quantities)
	})
}

func TestDeleteSale_DoesNotRestoreStock(t *testing.T) {
	ts := newServer(t)
	admin := login(t, ts, "admin")

	itemID := seededItemID(t, ts, admin, "Paracetamol 500mg")

	body := fmt.Sprintf(`{"item_id":%q,"quantity":20,"date":"2024-06-01"}`, itemID)
	resp := doJSON(t, ts, http.MethodPost, "/api/v1/sales", admin, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var sale struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sale))

	resp = doJSON(t, ts, http.MethodDelete, "/api/v1/sales/"+sale.ID.String(), admin, "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Seed stock 120 minus the 20 sold; the deletion did not give them back.
	resp = doJSON(t, ts, http.MethodGet, "/api/v1/inventory/"+itemID.String(), admin, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var item struct {
		Stock int `json:"stock"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&item))
	assert.Equal(t, 100, item.Stock)
}

func TestExportCSV(t *testing.T) {
	ts := newServer(t)
	staff := login(t, ts, "staff")

	resp := doJSON(t, ts, http.MethodGet, "/api/v1/export/sales.csv", staff, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "sales.csv")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	lines := strings.Split(string(raw), "\n")
	assert.Equal(t, "ID,Item,Qty,Date", lines[0])
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "Paracetamol 500mg,8,")
}

func TestReportSummary(t *testing.T) {
	ts := newServer(t)
	staff := login(t, ts, "staff")

	resp := doJSON(t, ts, http.MethodGet, "/api/v1/reports/summary", staff, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		TotalItems int `json:"total_items"`
		TotalStock int `json:"total_stock"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 2, out.TotalItems)
	assert.Equal(t, 200, out.TotalStock)
}

func TestReportDaily(t *testing.T) {
	ts := newServer(t)
	staff := login(t, ts, "staff")

	resp := doJSON(t, ts, http.MethodGet, "/api/v1/reports/daily?days=7", staff, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out []struct {
		Date     string `json:"date"`
		Quantity int    `json:"quantity"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 7)

	// The seeded sale is dated today, the window's last day.
	assert.Equal(t, 8, out[6].Quantity)
}

func TestImportCSV(t *testing.T) {
	ts := newServer(t)
	admin := login(t, ts, "admin")
	staff := login(t, ts, "staff")

	buildUpload := func(t *testing.T, content string) (io.Reader, string) {
		t.Helper()

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)

		fw, err := mw.CreateFormFile("file", "stock.csv")
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		return &buf, mw.FormDataContentType()
	}

	csv := strings.Join([]string{
		"Name,Category,Stock,Unit,Price",
		"Ibuprofen 400mg,Analgesic,40,strip,2.1",
		" ,Analgesic,10,strip,1.0",
		"Cough Syrup,Antitussive,15,bottle,4.9",
	}, "\n")

	t.Run("StaffForbidden", func(t *testing.T) {
		body, contentType := buildUpload(t, csv)

		req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/v1/import", body)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+staff)
		req.Header.Set("Content-Type", contentType)

		resp, err := ts.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("AdminImports", func(t *testing.T) {
		body, contentType := buildUpload(t, csv)

		req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/v1/import", body)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+admin)
		req.Header.Set("Content-Type", contentType)

		resp, err := ts.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var out struct {
			Imported int `json:"imported"`
			Skipped  int `json:"skipped"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

		// The blank-name row never reaches the service; the parser drops it.
		assert.Equal(t, 2, out.Imported)
		assert.Equal(t, 0, out.Skipped)
	})
}
