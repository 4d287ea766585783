package handler

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/M5Csoftware/m5c-portal-api/internal/model"

	"github.com/stretchr/testify/require"
)

// billingToken signs a user up, links a billing account and returns a session
// token carrying its account code.
func billingToken(t *testing.T, api *testAPI, email, code string) string {
	t.Helper()
	api.signup(t, email, "s1")
	require.NoError(t, api.db.Create(&model.CustomerAccount{
		Email:       email,
		AccountCode: code,
		Branch:      "RIX",
	}).Error)
	resp := api.login(t, email, "s1", nil)
	return resp["token"].(string)
}

func TestCreateAndListShipments(t *testing.T) {
	api := setupAPI(t)
	token := billingToken(t, api, "a@x.com", "C1")

	rec, created := api.do(t, http.MethodPost, "/api/shipments", map[string]any{
		"origin":      "Riga",
		"destination": "Hamburg",
		"weight":      120.5,
		"pieces":      3,
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "C1", created["account_code"])
	require.Equal(t, model.ShipmentCreated, created["status"])
	require.NotEmpty(t, created["tracking_code"])

	rec, _ = api.do(t, http.MethodGet, "/api/shipments", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	var shipments []model.Shipment
	require.NoError(t, api.db.Where("account_code = ?", "C1").Find(&shipments).Error)
	require.Len(t, shipments, 1)
	require.Equal(t, "Riga", shipments[0].Origin)
}

func TestShipmentsScopedToAccount(t *testing.T) {
	api := setupAPI(t)
	aToken := billingToken(t, api, "a@x.com", "C1")
	bToken := billingToken(t, api, "b@x.com", "C2")

	rec, created := api.do(t, http.MethodPost, "/api/shipments", map[string]any{
		"origin": "Riga", "destination": "Hamburg",
	}, aToken)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := created["id"]

	// Another account cannot see it.
	rec, _ = api.do(t, http.MethodGet, "/api/shipments/"+jsonNumber(t, id), nil, bToken)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = api.do(t, http.MethodGet, "/api/shipments/"+jsonNumber(t, id), nil, aToken)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestShipmentsRequireBillingAccount(t *testing.T) {
	api := setupAPI(t)
	api.signup(t, "a@x.com", "s1")

	// No customer record, no account code on the user: the session has no
	// billing account.
	resp := api.login(t, "a@x.com", "s1", nil)
	token := resp["token"].(string)

	rec, body := api.do(t, http.MethodPost, "/api/shipments", map[string]any{
		"origin": "Riga", "destination": "Hamburg",
	}, token)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "no billing account linked to this session", body["error"])
}

func TestCreateShipmentValidation(t *testing.T) {
	api := setupAPI(t)
	token := billingToken(t, api, "a@x.com", "C1")

	rec, body := api.do(t, http.MethodPost, "/api/shipments", map[string]any{
		"origin": "Riga",
	}, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "origin and destination are required", body["error"])
}

func jsonNumber(t *testing.T, v any) string {
	t.Helper()
	f, ok := v.(float64)
	require.True(t, ok)
	return strconv.Itoa(int(f))
}
