package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"worktrack/internal/config"
	"worktrack/internal/model"
	"worktrack/internal/testutil"
)

type testEnv struct {
	router   *gin.Engine
	users    *testutil.UserStore
	work     *testutil.WorkStore
	payments *testutil.PaymentStore
	messages *testutil.MessageStore
	gateway  *testutil.Gateway
}

func newTestEnv(t *testing.T, mutate ...func(*config.Config)) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Environment: "test",
		CORS:        config.CORSConfig{AllowedOrigins: config.DefaultCORSOrigins, AllowCredentials: true},
		Payments:    config.PaymentsConfig{LookupMonth: "2024-01"},
		Telemetry:   config.TelemetryConfig{ServiceName: "worktrack-test"},
	}
	for _, fn := range mutate {
		fn(cfg)
	}

	env := &testEnv{
		users:    &testutil.UserStore{},
		work:     &testutil.WorkStore{},
		payments: &testutil.PaymentStore{},
		messages: &testutil.MessageStore{},
		gateway:  &testutil.Gateway{Secret: "pi_test_secret_abc"},
	}
	repos := &Repositories{
		Users:    env.users,
		Work:     env.work,
		Payments: env.payments,
		Messages: env.messages,
	}
	services := InitServices(cfg, repos, env.gateway, zap.NewNop())
	env.router = NewRouter(cfg, InitHandlers(services), services, nil, zap.NewNop())
	return env
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestLiveness(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Server is running", w.Body.String())
}

func TestCreatePaymentIntentRejectsLowOrMissingPrice(t *testing.T) {
	env := newTestEnv(t)

	bodies := []string{
		`{}`,
		`{"price":null}`,
		`{"price":0}`,
		`{"price":0.99}`,
		`{"price":-10}`,
		`{"price":"0.5"}`,
		`{"price":"ten"}`,
		`{"price":true}`,
		`{"price":1e20}`,
		`{"price":"1e308"}`,
		`{"price":1000000}`,
		`{"price":"1_000"}`,
		`not json`,
	}
	for _, body := range bodies {
		w := env.do(t, http.MethodPost, "/create-payment-intent", body)
		require.Equal(t, http.StatusBadRequest, w.Code, body)
		require.JSONEq(t, `{"error":"Invalid price"}`, w.Body.String())
	}
	require.Zero(t, env.gateway.CallCount())
}

func TestCreatePaymentIntentAmountInMinorUnits(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		body   string
		amount int64
	}{
		{`{"price":1}`, 100},
		{`{"price":19.99}`, 1999},
		{`{"price":"42.50"}`, 4250},
		{`{"price":250}`, 25000},
		{`{"price":1.15}`, 115},
	}
	for _, tc := range cases {
		w := env.do(t, http.MethodPost, "/create-payment-intent", tc.body)
		require.Equal(t, http.StatusOK, w.Code, tc.body)
		require.JSONEq(t, `{"clientSecret":"pi_test_secret_abc"}`, w.Body.String())

		call := env.gateway.LastCall()
		require.Equal(t, tc.amount, call.Amount, tc.body)
		require.Equal(t, "usd", call.Currency)
	}
}

func TestCreatePaymentIntentGatewayFailure(t *testing.T) {
	env := newTestEnv(t)
	env.gateway.Err = errors.New("stripe: card declined")

	w := env.do(t, http.MethodPost, "/create-payment-intent", `{"price":10}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"error":"Failed to create payment intent"}`, w.Body.String())
	require.NotContains(t, w.Body.String(), "declined")
}

func TestCreateUserRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/users", `{"email":"ada@worktrack.io","name":"Ada","designation":"engineer","salary":1200}`)
	require.Equal(t, http.StatusOK, w.Code)
	created := decode(t, w)
	require.Equal(t, true, created["acknowledged"])
	insertedID, ok := created["insertedId"].(string)
	require.True(t, ok)

	w = env.do(t, http.MethodGet, "/user/ada@worktrack.io", "")
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)

	require.Len(t, user, 5)
	require.Equal(t, insertedID, user["_id"])
	require.Equal(t, "ada@worktrack.io", user["email"])
	require.Equal(t, "Ada", user["name"])
	require.Equal(t, "engineer", user["designation"])
	require.EqualValues(t, 1200, user["salary"])
}

func TestGetUserByEmailAbsentIsNull(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/user/ghost@worktrack.io", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "null", w.Body.String())
}

func TestUpdateByEmailMerges(t *testing.T) {
	env := newTestEnv(t)
	env.users.Insert(model.Document{"email": "ada@worktrack.io", "name": "Ada", "role": "employee", "salary": 1200})

	w := env.do(t, http.MethodPatch, "/users/update/ada@worktrack.io", `{"role":"admin"}`)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode(t, w)
	require.EqualValues(t, 1, res["matchedCount"])
	require.EqualValues(t, 1, res["modifiedCount"])

	user := decode(t, env.do(t, http.MethodGet, "/user/ada@worktrack.io", ""))
	require.Equal(t, "admin", user["role"])
	require.Equal(t, "Ada", user["name"])
	require.EqualValues(t, 1200, user["salary"])
	require.Len(t, user, 5)

	w = env.do(t, http.MethodPatch, "/users/update/ada@worktrack.io", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeactivateUser(t *testing.T) {
	env := newTestEnv(t)
	id := env.users.Insert(model.Document{"email": "ada@worktrack.io", "isActive": true})

	w := env.do(t, http.MethodDelete, "/users/fire/"+id.Hex(), "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	require.Equal(t, "User has been fired successfully", body["message"])
	user := body["user"].(map[string]interface{})
	require.Equal(t, false, user["isActive"])
	require.NotNil(t, user["deactivatedAt"])
	require.Equal(t, id.Hex(), user["_id"])

	w = env.do(t, http.MethodDelete, "/users/fire/"+primitive.NewObjectID().Hex(), "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"message":"User not found or already deactivated"}`, w.Body.String())

	w = env.do(t, http.MethodDelete, "/users/fire/not-an-id", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	env.users.Err = testutil.ErrStore
	w = env.do(t, http.MethodDelete, "/users/fire/"+id.Hex(), "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"error":"Failed to fire user"}`, w.Body.String())
}

func TestToggleVerificationTwice(t *testing.T) {
	env := newTestEnv(t)
	id := env.users.Insert(model.Document{"email": "ada@worktrack.io"})
	env.payments.Insert(model.Document{"employeeId": id.Hex(), "month": "2024-01", "amount": 500})

	first := decode(t, env.do(t, http.MethodPatch, "/users-update/"+id.Hex(), ""))
	require.Equal(t, true, first["isVerified"])
	require.Equal(t, map[string]interface{}{"$set": map[string]interface{}{"isVerified": true}}, first["updatedStatus"])
	payment := first["paymentData"].(map[string]interface{})
	require.Equal(t, "2024-01", payment["month"])

	second := decode(t, env.do(t, http.MethodPatch, "/users-update/"+id.Hex(), ""))
	require.Equal(t, false, second["isVerified"])

	w := env.do(t, http.MethodPatch, "/users-update/"+primitive.NewObjectID().Hex(), "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"message":"Employee not found"}`, w.Body.String())
}

func TestRecordPayment(t *testing.T) {
	env := newTestEnv(t)
	id := env.users.Insert(model.Document{"email": "ada@worktrack.io", "paid": false})

	body := fmt.Sprintf(`{"employeeId":%q,"month":"2024-01","amount":500,"email":"ada@worktrack.io"}`, id.Hex())
	w := env.do(t, http.MethodPost, "/payments", body)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode(t, w)
	require.Contains(t, res, "result")
	require.Contains(t, res, "updatedPayment")

	stored := env.payments.All()
	require.Len(t, stored, 1)
	require.Equal(t, id.Hex(), stored[0]["employeeId"])
	require.Equal(t, "2024-01", stored[0]["month"])
	require.EqualValues(t, 500, stored[0]["amount"])

	user := decode(t, env.do(t, http.MethodGet, "/user/ada@worktrack.io", ""))
	require.Equal(t, true, user["paid"])
}

func TestRecordPaymentFailures(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/payments", `{"employeeId":"123","month":"2024-01"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Zero(t, env.payments.Len())

	id := env.users.Insert(model.Document{"email": "ada@worktrack.io"})
	env.users.FailUpdateByID = testutil.ErrStore
	w = env.do(t, http.MethodPost, "/payments", fmt.Sprintf(`{"employeeId":%q,"month":"2024-01"}`, id.Hex()))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	res := decode(t, w)
	require.Equal(t, "Payment recorded but employee status update failed", res["error"])
	require.NotNil(t, res["result"])
	require.Equal(t, 1, env.payments.Len())

	env.payments.Err = testutil.ErrStore
	w = env.do(t, http.MethodPost, "/payments", fmt.Sprintf(`{"employeeId":%q,"month":"2024-02"}`, id.Hex()))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"error":"Failed to record payment"}`, w.Body.String())
}

func TestQueriesMatchEmailExactly(t *testing.T) {
	env := newTestEnv(t)
	for _, email := range []string{"ada@worktrack.io", "ADA@worktrack.io", "ada@worktrack.io.evil", "xada@worktrack.io"} {
		env.work.Insert(model.Document{"email": email, "task": "Sales"})
		env.payments.Insert(model.Document{"email": email, "month": "2024-01"})
	}
	env.work.Insert(model.Document{"email": "ada@worktrack.io", "task": "Support"})

	works := decodeList(t, env.do(t, http.MethodGet, "/works/ada@worktrack.io", ""))
	require.Len(t, works, 2)
	for _, w := range works {
		require.Equal(t, "ada@worktrack.io", w["email"])
	}

	payments := decodeList(t, env.do(t, http.MethodGet, "/payment/ada@worktrack.io", ""))
	require.Len(t, payments, 1)
	require.Equal(t, "ada@worktrack.io", payments[0]["email"])

	none := env.do(t, http.MethodGet, "/works/nobody@worktrack.io", "")
	require.Equal(t, http.StatusOK, none.Code)
	require.Equal(t, "[]", none.Body.String())
}

func TestEmployeeBySlug(t *testing.T) {
	env := newTestEnv(t)
	id := env.users.Insert(model.Document{"email": "ada@worktrack.io", "uid": "firebase-ada", "name": "Ada"})

	for _, slug := range []string{id.Hex(), "ada@worktrack.io", "firebase-ada"} {
		w := env.do(t, http.MethodGet, "/employee/"+slug, "")
		require.Equal(t, http.StatusOK, w.Code, slug)
		require.Equal(t, "Ada", decode(t, w)["name"])
	}

	w := env.do(t, http.MethodGet, "/employee/unknown-uid", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"message":"Employee not found"}`, w.Body.String())

	env.users.Err = testutil.ErrStore
	w = env.do(t, http.MethodGet, "/employee/firebase-ada", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"error":"Failed to fetch employee"}`, w.Body.String())
}

func TestListEndpoints(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/users", "/work", "/contact"} {
		w := env.do(t, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, w.Code, path)
		require.Equal(t, "[]", w.Body.String(), path)
	}

	env.users.Insert(model.Document{"email": "ada@worktrack.io"})
	env.messages.Insert(model.Document{"name": "Visitor", "message": "Hello"})
	w := env.do(t, http.MethodPost, "/work-post", `{"email":"ada@worktrack.io","task":"Sales","hours":3}`)
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, decodeList(t, env.do(t, http.MethodGet, "/users", "")), 1)
	require.Len(t, decodeList(t, env.do(t, http.MethodGet, "/work", "")), 1)
	require.Len(t, decodeList(t, env.do(t, http.MethodGet, "/contact", "")), 1)

	env.messages.Err = testutil.ErrStore
	w = env.do(t, http.MethodGet, "/contact", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"error":"Failed to fetch messages"}`, w.Body.String())
}

func TestAdminGuardWiring(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Config) { cfg.Guard.Enabled = true })
	env.users.Insert(model.Document{"email": "boss@worktrack.io", "role": "admin"})
	target := env.users.Insert(model.Document{"email": "ada@worktrack.io", "isActive": true})

	w := env.do(t, http.MethodPatch, "/users-update/"+target.Hex(), `{"email":"ada@worktrack.io"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"message":"forbidden access"}`, w.Body.String())

	w = env.do(t, http.MethodDelete, "/users/fire/"+target.Hex(), "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPatch, "/users-update/"+target.Hex(), `{"email":"boss@worktrack.io"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodDelete, "/users/fire/"+target.Hex(), `{"email":"boss@worktrack.io"}`)
	require.Equal(t, http.StatusOK, w.Code)

	// merge patch route stays open
	w = env.do(t, http.MethodPatch, "/users/update/ada@worktrack.io", `{"name":"Ada"}`)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestGuardDisabledByDefault(t *testing.T) {
	env := newTestEnv(t)
	target := env.users.Insert(model.Document{"email": "ada@worktrack.io"})

	w := env.do(t, http.MethodPatch, "/users-update/"+target.Hex(), "")
	require.Equal(t, http.StatusOK, w.Code)
}
