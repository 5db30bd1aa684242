package integrations

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	_ "github.com/lib/pq"

	"github.com/pressly/goose/v3"

	"wholesale/internal/catalog"
	"wholesale/internal/config"
	"wholesale/internal/models"
	"wholesale/internal/repository"
	"wholesale/internal/server"
	"wholesale/internal/service"
)

type IntegrationSuite struct {
	suite.Suite

	db         *sql.DB
	testServer *httptest.Server
}

func TestIntegrationSuite(t *testing.T) {
	if os.Getenv("TEST_DSN") == "" {
		t.Skip("TEST_DSN not set, skipping integration suite")
	}
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupSuite() {
	cfg := config.LoadConfig()
	cfg.DSN = os.Getenv("TEST_DSN")

	var err error
	s.db, err = sql.Open("postgres", cfg.DSN)
	if err != nil {
		s.T().Fatalf("sql.Open error: %v", err)
	}
	if err = s.db.Ping(); err != nil {
		s.T().Fatalf("db.Ping error: %v", err)
	}

	if err := goose.Up(s.db, "../migrations"); err != nil {
		s.T().Fatalf("goose.Up error: %v", err)
	}

	supplierRepo := repository.NewSupplierRepository(s.db)
	orderRepo := repository.NewOrderRepository(s.db)
	issueRepo := repository.NewIssueRepository(s.db)

	cat := catalog.New()
	if err := cat.Refresh(supplierRepo); err != nil {
		s.T().Fatalf("catalog refresh error: %v", err)
	}

	checkout := service.NewCheckoutService(orderRepo, issueRepo, cat, nil, nil)

	srv := server.NewServer(supplierRepo, orderRepo, issueRepo, checkout, nil, cfg)

	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)

	s.testServer = httptest.NewServer(mux)

	if _, err := s.db.Exec("TRUNCATE orders CASCADE"); err != nil {
		s.T().Logf("truncate error: %v", err)
	}
}

func (s *IntegrationSuite) TearDownSuite() {
	s.testServer.Close()
	_ = s.db.Close()
}

func (s *IntegrationSuite) doRequest(method, path string, payload interface{}) (*http.Response, []byte) {
	var buf bytes.Buffer
	if payload != nil {
		err := json.NewEncoder(&buf).Encode(payload)
		assert.NoError(s.T(), err)
	}
	req, err := http.NewRequest(method, s.testServer.URL+path, &buf)
	assert.NoError(s.T(), err)
	if method != http.MethodGet {
		req.SetBasicAuth("admin", "secret")
	}
	resp, err := http.DefaultClient.Do(req)
	assert.NoError(s.T(), err)
	body, err := io.ReadAll(resp.Body)
	assert.NoError(s.T(), err)
	_ = resp.Body.Close()
	return resp, body
}

func (s *IntegrationSuite) TestListSeededSuppliers() {
	resp, body := s.doRequest(http.MethodGet, "/suppliers?limit=100", nil)
	assert.Equal(s.T(), http.StatusOK, resp.StatusCode)

	var suppliers []models.Supplier
	assert.NoError(s.T(), json.Unmarshal(body, &suppliers))
	assert.True(s.T(), len(suppliers) >= 20, "expected the seeded catalog")
}

func (s *IntegrationSuite) TestDeliveryQuote() {
	payload := map[string]interface{}{"supplier_ids": []string{"sup-001", "sup-005"}}
	resp, body := s.doRequest(http.MethodPost, "/delivery-quote", payload)
	assert.Equal(s.T(), http.StatusOK, resp.StatusCode)

	var quote service.Quote
	assert.NoError(s.T(), json.Unmarshal(body, &quote))
	assert.Len(s.T(), quote.Deliveries, 2)
	assert.False(s.T(), quote.Window.Start.After(quote.Window.End))
	assert.NotEmpty(s.T(), quote.Label)
}

func (s *IntegrationSuite) TestPlaceAndFetchOrder() {
	payload := map[string]interface{}{"items": []models.CartItem{
		{ProductID: "prod-003", Quantity: 2},
		{ProductID: "prod-004", Quantity: 10},
	}}
	resp, body := s.doRequest(http.MethodPost, "/orders", payload)
	assert.Equal(s.T(), http.StatusCreated, resp.StatusCode)

	var placed models.Order
	assert.NoError(s.T(), json.Unmarshal(body, &placed))
	assert.NotEmpty(s.T(), placed.ID)
	assert.Len(s.T(), placed.Suppliers, 2)
	assert.False(s.T(), placed.DeliveryStart.After(placed.DeliveryEnd))

	resp, body = s.doRequest(http.MethodGet, "/orders/"+placed.ID, nil)
	assert.Equal(s.T(), http.StatusOK, resp.StatusCode)

	var fetched models.Order
	assert.NoError(s.T(), json.Unmarshal(body, &fetched))
	assert.Equal(s.T(), placed.ID, fetched.ID)
	assert.True(s.T(), placed.DeliveryStart.Equal(fetched.DeliveryStart))
	assert.True(s.T(), placed.DeliveryEnd.Equal(fetched.DeliveryEnd))
	assert.InDelta(s.T(), placed.TotalCost, fetched.TotalCost, 0.001)
}

func (s *IntegrationSuite) TestReportIssueAgainstOrder() {
	payload := map[string]interface{}{"items": []models.CartItem{
		{ProductID: "prod-001", Quantity: 2},
	}}
	resp, body := s.doRequest(http.MethodPost, "/orders", payload)
	assert.Equal(s.T(), http.StatusCreated, resp.StatusCode)

	var placed models.Order
	assert.NoError(s.T(), json.Unmarshal(body, &placed))

	issuePayload := map[string]interface{}{
		"order_id":    placed.ID,
		"issue_type":  "missing",
		"description": "one case short",
	}
	resp, body = s.doRequest(http.MethodPost, "/issues", issuePayload)
	assert.Equal(s.T(), http.StatusCreated, resp.StatusCode)

	var issue models.QualityIssue
	assert.NoError(s.T(), json.Unmarshal(body, &issue))
	assert.Equal(s.T(), placed.ID, issue.OrderID)

	resp, body = s.doRequest(http.MethodGet, "/issues?order_id="+placed.ID, nil)
	assert.Equal(s.T(), http.StatusOK, resp.StatusCode)

	var issues []models.QualityIssue
	assert.NoError(s.T(), json.Unmarshal(body, &issues))
	assert.Len(s.T(), issues, 1)
}

func (s *IntegrationSuite) TestOrderWindowStaysFrozen() {
	// The stored window is a snapshot from placement time; re-reading
	// the order later must return identical bounds.
	payload := map[string]interface{}{"items": []models.CartItem{
		{ProductID: "prod-005", Quantity: 3},
	}}
	resp, body := s.doRequest(http.MethodPost, "/orders", payload)
	assert.Equal(s.T(), http.StatusCreated, resp.StatusCode)

	var placed models.Order
	assert.NoError(s.T(), json.Unmarshal(body, &placed))

	time.Sleep(50 * time.Millisecond)

	resp, body = s.doRequest(http.MethodGet, "/orders/"+placed.ID, nil)
	assert.Equal(s.T(), http.StatusOK, resp.StatusCode)

	var fetched models.Order
	assert.NoError(s.T(), json.Unmarshal(body, &fetched))
	assert.True(s.T(), placed.DeliveryStart.Equal(fetched.DeliveryStart))
	assert.True(s.T(), placed.DeliveryEnd.Equal(fetched.DeliveryEnd))
}
