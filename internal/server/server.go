package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"wholesale/internal/audit"
	"wholesale/internal/config"
	"wholesale/internal/middleware"
	"wholesale/internal/models"
	"wholesale/internal/repository"
	"wholesale/internal/service"
)

type Server struct {
	suppliers repository.SupplierStore
	orders    repository.OrderStore
	issues    repository.IssueStore
	checkout  *service.CheckoutService
	auditPool *audit.AuditWorkerPool
	user      string
	password  string
	addr      string
}

func NewServer(suppliers repository.SupplierStore, orders repository.OrderStore, issues repository.IssueStore,
	checkout *service.CheckoutService, auditPool *audit.AuditWorkerPool, cfg *config.Config) *Server {
	return &Server{
		suppliers: suppliers,
		orders:    orders,
		issues:    issues,
		checkout:  checkout,
		auditPool: auditPool,
		user:      cfg.Username,
		password:  cfg.Password,
		addr:      cfg.Addr(),
	}
}

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	s.handleWith(mux, "/suppliers", s.handleSuppliers, []string{"GET"}, nil)
	s.handleWith(mux, "/suppliers/", s.handleSupplierOne, []string{"GET"}, nil)
	s.handleWith(mux, "/products", s.handleProducts, []string{"GET"}, nil)

	s.handleWith(mux, "/delivery-quote", s.handleQuote, []string{"POST"}, nil)

	s.handleWith(mux, "/orders", s.handleOrders,
		[]string{"POST"}, []string{"POST"},
	)
	s.handleWith(mux, "/orders/", s.handleOrderOne, []string{"GET"}, nil)

	s.handleWith(mux, "/issues", s.handleIssues,
		[]string{"POST"}, []string{"POST"},
	)
}

func (s *Server) Run() error {
	mux := http.NewServeMux()

	s.RegisterRoutes(mux)

	log.Printf("Server listen on %s...", s.addr)
	return http.ListenAndServe(s.addr, mux)
}

func (s *Server) handleWith(mux *http.ServeMux, path string,
	handlerFunc http.HandlerFunc,
	logMethods []string, authMethods []string,
) {
	finalHandler := middleware.LogMiddleware(s.auditPool, logMethods...)(
		middleware.BasicAuthMiddleware(s.user, s.password, authMethods...)(
			handlerFunc,
		),
	)
	mux.Handle(path, finalHandler)
}

func (s *Server) handleSuppliers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	cursor := q.Get("cursor")
	limit, err := strconv.ParseInt(q.Get("limit"), 10, 64)
	if err != nil {
		limit = 10
	}
	suppliers, err := s.suppliers.ListSuppliers(cursor, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, suppliers)
}

func (s *Server) handleSupplierOne(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/suppliers/")
	if id == "" {
		http.Error(w, "missing ID", http.StatusBadRequest)
		return
	}
	supplier, err := s.suppliers.GetSupplier(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if supplier == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, supplier)
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	products, err := s.suppliers.ListProducts(q.Get("supplier_id"), q.Get("category"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		SupplierIDs []string `json:"supplier_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad JSON", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, s.checkout.Quote(req.SupplierIDs))
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handlePlaceOrder(w, r)
	case http.MethodGet:
		s.handleListOrders(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []models.CartItem `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad JSON", http.StatusBadRequest)
		return
	}
	order, err := s.checkout.PlaceOrder(req.Items)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cursor := q.Get("cursor")
	limit, err := strconv.ParseInt(q.Get("limit"), 10, 64)
	if err != nil {
		limit = 10
	}
	orders, err := s.orders.ListOrders(cursor, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (s *Server) handleOrderOne(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/orders/")
	if id == "" {
		http.Error(w, "missing ID", http.StatusBadRequest)
		return
	}
	o, err := s.orders.GetOrder(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if o == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleIssues(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleReportIssue(w, r)
	case http.MethodGet:
		s.handleListIssues(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleReportIssue(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID     string           `json:"order_id"`
		IssueType   models.IssueType `json:"issue_type"`
		Description string           `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad JSON", http.StatusBadRequest)
		return
	}
	issue, err := s.checkout.ReportIssue(req.OrderID, req.IssueType, req.Description)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, issue)
}

func (s *Server) handleListIssues(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("order_id")
	if orderID == "" {
		http.Error(w, "missing order_id", http.StatusBadRequest)
		return
	}
	issues, err := s.issues.ListIssues(orderID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, issues)
}

func writeJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}
