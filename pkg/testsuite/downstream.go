package testsuite

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/sakashimaa/accessory-shop/pkg/client"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// FakeDownstream serves GET /customers/{id} and GET /products/{id} from memory,
// standing in for the customer and catalog services.
type FakeDownstream struct {
	server *httptest.Server

	mu             sync.RWMutex
	customers      map[int64]client.Customer
	products       map[int64]client.Product
	brokenProducts map[int64]bool
	down           bool
}

func NewFakeDownstream() *FakeDownstream {
	f := &FakeDownstream{
		customers:      make(map[int64]client.Customer),
		products:       make(map[int64]client.Product),
		brokenProducts: make(map[int64]bool),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /customers/{id}", f.serveCustomer)
	mux.HandleFunc("GET /products/{id}", f.serveProduct)

	f.server = httptest.NewServer(mux)

	return f
}

func (f *FakeDownstream) URL() string {
	return f.server.URL
}

func (f *FakeDownstream) Close() {
	f.server.Close()
}

// Reset forgets every customer and product and brings the fake back up.
func (f *FakeDownstream) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.customers = make(map[int64]client.Customer)
	f.products = make(map[int64]client.Product)
	f.brokenProducts = make(map[int64]bool)
	f.down = false
}

func (f *FakeDownstream) AddCustomer(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.customers[id] = client.Customer{
		CustomerID:   id,
		EmailAddress: "customer" + strconv.FormatInt(id, 10) + "@example.com",
		FirstName:    "Test",
		LastName:     "Customer",
	}
}

func (f *FakeDownstream) AddProduct(id int64, name, listPrice, discountPercent string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.products[id] = client.Product{
		ProductID:       id,
		CategoryID:      1,
		ProductCode:     "CODE" + strconv.FormatInt(id, 10),
		ProductName:     name,
		ListPrice:       decimal.RequireFromString(listPrice),
		DiscountPercent: decimal.RequireFromString(discountPercent),
		Category:        &client.Category{CategoryID: 1, CategoryName: "Accessories"},
	}
}

func (f *FakeDownstream) RemoveProduct(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.products, id)
}

// BreakProduct makes lookups of id answer 500.
func (f *FakeDownstream) BreakProduct(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.brokenProducts[id] = true
}

// SetDown makes every lookup answer 503.
func (f *FakeDownstream) SetDown(down bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.down = down
}

// ClientOptions are fast-failing downstream options for tests.
func (f *FakeDownstream) ClientOptions() client.Options {
	return client.Options{
		Timeout:            time.Second,
		Retries:            0,
		BreakerMaxRequests: 1,
		BreakerInterval:    time.Minute,
		BreakerTimeout:     time.Minute,
	}
}

func (f *FakeDownstream) CustomerClient() client.CustomerClient {
	return client.NewCustomerClient(f.URL(), f.ClientOptions(), zap.NewNop())
}

func (f *FakeDownstream) CatalogClient() client.CatalogClient {
	return client.NewCatalogClient(f.URL(), f.ClientOptions(), zap.NewNop())
}

func (f *FakeDownstream) serveCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid customer id"})
		return
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.down {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"detail": "unavailable"})
		return
	}

	customer, ok := f.customers[id]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Customer not found"})
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

func (f *FakeDownstream) serveProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid product id"})
		return
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.down {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"detail": "unavailable"})
		return
	}

	if f.brokenProducts[id] {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "boom"})
		return
	}

	product, ok := f.products[id]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Product not found"})
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
