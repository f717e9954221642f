package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/RoyceAzure/lab/rentfront/internal/constants"
	"github.com/RoyceAzure/lab/rentfront/internal/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// fakeBackend 以chi router模擬後端 記錄收到的請求內容供驗證
type fakeBackend struct {
	router    *chi.Mux
	server    *httptest.Server
	lastToken string
	lastBody  map[string]any
	lastForm  map[string]string
	lastFiles []string
	lastQuery string
}

func newFakeBackend() *fakeBackend {
	f := &fakeBackend{router: chi.NewRouter()}
	f.server = httptest.NewServer(f.router)
	return f
}

func (f *fakeBackend) capture(next func(w http.ResponseWriter, r *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.lastToken = r.Header.Get(constants.TokenHeaderKey)
		f.lastQuery = r.URL.RawQuery

		contentType := r.Header.Get("Content-Type")
		switch {
		case contentType == "application/json":
			f.lastBody = map[string]any{}
			json.NewDecoder(r.Body).Decode(&f.lastBody)
		case contentType != "":
			if err := r.ParseMultipartForm(10 << 20); err == nil {
				f.lastForm = map[string]string{}
				for key, values := range r.MultipartForm.Value {
					f.lastForm[key] = values[0]
				}
				f.lastFiles = nil
				for _, fh := range r.MultipartForm.File["images"] {
					f.lastFiles = append(f.lastFiles, fh.Filename)
				}
			}
		}

		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

type ClientTestSuite struct {
	suite.Suite
	backend *fakeBackend
	client  *Client
}

func (s *ClientTestSuite) SetupTest() {
	s.backend = newFakeBackend()
	s.client = NewClient(s.backend.server.URL)
}

func (s *ClientTestSuite) TearDownTest() {
	s.backend.server.Close()
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) TestLoginSuccess() {
	s.backend.router.Post("/api/user/login", s.backend.capture(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Login successful",
			"token":   "token-abc",
			"user":    map[string]any{"_id": "u1", "name": "Royce", "email": "royce@example.com"},
		})
	}))

	res, err := s.client.Login(context.Background(), "royce@example.com", "secret")
	require.NoError(s.T(), err)
	require.Equal(s.T(), "token-abc", res.Token)
	require.Equal(s.T(), "u1", res.User.ID, "_id應收斂為canonical id")
	require.Equal(s.T(), "Royce", res.User.Name)

	require.Equal(s.T(), "royce@example.com", s.backend.lastBody["email"])
	require.Equal(s.T(), "secret", s.backend.lastBody["password"])
	require.Empty(s.T(), s.backend.lastToken, "登入請求不帶token")
}

func (s *ClientTestSuite) TestLoginInvalidPassword() {
	s.backend.router.Post("/api/user/login", s.backend.capture(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"success": false,
			"message": "Invalid password",
		})
	}))

	_, err := s.client.Login(context.Background(), "royce@example.com", "wrong")
	require.Error(s.T(), err)

	var anaErr *er.AnaError
	require.ErrorAs(s.T(), err, &anaErr)
	require.Equal(s.T(), er.UnauthenticatedCode, anaErr.Code)
	require.Contains(s.T(), err.Error(), "Invalid password", "後端訊息應原樣保留")
}

func (s *ClientTestSuite) TestVerifyTokenSendsTokenHeader() {
	s.backend.router.Get("/api/user/verify-token", s.backend.capture(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}))

	err := s.client.VerifyToken(context.Background(), "token-abc")
	require.NoError(s.T(), err)
	require.Equal(s.T(), "token-abc", s.backend.lastToken, "token以原始值放在自訂header 不加Bearer前綴")
}

func (s *ClientTestSuite) TestListProductsNormalizesLegacyFields() {
	s.backend.router.Get("/api/product/list", s.backend.capture(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"products": []map[string]any{
				{
					//舊格式 _id/image/available 價格為float
					"_id":         "p1",
					"name":        "JBL Speaker",
					"category":    "sound-systems",
					"image":       "/img/jbl.jpg",
					"available":   true,
					"pricePerDay": 499.5,
				},
				{
					//新格式 缺availability 應預設可租
					"id":          "p2",
					"name":        "Par Light",
					"category":    "lighting",
					"images":      []string{"/img/par1.jpg", "/img/par2.jpg"},
					"pricePerDay": 300,
				},
			},
		})
	}))

	products, err := s.client.ListProducts(context.Background())
	require.NoError(s.T(), err)
	require.Len(s.T(), products, 2)

	require.Equal(s.T(), "p1", products[0].ID)
	require.Equal(s.T(), []string{"/img/jbl.jpg"}, products[0].Images)
	require.True(s.T(), products[0].PricePerDay.Equal(decimal.RequireFromString("499.5")))
	require.True(s.T(), products[0].IsAvailable)
	require.Equal(s.T(), 1, products[0].MinimumRentalDays, "缺最低租期時預設1天")

	require.True(s.T(), products[1].IsAvailable, "未帶availability視為可租")
	require.Len(s.T(), products[1].Images, 2)
}

func (s *ClientTestSuite) TestProductNotFound() {
	s.backend.router.Get("/api/product/{id}", s.backend.capture(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"success": false,
			"message": "Product not found",
		})
	}))

	_, err := s.client.ProductByID(context.Background(), "no-such-id")
	var anaErr *er.AnaError
	require.ErrorAs(s.T(), err, &anaErr)
	require.Equal(s.T(), er.NotFoundCode, anaErr.Code)
}

func (s *ClientTestSuite) TestAddProductUploadsMultipart() {
	imagePath := filepath.Join(s.T().TempDir(), "speaker.jpg")
	require.NoError(s.T(), os.WriteFile(imagePath, []byte("fake image bytes"), 0644))

	s.backend.router.Post("/api/product/add", s.backend.capture(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Product added"})
	}))

	err := s.client.AddProduct(context.Background(), "admin-token", model.CreateProductModel{
		Name:              "JBL Speaker",
		Category:          "sound-systems",
		Description:       "powerful bass",
		PricePerDay:       decimal.NewFromInt(500),
		Quantity:          10,
		AvailableQuantity: 10,
		MinimumRentalDays: 2,
		DepositAmount:     decimal.NewFromInt(2000),
		Features:          []string{"bluetooth", "500W"},
		Tags:              []string{"audio"},
		ImagePaths:        []string{imagePath},
	})
	require.NoError(s.T(), err)

	require.Equal(s.T(), "admin-token", s.backend.lastToken)
	require.Equal(s.T(), "JBL Speaker", s.backend.lastForm["name"])
	require.Equal(s.T(), "500", s.backend.lastForm["pricePerDay"])
	require.Equal(s.T(), "2", s.backend.lastForm["minimumRentalDays"])
	require.JSONEq(s.T(), `["bluetooth","500W"]`, s.backend.lastForm["features"], "features以JSON字串傳遞")
	require.NotContains(s.T(), s.backend.lastForm, "specifications", "未填specifications不傳欄位")
	require.Equal(s.T(), []string{"speaker.jpg"}, s.backend.lastFiles)
}

func (s *ClientTestSuite) TestAllOrdersStatusFilter() {
	s.backend.router.Get("/api/order/admin/all", s.backend.capture(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"orders": []map[string]any{
				{"_id": "68f1c2d3e4a5b6c7d8e9f0a1", "totalAmount": 7500},
			},
		})
	}))

	orders, err := s.client.AllOrders(context.Background(), "admin-token", "pending")
	require.NoError(s.T(), err)
	require.Equal(s.T(), "status=pending", s.backend.lastQuery)
	require.Len(s.T(), orders, 1)
	require.Equal(s.T(), "pending", orders[0].Status, "缺status預設pending")
	require.Equal(s.T(), "D8E9F0A1", orders[0].ShortID())

	_, err = s.client.AllOrders(context.Background(), "admin-token", "all")
	require.NoError(s.T(), err)
	require.Empty(s.T(), s.backend.lastQuery, "all不加篩選參數")
}

func (s *ClientTestSuite) TestOrderStats() {
	s.backend.router.Get("/api/order/admin/stats", s.backend.capture(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"stats": map[string]any{
				"totalRevenue":    125000.50,
				"totalOrders":     42,
				"pendingOrders":   5,
				"completedOrders": 30,
				"cancelledOrders": 7,
			},
		})
	}))

	stats, err := s.client.OrderStats(context.Background(), "admin-token")
	require.NoError(s.T(), err)
	require.True(s.T(), stats.TotalRevenue.Equal(decimal.RequireFromString("125000.5")))
	require.Equal(s.T(), 42, stats.TotalOrders)
	require.Equal(s.T(), 5, stats.PendingOrders)
}

func (s *ClientTestSuite) TestCreateOrderSendsDraft() {
	s.backend.router.Post("/api/order/create", s.backend.capture(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Order created successfully",
			"order":   map[string]any{"_id": "order-1"},
		})
	}))

	res, err := s.client.CreateOrder(context.Background(), "token-abc", model.OrderDraft{
		Items:         []model.OrderDraftItem{{ProductID: "p1", Quantity: 3, Days: 5}},
		EventDate:     "2026-10-01",
		EventLocation: "Taipei",
	})
	require.NoError(s.T(), err)
	require.Equal(s.T(), "order-1", res.OrderID)

	require.Equal(s.T(), "2026-10-01", s.backend.lastBody["eventDate"])
	items := s.backend.lastBody["items"].([]any)
	require.Len(s.T(), items, 1)
	item := items[0].(map[string]any)
	require.Equal(s.T(), "p1", item["productId"])
}

func (s *ClientTestSuite) TestTransportFailure() {
	s.backend.server.Close()

	_, err := s.client.ListProducts(context.Background())
	require.Error(s.T(), err)

	var anaErr *er.AnaError
	require.ErrorAs(s.T(), err, &anaErr)
	require.Equal(s.T(), er.InternalErrorCode, anaErr.Code, "傳輸層失敗轉為內部錯誤碼")
}
