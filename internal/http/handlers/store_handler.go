// README: Store handlers: admin creation, city/nearby listings, store orders.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vikrant8989/Drop-Go/internal/http/middleware"
	"github.com/vikrant8989/Drop-Go/internal/modules/order"
	"github.com/vikrant8989/Drop-Go/internal/modules/store"
	"github.com/vikrant8989/Drop-Go/internal/types"
)

type StoreHandler struct {
	store *store.Service
	order *order.Service
}

func NewStoreHandler(storeSvc *store.Service, orderSvc *order.Service) *StoreHandler {
	return &StoreHandler{store: storeSvc, order: orderSvc}
}

type createStoreReq struct {
	Name          string           `json:"name"`
	Address       string           `json:"address"`
	City          string           `json:"city"`
	Pincode       string           `json:"pincode"`
	OwnerName     string           `json:"ownerName"`
	Timings       string           `json:"timings"`
	IsOpen        bool             `json:"isOpen"`
	PricePerDay   int64            `json:"pricePerDay"`
	PricePerMonth map[string]int64 `json:"pricePerMonth"`
	Capacity      int              `json:"capacity"`
	ContactNumber string           `json:"contactNumber"`
	Description   string           `json:"description"`
	Email         string           `json:"email"`
	Images        []string         `json:"images"`
	Latitude      float64          `json:"latitude"`
	Longitude     float64          `json:"longitude"`
	Amenities     []string         `json:"amenities"`
}

type storeResp struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Address       string           `json:"address"`
	City          string           `json:"city"`
	Pincode       string           `json:"pincode"`
	OwnerName     string           `json:"ownerName"`
	Timings       string           `json:"timings"`
	IsOpen        bool             `json:"isOpen"`
	PricePerDay   int64            `json:"pricePerDay"`
	PricePerMonth map[string]int64 `json:"pricePerMonth"`
	Capacity      int              `json:"capacity"`
	ContactNumber string           `json:"contactNumber"`
	Description   string           `json:"description,omitempty"`
	Email         string           `json:"email"`
	Images        []string         `json:"images"`
	Latitude      float64          `json:"latitude"`
	Longitude     float64          `json:"longitude"`
	Ratings       float64          `json:"ratings"`
	TotalReviews  int              `json:"totalReviews"`
	Amenities     []string         `json:"amenities"`
	CreatedAt     time.Time        `json:"createdAt"`

	Orders     *store.OrderStats `json:"orders,omitempty"`
	DistanceKm *float64          `json:"distanceKm,omitempty"`
}

func toStoreResp(st *store.Store) storeResp {
	return storeResp{
		ID:            string(st.ID),
		Name:          st.Name,
		Address:       st.Address,
		City:          st.City,
		Pincode:       st.Pincode,
		OwnerName:     st.OwnerName,
		Timings:       st.Timings,
		IsOpen:        st.IsOpen,
		PricePerDay:   st.PricePerDay,
		PricePerMonth: st.PricePerMonth,
		Capacity:      st.Capacity,
		ContactNumber: st.ContactNumber,
		Description:   st.Description,
		Email:         st.Email,
		Images:        st.Images,
		Latitude:      st.Position.Lat,
		Longitude:     st.Position.Lng,
		Ratings:       st.Ratings,
		TotalReviews:  st.TotalReviews,
		Amenities:     st.Amenities,
		CreatedAt:     st.CreatedAt,
	}
}

func (h *StoreHandler) Create(c *gin.Context) {
	if !middleware.IsAdmin(c) {
		writeError(c, http.StatusForbidden, "admin role required")
		return
	}
	var req createStoreReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	createdBy := middleware.CallerEmail(c)
	if createdBy == "" {
		createdBy = middleware.CallerUID(c)
	}
	st, err := h.store.Create(c.Request.Context(), store.CreateCommand{
		Name:          req.Name,
		Address:       req.Address,
		City:          req.City,
		Pincode:       req.Pincode,
		OwnerName:     req.OwnerName,
		Timings:       req.Timings,
		IsOpen:        req.IsOpen,
		PricePerDay:   req.PricePerDay,
		PricePerMonth: req.PricePerMonth,
		Capacity:      req.Capacity,
		ContactNumber: req.ContactNumber,
		Description:   req.Description,
		Email:         req.Email,
		Images:        req.Images,
		Position:      types.Point{Lat: req.Latitude, Lng: req.Longitude},
		Amenities:     req.Amenities,
		CreatedBy:     createdBy,
	})
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Store created successfully", "store": toStoreResp(st)})
}

func (h *StoreHandler) ListAll(c *gin.Context) {
	stores, err := h.store.ListAll(c.Request.Context())
	if err != nil {
		writeStoreError(c, err)
		return
	}
	out := make([]storeResp, 0, len(stores))
	for i := range stores {
		out = append(out, toStoreResp(&stores[i]))
	}
	c.JSON(http.StatusOK, gin.H{"locations": out})
}

// ListByCity returns the city's stores; admins also get per-status order
// counts attached to each store.
func (h *StoreHandler) ListByCity(c *gin.Context) {
	city := c.Query("city")
	admin := middleware.IsAdmin(c)

	stores, stats, err := h.store.ListByCity(c.Request.Context(), city, admin)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	out := make([]storeResp, 0, len(stores))
	for i := range stores {
		resp := toStoreResp(&stores[i])
		if admin {
			s := stats[stores[i].ID]
			resp.Orders = &s
		}
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, gin.H{"locations": out})
}

func (h *StoreHandler) Nearby(c *gin.Context) {
	lat, err1 := strconv.ParseFloat(c.Query("latitude"), 64)
	lng, err2 := strconv.ParseFloat(c.Query("longitude"), 64)
	if err1 != nil || err2 != nil {
		writeError(c, http.StatusBadRequest, "latitude and longitude are required")
		return
	}

	results, err := h.store.Nearby(c.Request.Context(), types.Point{Lat: lat, Lng: lng})
	if err != nil {
		writeStoreError(c, err)
		return
	}
	out := make([]storeResp, 0, len(results))
	for i := range results {
		resp := toStoreResp(&results[i].Store)
		d := results[i].DistanceKm
		resp.DistanceKm = &d
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, gin.H{"locations": out})
}

func (h *StoreHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing store id")
		return
	}
	st, err := h.store.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"store": toStoreResp(st)})
}

// Orders lists a store's orders for its owning admin.
func (h *StoreHandler) Orders(c *gin.Context) {
	if !middleware.IsAdmin(c) {
		writeError(c, http.StatusForbidden, "admin role required")
		return
	}
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing store id")
		return
	}
	st, err := h.store.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeStoreError(c, err)
		return
	}
	owner := middleware.CallerEmail(c)
	if owner == "" {
		owner = middleware.CallerUID(c)
	}
	if st.CreatedBy != owner {
		writeError(c, http.StatusForbidden, "not the store owner")
		return
	}

	orders, err := h.order.ListByStore(c.Request.Context(), st.ID)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	out := make([]orderResp, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResp(&orders[i]))
	}
	c.JSON(http.StatusOK, gin.H{"orders": out})
}
