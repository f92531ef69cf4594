// README: Order handlers: booking creation, listings, cancel, admin edit.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vikrant8989/Drop-Go/internal/http/middleware"
	"github.com/vikrant8989/Drop-Go/internal/modules/order"
	"github.com/vikrant8989/Drop-Go/internal/modules/pricing"
	"github.com/vikrant8989/Drop-Go/internal/types"
)

type OrderHandler struct {
	order *order.Service
}

func NewOrderHandler(svc *order.Service) *OrderHandler {
	return &OrderHandler{order: svc}
}

type bagReq struct {
	Size  string `json:"size"`
	Image string `json:"image"`
}

type coordinatesReq struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type createOrderReq struct {
	StoreID      string          `json:"storeId"`
	SelectedPlan string          `json:"selectedPlan"`
	BookingType  string          `json:"bookingType"`
	Luggage      []bagReq        `json:"luggage"`
	NumberOfBags int             `json:"numberOfBags"`
	PickupDate   string          `json:"pickupDate"` // drop-off at the store
	PickupTime   string          `json:"pickupTime"`
	ReturnDate   string          `json:"returnDate"` // collection from the store
	ReturnTime   string          `json:"returnTime"`
	Address      string          `json:"address"`
	Coordinates  *coordinatesReq `json:"coordinates"`
}

type scheduleResp struct {
	Date time.Time `json:"date"`
	Time string    `json:"time"`
}

type orderResp struct {
	ID            string       `json:"id"`
	UserID        string       `json:"userId"`
	StoreID       string       `json:"storeId"`
	Luggage       []order.Bag  `json:"luggage"`
	Duration      int          `json:"duration"`
	SelectedPlan  string       `json:"selectedPlan"`
	BookingType   string       `json:"bookingType"`
	Status        string       `json:"status"`
	Pickup        scheduleResp `json:"pickup"`
	Return        scheduleResp `json:"return"`
	PaymentStatus string       `json:"paymentStatus"`
	TotalAmount   int64        `json:"totalAmount"`
	Currency      string       `json:"currency"`
	Discount      int64        `json:"discount"`
	Address       string       `json:"address,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
}

func toOrderResp(o *order.Order) orderResp {
	return orderResp{
		ID:            string(o.ID),
		UserID:        o.UserID,
		StoreID:       string(o.StoreID),
		Luggage:       o.Luggage,
		Duration:      o.DurationDays,
		SelectedPlan:  string(o.Plan),
		BookingType:   string(o.Mode),
		Status:        string(o.Status),
		Pickup:        scheduleResp{Date: o.Pickup.Date, Time: o.Pickup.Time},
		Return:        scheduleResp{Date: o.Return.Date, Time: o.Return.Time},
		PaymentStatus: string(o.PaymentStatus),
		TotalAmount:   o.TotalAmount.Amount,
		Currency:      o.TotalAmount.Currency,
		Discount:      o.Discount,
		Address:       o.Address,
		CreatedAt:     o.CreatedAt,
	}
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	dropOff, err1 := parseDate(req.PickupDate)
	pickUp, err2 := parseDate(req.ReturnDate)
	if req.StoreID == "" || err1 != nil || err2 != nil {
		writeError(c, http.StatusBadRequest, "missing required fields")
		return
	}

	cmd := order.CreateCommand{
		UserID:      middleware.CallerUID(c),
		StoreID:     types.ID(req.StoreID),
		Plan:        pricing.Plan(req.SelectedPlan),
		Mode:        pricing.BookingMode(req.BookingType),
		DropOffDate: dropOff,
		DropOffTime: req.PickupTime,
		PickUpDate:  pickUp,
		PickUpTime:  req.ReturnTime,
		Address:     req.Address,
	}
	for _, b := range req.Luggage {
		cmd.Bags = append(cmd.Bags, order.BagInput{Size: pricing.BagSize(b.Size), Image: b.Image})
	}
	cmd.NumberOfBags = req.NumberOfBags
	if req.Coordinates != nil {
		cmd.AddressPoint = &types.Point{Lat: req.Coordinates.Latitude, Lng: req.Coordinates.Longitude}
	}

	o, err := h.order.Create(c.Request.Context(), cmd)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Order created successfully", "order": toOrderResp(o)})
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.order.ListByUser(c.Request.Context(), middleware.CallerUID(c))
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

func (h *OrderHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing order id")
		return
	}
	o, err := h.order.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeOrderError(c, err)
		return
	}
	// Customers can only see their own orders.
	if o.UserID != middleware.CallerUID(c) && !middleware.IsAdmin(c) {
		writeError(c, http.StatusForbidden, "forbidden")
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": toOrderResp(o)})
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing order id")
		return
	}
	if err := h.order.CancelByUser(c.Request.Context(), types.ID(id), middleware.CallerUID(c)); err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": order.StatusCancelled})
}

type editOrderReq struct {
	Status        *string  `json:"status"`
	PaymentStatus *string  `json:"paymentStatus"`
	Luggage       []bagReq `json:"luggage"`
	PickupDate    *string  `json:"pickupDate"`
	PickupTime    *string  `json:"pickupTime"`
	ReturnDate    *string  `json:"returnDate"`
	ReturnTime    *string  `json:"returnTime"`
	Discount      *int64   `json:"discount"`
}

// Edit is admin-only; the route guard checks the role before this runs.
func (h *OrderHandler) Edit(c *gin.Context) {
	if !middleware.IsAdmin(c) {
		writeError(c, http.StatusForbidden, "admin role required")
		return
	}
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing order id")
		return
	}
	var req editOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	cmd := order.EditCommand{
		OrderID: types.ID(id),
		ActorID: middleware.CallerUID(c),
	}
	if req.Status != nil {
		st := order.Status(*req.Status)
		cmd.Status = &st
	}
	if req.PaymentStatus != nil {
		ps := order.PaymentStatus(*req.PaymentStatus)
		cmd.PaymentStatus = &ps
	}
	if req.Luggage != nil {
		cmd.Luggage = make([]order.BagInput, 0, len(req.Luggage))
		for _, b := range req.Luggage {
			cmd.Luggage = append(cmd.Luggage, order.BagInput{Size: pricing.BagSize(b.Size), Image: b.Image})
		}
	}
	if req.PickupDate != nil {
		d, err := parseDate(*req.PickupDate)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid pickupDate")
			return
		}
		cmd.PickupDate = &d
	}
	if req.ReturnDate != nil {
		d, err := parseDate(*req.ReturnDate)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid returnDate")
			return
		}
		cmd.ReturnDate = &d
	}
	cmd.PickupTime = req.PickupTime
	cmd.ReturnTime = req.ReturnTime
	cmd.Discount = req.Discount

	o, err := h.order.Edit(c.Request.Context(), cmd)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order updated successfully", "order": toOrderResp(o)})
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}
