package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"vegetable-orders/internal/service"

	"github.com/gin-gonic/gin"
)

// EMPLOYEE ORDERING

func (h *Handler) OrderPage(c *gin.Context) {
	vegetables, err := h.Catalog.List(c.Request.Context())
	if err != nil {
		h.Log.Error("failed to list vegetables", "error", err)
		c.String(http.StatusInternalServerError, "failed to load catalog")
		return
	}

	h.render(c, http.StatusOK, "order_page.html", gin.H{
		"vegetables": vegetables,
	})
}

func (h *Handler) ShowOrderForm(c *gin.Context) {
	id, ok := vegetableID(c)
	if !ok {
		h.flash(c, flashDanger, msgNotFound)
		c.Redirect(http.StatusFound, "/order_page")
		return
	}

	veg, err := h.Catalog.Get(c.Request.Context(), id)
	if err != nil {
		h.flash(c, flashDanger, h.failureMessage(c, err))
		c.Redirect(http.StatusFound, "/order_page")
		return
	}

	h.render(c, http.StatusOK, "order.html", gin.H{
		"vegetable": veg,
	})
}

func (h *Handler) PlaceOrder(c *gin.Context) {
	id, ok := vegetableID(c)
	if !ok {
		h.flash(c, flashDanger, msgNotFound)
		c.Redirect(http.StatusFound, "/order_page")
		return
	}

	form := service.OrderForm{
		EmployeeID:   c.PostForm("employee_id"),
		EmployeeName: c.PostForm("employee_name"),
		Quantity:     c.PostForm("quantity"),
	}

	_, err := h.Orders.PlaceOrder(c.Request.Context(), id, form)
	switch {
	case errors.Is(err, service.ErrNotFound):
		h.flash(c, flashDanger, msgNotFound)
		c.Redirect(http.StatusFound, "/order_page")
		return
	case err != nil:
		if errors.Is(err, service.ErrInsufficientStock) || service.IsValidation(err) {
			h.Log.Info("order rejected", "vegetable_id", id, "reason", err)
		}
		h.flash(c, flashDanger, h.failureMessage(c, err))
		c.Redirect(http.StatusFound, fmt.Sprintf("/order/%d", id))
		return
	}

	h.flash(c, flashSuccess, "Order placed!")
	c.Redirect(http.StatusFound, "/orders")
}

// HISTORY

func (h *Handler) OrderHistory(c *gin.Context) {
	orders, err := h.Orders.History(c.Request.Context())
	if err != nil {
		h.Log.Error("failed to load order history", "error", err)
		c.String(http.StatusInternalServerError, "failed to load order history")
		return
	}

	h.render(c, http.StatusOK, "orders.html", gin.H{
		"orders": orders,
	})
}
