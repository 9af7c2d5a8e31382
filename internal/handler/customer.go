package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-pos/internal/repository"
)

// CustomerHandler serves customer lookups for the sale form.
type CustomerHandler struct {
	Customers *repository.CustomerRepo
}

func NewCustomerHandler(customers *repository.CustomerRepo) *CustomerHandler {
	return &CustomerHandler{Customers: customers}
}

// Lookup finds a customer by exact phone number so the operator's sale
// form can pre-fill the name.  An unknown phone is a plain 404; the
// sale itself will create the customer.
func (h *CustomerHandler) Lookup(c echo.Context) error {
	phone := strings.TrimSpace(c.QueryParam("phone"))
	if phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cust, err := h.Customers.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, cust)
}
