package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	cartapp "github.com/keisys/teppan-register/internal/cart/app"
	cartdomain "github.com/keisys/teppan-register/internal/cart/domain"
	checkoutapp "github.com/keisys/teppan-register/internal/checkout/app"
)

// tillHeader names the till a request belongs to. A stall with one
// till never needs to set it.
const tillHeader = "X-Till-ID"

const defaultTill = "till-1"

type RegisterHandler struct {
	Cart     *cartapp.Service
	Checkout *checkoutapp.Service
}

func NewRegisterHandler(cart *cartapp.Service, checkout *checkoutapp.Service) *RegisterHandler {
	return &RegisterHandler{Cart: cart, Checkout: checkout}
}

func tillID(c echo.Context) string {
	if id := c.Request().Header.Get(tillHeader); id != "" {
		return id
	}
	return defaultTill
}

type addItemReq struct {
	SKU string `json:"sku"`
}

type defineBundleReq struct {
	Components []string `json:"components"`
	Price      int64    `json:"price"`
}

type cartResp struct {
	TillID string            `json:"till_id"`
	Lines  []cartdomain.Line `json:"lines"`
	Total  int64             `json:"total"`
}

func (h *RegisterHandler) AddItem(c echo.Context) error {
	var req addItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body", "code": "BAD_REQUEST"})
	}
	if req.SKU == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "sku required", "code": "BAD_REQUEST"})
	}

	till := tillID(c)
	if err := h.Cart.Add(till, req.SKU); err != nil {
		return jsonErr(c, err)
	}
	return h.viewCart(c, till)
}

func (h *RegisterHandler) GetCart(c echo.Context) error {
	return h.viewCart(c, tillID(c))
}

func (h *RegisterHandler) viewCart(c echo.Context, till string) error {
	lines, total, err := h.Cart.View(till)
	if err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusOK, cartResp{TillID: till, Lines: lines, Total: total})
}

func (h *RegisterHandler) ClearCart(c echo.Context) error {
	h.Cart.Clear(tillID(c))
	return c.NoContent(http.StatusNoContent)
}

// DefineBundle registers a custom bundle for this till's cart and
// returns the generated SKU. It does not add the bundle to the cart.
func (h *RegisterHandler) DefineBundle(c echo.Context) error {
	var req defineBundleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body", "code": "BAD_REQUEST"})
	}

	sku, err := h.Cart.DefineBundle(tillID(c), req.Components, req.Price)
	if err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"sku":        sku.Name,
		"price":      sku.Price,
		"components": sku.Components,
	})
}

func (h *RegisterHandler) DoCheckout(c echo.Context) error {
	receipt, err := h.Checkout.Checkout(c.Request().Context(), tillID(c))
	if err != nil {
		return jsonErr(c, err)
	}
	return c.JSON(http.StatusOK, receipt)
}

func jsonErr(c echo.Context, err error) error {
	status, code := httpStatusFromErr(err)
	return c.JSON(status, echo.Map{"error": err.Error(), "code": code})
}
