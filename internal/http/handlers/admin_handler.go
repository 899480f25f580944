package handlers

import (
	"encoding/json"
	"math"

	"github.com/gofiber/fiber/v2"

	"threadbound/internal/cache"
	applog "threadbound/internal/log"
	"threadbound/internal/repos"
	"threadbound/internal/services"
	"threadbound/internal/validate"
)

type AdminHandler struct {
	Prods  *repos.ProductRepo
	Inv    *repos.InventoryRepo
	Orders *repos.OrderRepo
	Auth   *services.AuthService
	Sizes  *cache.Cache
}

type sizePatch struct {
	Size     string  `json:"size"`
	Quantity float64 `json:"quantity"`
}

// PATCH /api/admin/product/:id
// Partial update: only whitelisted product fields are applied; sizeInventory
// entries are upserted by (product, size) with the quantity floored and
// clamped at zero.
func (h *AdminHandler) PatchProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}

	var sizeEntries []sizePatch
	if sv, present := raw["sizeInventory"]; present {
		if err := json.Unmarshal(sv, &sizeEntries); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid sizeInventory"})
		}
		delete(raw, "sizeInventory")
	}
	for i := range sizeEntries {
		label, ok := validate.SizeLabel(sizeEntries[i].Size)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid size label"})
		}
		sizeEntries[i].Size = label
	}

	fields := map[string]any{}
	for key, val := range raw {
		var v any
		if err := json.Unmarshal(val, &v); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid value for " + key})
		}
		fields[key] = v
	}

	p, err := h.Prods.Get(id)
	if err != nil {
		applog.Error(c, "admin.product.load.fail", err, map[string]any{"product": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load product"})
	}
	if p == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}

	if _, err := h.Prods.UpdateFields(id, fields); err != nil {
		applog.Error(c, "admin.product.update.fail", err, map[string]any{"product": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not update product"})
	}
	for _, e := range sizeEntries {
		qty := int(math.Floor(e.Quantity))
		if err := h.Inv.Upsert(id, e.Size, qty); err != nil {
			applog.Error(c, "admin.inventory.upsert.fail", err, map[string]any{"product": id, "size": e.Size})
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not update inventory"})
		}
	}
	h.Sizes.Delete("sizes:" + p.Slug)

	applog.Audit(c, "admin.product.update", map[string]any{
		"product": id, "fields": len(fields), "sizes": len(sizeEntries),
	})
	return c.JSON(fiber.Map{"ok": true})
}

// GET /api/admin/product/:id/sizes — inventory rows merged with the "Size"
// attribute options; options without a row report quantity 0.
func (h *AdminHandler) ProductSizes(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	p, err := h.Prods.Get(id)
	if err != nil {
		applog.Error(c, "admin.sizes.load.fail", err, map[string]any{"product": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load sizes"})
	}
	if p == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	return c.JSON(fiber.Map{"sizes": services.MergedSizes(p)})
}

// GET /admin/login
func (h *AdminHandler) LoginForm(c *fiber.Ctx) error {
	tok, _ := c.Locals("csrf").(string)
	return render(c, "admin_login", fiber.Map{"Err": "", "CSRFToken": tok})
}

// POST /admin/login
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	if h.Auth.Enabled() && !h.Auth.CheckPassword(c.FormValue("password")) {
		applog.Security(c, "admin.login.fail", nil)
		tok, _ := c.Locals("csrf").(string)
		return c.Status(fiber.StatusUnauthorized).Render("admin_login", fiber.Map{"Err": "Wrong password", "CSRFToken": tok})
	}
	setSessionCookie(c, h.Auth)
	applog.Audit(c, "admin.login.success", nil)
	return c.Redirect("/admin")
}

// GET /admin — server-rendered overview of the catalog and recent orders.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	prods, err := h.Prods.ListAll()
	if err != nil {
		applog.Error(c, "admin.dashboard.products.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).SendString("could not load products")
	}
	orders, err := h.Orders.ListLatest(25)
	if err != nil {
		applog.Error(c, "admin.dashboard.orders.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).SendString("could not load orders")
	}
	return render(c, "admin_dashboard", fiber.Map{"Products": prods, "Orders": orders})
}
