package handlers

import (
	"github.com/gofiber/fiber/v2"

	"threadbound/internal/cache"
	applog "threadbound/internal/log"
	"threadbound/internal/repos"
	"threadbound/internal/services"
	"threadbound/internal/validate"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
	Prods   *repos.ProductRepo
	Sizes   *cache.Cache
}

// GET /api/categories
func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		applog.Error(c, "catalog.categories.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load categories"})
	}
	return c.JSON(fiber.Map{"categories": cats})
}

// GET /api/products?category=<slug>
func (h *CatalogHandler) Products(c *fiber.Ctx) error {
	categorySlug := c.Query("category")
	if categorySlug != "" {
		s, ok := validate.Slug(categorySlug)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid category slug"})
		}
		categorySlug = s
	}
	prods, err := h.Catalog.ListProducts(categorySlug)
	if err != nil {
		applog.Error(c, "catalog.products.fail", err, map[string]any{"category": categorySlug})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load products"})
	}
	return c.JSON(fiber.Map{"products": prods})
}

// GET /api/product/:slug
func (h *CatalogHandler) Product(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid slug"})
	}
	p, err := h.Catalog.GetProduct(slug)
	if err != nil {
		applog.Error(c, "catalog.product.fail", err, map[string]any{"slug": slug})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load product"})
	}
	if p == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	return c.JSON(p)
}

// GET /api/product/:slug/sizes — merged size counts, cached for 60s.
func (h *CatalogHandler) ProductSizes(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid slug"})
	}

	c.Set(fiber.HeaderCacheControl, "public, max-age=60")

	key := "sizes:" + slug
	if v, ok := h.Sizes.Get(key); ok {
		return c.JSON(fiber.Map{"sizes": v})
	}

	p, err := h.Prods.GetBySlug(slug)
	if err != nil {
		applog.Error(c, "catalog.sizes.fail", err, map[string]any{"slug": slug})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load sizes"})
	}
	if p == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}

	merged := services.MergedSizes(p)
	h.Sizes.Set(key, merged)
	return c.JSON(fiber.Map{"sizes": merged})
}
