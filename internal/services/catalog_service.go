package services

import (
	"sort"
	"strings"

	"threadbound/internal/domain"
	"threadbound/internal/repos"
	"threadbound/internal/sizes"
)

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

// ListProducts returns the catalog in display order with display-formatted
// prices. An empty categorySlug means the whole catalog; an unknown slug
// yields an empty list.
func (s *CatalogService) ListProducts(categorySlug string) ([]domain.Product, error) {
	var (
		prods []domain.Product
		err   error
	)
	if categorySlug == "" {
		prods, err = s.Prods.ListAll()
	} else {
		prods, err = s.Prods.ListByCategorySlug(categorySlug)
	}
	if err != nil {
		return nil, err
	}
	sortForDisplay(prods)
	for i := range prods {
		formatPrices(&prods[i])
	}
	return prods, nil
}

// GetProduct returns nil when the slug is unknown.
func (s *CatalogService) GetProduct(slug string) (*domain.Product, error) {
	p, err := s.Prods.GetBySlug(slug)
	if err != nil || p == nil {
		return nil, err
	}
	formatPrices(p)
	return p, nil
}

// MergedSizes combines recorded inventory rows with the product's "Size"
// attribute options; options with no row surface with quantity 0. Output is
// sorted by the size comparator.
func MergedSizes(p *domain.Product) []domain.SizeEntry {
	out := make([]domain.SizeEntry, 0, len(p.Sizes))
	seen := map[string]bool{}
	for _, e := range p.Sizes {
		out = append(out, e)
		seen[e.Size] = true
	}
	for _, attr := range p.Attributes {
		if !strings.EqualFold(attr.Name, "Size") {
			continue
		}
		for _, opt := range attr.Options {
			if !seen[opt] {
				seen[opt] = true
				out = append(out, domain.SizeEntry{Size: opt, Quantity: 0})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return sizes.Less(out[i].Size, out[j].Size) })
	return out
}

// formatPrices renders decimal strings as display prices ("29.99" ->
// "$29.99"). Absent prices stay absent, never "$0".
func formatPrices(p *domain.Product) {
	p.Price = dollar(p.Price)
	p.RegularPrice = dollar(p.RegularPrice)
	p.SalePrice = dollar(p.SalePrice)
}

func dollar(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := "$" + *s
	return &v
}

// Display order: a fixed garment-type rank by name keyword, a hand-authored
// sub-order for the jacket color variants, then alphabetical.
func sortForDisplay(prods []domain.Product) {
	sort.SliceStable(prods, func(i, j int) bool {
		a, b := prods[i].Name, prods[j].Name
		ra, rb := displayRank(a), displayRank(b)
		if ra != rb {
			return ra < rb
		}
		if ra == rankJacket {
			sa, sb := jacketSubRank(a), jacketSubRank(b)
			if sa != sb {
				return sa < sb
			}
		}
		return a < b
	})
}

const (
	rankJacket = iota
	rankHoodie
	rankLogoTee
	rankTee
	rankDenim
	rankBeanie
	rankMask
	rankOther
)

func displayRank(name string) int {
	n := strings.ToLower(name)
	isTee := strings.Contains(n, "tee") || strings.Contains(n, "t-shirt")
	switch {
	case strings.Contains(n, "jacket"):
		return rankJacket
	case strings.Contains(n, "hoodie"):
		return rankHoodie
	case isTee && strings.Contains(n, "logo"):
		return rankLogoTee
	case isTee:
		return rankTee
	case strings.Contains(n, "denim") || strings.Contains(n, "jeans"):
		return rankDenim
	case strings.Contains(n, "beanie"):
		return rankBeanie
	case strings.Contains(n, "mask") || strings.Contains(n, "therma"):
		return rankMask
	default:
		return rankOther
	}
}

func jacketSubRank(name string) int {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "black") && strings.Contains(n, "white"):
		return 0
	case strings.Contains(n, "blue"):
		return 1
	case strings.Contains(n, "black"):
		return 2
	default:
		return 3
	}
}
