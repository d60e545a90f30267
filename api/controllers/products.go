package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/maisonthread/storefront-backend/api/responses"
	"github.com/maisonthread/storefront-backend/api/validators"
	"github.com/maisonthread/storefront-backend/internal/catalog"
	pkgerrors "github.com/maisonthread/storefront-backend/pkg/errors"
	"github.com/maisonthread/storefront-backend/pkg/logger"
	"github.com/maisonthread/storefront-backend/pkg/pagination"
)

const maxSearchTermLen = 120

// ProductList serves the filtered, cursor-paginated catalog browse endpoint.
func ProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		featured, err := validators.ParseQueryBool(r, "featured", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := catalog.ListFilter{
			CategorySlug: validators.SanitizeString(r.URL.Query().Get("category"), 80),
			SearchTerm:   validators.SanitizeString(r.URL.Query().Get("q"), maxSearchTermLen),
			FeaturedOnly: featured,
			ActiveOnly:   true,
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			},
		}

		result, err := svc.ListProducts(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ProductBySlug serves a single product detail page.
func ProductBySlug(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		slug := validators.SanitizeString(chi.URLParam(r, "slug"), 160)
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product slug required"))
			return
		}

		product, err := svc.GetProductBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// ProductFeatured serves the homepage featured rail.
func ProductFeatured(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := svc.FeaturedProducts(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"products": products})
	}
}

// CategoryList serves storefront navigation.
func CategoryList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		categories, err := svc.ListCategories(r.Context(), true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"categories": categories})
	}
}

type createProductRequest struct {
	Name           string      `json:"name" validate:"required,min=2,max=160"`
	Slug           string      `json:"slug" validate:"required,min=2,max=160"`
	Description    string      `json:"description"`
	SKU            string      `json:"sku" validate:"required,min=2,max=64"`
	PriceCents     int         `json:"price_cents" validate:"required,min=0"`
	SalePriceCents *int        `json:"sale_price_cents,omitempty"`
	StockQuantity  int         `json:"stock_quantity" validate:"min=0"`
	Sizes          []string    `json:"sizes,omitempty"`
	Colors         []string    `json:"colors,omitempty"`
	IsActive       bool        `json:"is_active"`
	IsFeatured     bool        `json:"is_featured"`
	CategoryIDs    []uuid.UUID `json:"category_ids,omitempty"`
}

// ProductCreate is the admin endpoint for adding catalog items.
func ProductCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), catalog.CreateProductInput{
			Name:           payload.Name,
			Slug:           payload.Slug,
			Description:    payload.Description,
			SKU:            payload.SKU,
			PriceCents:     payload.PriceCents,
			SalePriceCents: payload.SalePriceCents,
			StockQuantity:  payload.StockQuantity,
			Sizes:          payload.Sizes,
			Colors:         payload.Colors,
			IsActive:       payload.IsActive,
			IsFeatured:     payload.IsFeatured,
			CategoryIDs:    payload.CategoryIDs,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

type updateProductRequest struct {
	Name           *string   `json:"name,omitempty" validate:"omitempty,min=2,max=160"`
	Description    *string   `json:"description,omitempty"`
	PriceCents     *int      `json:"price_cents,omitempty" validate:"omitempty,min=0"`
	SalePriceCents *int      `json:"sale_price_cents,omitempty"`
	ClearSalePrice bool      `json:"clear_sale_price,omitempty"`
	StockQuantity  *int      `json:"stock_quantity,omitempty" validate:"omitempty,min=0"`
	Sizes          *[]string `json:"sizes,omitempty"`
	Colors         *[]string `json:"colors,omitempty"`
	IsActive       *bool     `json:"is_active,omitempty"`
	IsFeatured     *bool     `json:"is_featured,omitempty"`
}

// ProductUpdate is the admin endpoint for patching catalog items.
func ProductUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), productID, catalog.UpdateProductInput{
			Name:           payload.Name,
			Description:    payload.Description,
			PriceCents:     payload.PriceCents,
			SalePriceCents: payload.SalePriceCents,
			ClearSalePrice: payload.ClearSalePrice,
			StockQuantity:  payload.StockQuantity,
			Sizes:          payload.Sizes,
			Colors:         payload.Colors,
			IsActive:       payload.IsActive,
			IsFeatured:     payload.IsFeatured,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}
