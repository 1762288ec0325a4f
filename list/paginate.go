package list

import (
	"fmt"
	"net/url"
	"strconv"

	viewkit "github.com/dmitrymomot/viewkit"
	"github.com/dmitrymomot/viewkit/paginator"
)

// DefaultPageParam is the query parameter read for the requested page
// number.
const DefaultPageParam = "page"

// LastPageToken is the symbolic page value resolving to the final page.
const LastPageToken = "last"

// SizeSpec specifies how the per-page size is determined: either a fixed
// number or the name of a query parameter to read it from per request.
type SizeSpec struct {
	fixed int
	param string
}

// Size fixes the per-page size at configuration time.
func Size(n int) SizeSpec {
	return SizeSpec{fixed: n}
}

// SizeFromQuery reads the per-page size from the named query parameter on
// every request. A missing or unparsable value resolves to a 404, since an
// unusable page size means no valid page can be produced.
func SizeFromQuery(param string) SizeSpec {
	return SizeSpec{param: param}
}

// validate reports configuration mistakes detectable without a request.
func (s SizeSpec) validate() error {
	if s.param != "" {
		return nil
	}
	if s.fixed < 1 {
		return fmt.Errorf("%w: got %d", paginator.ErrInvalidPageSize, s.fixed)
	}
	return nil
}

// resolve determines the effective per-page size for one request.
func (s SizeSpec) resolve(query url.Values) (int, error) {
	if s.param == "" {
		if s.fixed < 1 {
			return 0, fmt.Errorf("%w: got %d", paginator.ErrInvalidPageSize, s.fixed)
		}
		return s.fixed, nil
	}
	raw := query.Get(s.param)
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, viewkit.NotFoundf("Cannot determine page size from parameter %q (got %q).", s.param, raw)
	}
	return n, nil
}

// PaginateConfig parameterizes PaginateQueryset.
type PaginateConfig struct {
	// PageParam is the query parameter naming the requested page
	// (default "page").
	PageParam string
	// Size determines the per-page size.
	Size SizeSpec
	// Orphans is the minimum item count on the final page.
	Orphans int
	// AllowEmptyFirstPage defines one empty page for an empty
	// collection instead of failing page 1.
	AllowEmptyFirstPage bool
}

// Pagination is the per-request pagination result stored under
// PaginationKey. It is read-only once resolved; the page number is always
// within [1, NumPages()], violations never reach the handler.
type Pagination[T any] struct {
	// Paginator is the collection-partition handle.
	Paginator *paginator.Paginator[T]
	// Page is the resolved page.
	Page *paginator.Page[T]
	// Objects is the resolved page's item sequence.
	Objects []T
	// HasOtherPages reports whether the collection spans more than one
	// page.
	HasOtherPages bool
}

// PaginateQueryset resolves the requested page of objects and stores the
// result in the request's accessories under PaginationKey. It is used by
// the list views but exposed for third-party decorators.
//
// The page token is read from the configured query parameter, defaulting
// to "1". An integer token selects that page; the literal "last" selects
// the final page; anything else, and any out-of-range page, resolves to a
// 404 whose message names the invalid page and the underlying cause.
func PaginateQueryset[T any](ctx viewkit.Context, objects []T, cfg PaginateConfig) (*Pagination[T], error) {
	query := ctx.Request().URL.Query()

	perPage, err := cfg.Size.resolve(query)
	if err != nil {
		return nil, err
	}

	p, err := paginator.New(objects, perPage,
		paginator.WithOrphans(cfg.Orphans),
		paginator.WithAllowEmptyFirstPage(cfg.AllowEmptyFirstPage),
	)
	if err != nil {
		return nil, err
	}

	pageParam := cfg.PageParam
	if pageParam == "" {
		pageParam = DefaultPageParam
	}
	token := query.Get(pageParam)
	if token == "" {
		token = "1"
	}

	number, err := strconv.Atoi(token)
	if err != nil {
		if token != LastPageToken {
			return nil, viewkit.NotFoundf("Page is not %q, nor can it be converted to an int.", LastPageToken)
		}
		number = p.NumPages()
	}

	page, err := p.Page(number)
	if err != nil {
		return nil, viewkit.NotFoundf("Invalid page %d: %s", number, err)
	}

	pagination := &Pagination[T]{
		Paginator:     p,
		Page:          page,
		Objects:       page.Objects,
		HasOtherPages: page.HasOtherPages(),
	}
	ctx.Accessories().Set(PaginationKey, pagination)
	return pagination, nil
}
