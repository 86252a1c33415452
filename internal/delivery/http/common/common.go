package http_common

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// DetailResponse mirrors the provider-style {"detail": ...} body used by the
// favorites remove endpoint.
type DetailResponse struct {
	Detail string `json:"detail"`
}

const DefaultPageSize = 10

// PageResponse is the envelope for paginated list endpoints. Next and
// Previous are page numbers, null at the edges.
type PageResponse struct {
	Count    int  `json:"count"`
	Next     *int `json:"next"`
	Previous *int `json:"previous"`
	Results  any  `json:"results"`
}

// PageFromQuery reads ?page=, defaulting to 1. Bad values count as page 1.
func PageFromQuery(ctx *gin.Context) int {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Paginate slices one page out of items and builds the response envelope.
func Paginate[T any](items []T, page, pageSize int) PageResponse {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	lo := (page - 1) * pageSize
	if lo > len(items) {
		lo = len(items)
	}
	hi := lo + pageSize
	if hi > len(items) {
		hi = len(items)
	}

	resp := PageResponse{
		Count:   len(items),
		Results: items[lo:hi],
	}

	if hi < len(items) {
		next := page + 1
		resp.Next = &next
	}
	if page > 1 && lo > 0 {
		prev := page - 1
		resp.Previous = &prev
	}

	return resp
}
