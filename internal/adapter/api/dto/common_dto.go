package dto

// ErrorResponse is the error envelope for all endpoints
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// NewErrorResponse creates an error response
func NewErrorResponse(code int, message, details string) ErrorResponse {
	return ErrorResponse{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// ListResponse wraps a collection payload with its total count
type ListResponse struct {
	Data  interface{} `json:"data"`
	Count int         `json:"count"`
}

// NewListResponse creates a list response
func NewListResponse(data interface{}, count int) ListResponse {
	return ListResponse{Data: data, Count: count}
}

// Pagination holds normalized paging parameters
type Pagination struct {
	Page     int
	PageSize int
}

// GetPagination normalizes raw paging values
func GetPagination(page, pageSize int) Pagination {
	if page <= 0 {
		page = 1
	}

	if pageSize <= 0 {
		pageSize = 20
	} else if pageSize > 100 {
		pageSize = 100 // cap page size
	}

	return Pagination{
		Page:     page,
		PageSize: pageSize,
	}
}

// Offset returns the row offset for the page
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}
