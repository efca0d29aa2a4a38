package dto

import (
	"time"

	"github.com/complainthub/complaint-service/internal/domain"
)

// CreateComplaintRequest payload.
type CreateComplaintRequest struct {
	Title         string                   `json:"title"`
	Description   string                   `json:"description"`
	Category      domain.ComplaintCategory `json:"category"`
	Priority      domain.ComplaintPriority `json:"priority"`
	CustomerName  string                   `json:"customerName"`
	CustomerEmail string                   `json:"customerEmail"`
	CustomerPhone *string                  `json:"customerPhone"`
	AssignedTo    *string                  `json:"assignedTo"`
}

// UpdateComplaintRequest is a partial patch; absent fields stay untouched.
type UpdateComplaintRequest struct {
	Title         *string                   `json:"title"`
	Description   *string                   `json:"description"`
	Category      *domain.ComplaintCategory `json:"category"`
	Priority      *domain.ComplaintPriority `json:"priority"`
	Status        *domain.ComplaintStatus   `json:"status"`
	CustomerName  *string                   `json:"customerName"`
	CustomerEmail *string                   `json:"customerEmail"`
	CustomerPhone *string                   `json:"customerPhone"`
	AssignedTo    *string                   `json:"assignedTo"`
	Notes         *[]string                 `json:"notes"`
}

// AddNoteRequest payload.
type AddNoteRequest struct {
	Note string `json:"note"`
}

// ComplaintResponse is the wire shape of a complaint.
type ComplaintResponse struct {
	ID            string                   `json:"id"`
	Title         string                   `json:"title"`
	Description   string                   `json:"description"`
	Category      domain.ComplaintCategory `json:"category"`
	Priority      domain.ComplaintPriority `json:"priority"`
	Status        domain.ComplaintStatus   `json:"status"`
	CustomerName  string                   `json:"customerName"`
	CustomerEmail string                   `json:"customerEmail"`
	CustomerPhone *string                  `json:"customerPhone,omitempty"`
	AssignedTo    *string                  `json:"assignedTo,omitempty"`
	Notes         []string                 `json:"notes"`
	CreatedAt     time.Time                `json:"createdAt"`
	UpdatedAt     time.Time                `json:"updatedAt"`
	ResolvedAt    *time.Time               `json:"resolvedAt,omitempty"`
}

// PaginationResponse carries page math for list responses.
type PaginationResponse struct {
	Current int `json:"current"`
	Total   int `json:"total"`
	Pages   int `json:"pages"`
	Limit   int `json:"limit"`
}

// ComplaintListResponse is the list envelope payload.
type ComplaintListResponse struct {
	Complaints []ComplaintResponse `json:"complaints"`
	Pagination PaginationResponse  `json:"pagination"`
}
