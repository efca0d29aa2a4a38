package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/complainthub/complaint-service/internal/api/dto"
	"github.com/complainthub/complaint-service/internal/domain"
	"github.com/complainthub/complaint-service/internal/service"
	apperrors "github.com/complainthub/complaint-service/pkg/util/errorutil"
)

// ComplaintsHandler manages complaint endpoints.
type ComplaintsHandler struct {
	service *service.ComplaintService
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaintService *service.ComplaintService) *ComplaintsHandler {
	return &ComplaintsHandler{service: complaintService}
}

// CreateComplaint POST /complaints.
func (h *ComplaintsHandler) CreateComplaint(c *fiber.Ctx) error {
	var req dto.CreateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	draft := service.ComplaintDraft{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Priority:      req.Priority,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		AssignedTo:    req.AssignedTo,
	}
	complaint, err := h.service.Create(c.UserContext(), draft)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    complaintResponse(complaint),
		"message": "Complaint created successfully",
	})
}

// ListComplaints GET /complaints.
func (h *ComplaintsHandler) ListComplaints(c *fiber.Ctx) error {
	query := parseListQuery(c)
	page, err := h.service.List(c.UserContext(), query)
	if err != nil {
		return err
	}

	items := make([]dto.ComplaintResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, complaintResponse(&page.Items[i]))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data": dto.ComplaintListResponse{
			Complaints: items,
			Pagination: dto.PaginationResponse{
				Current: page.Pagination.Current,
				Total:   page.Pagination.Total,
				Pages:   page.Pagination.Pages,
				Limit:   page.Pagination.Limit,
			},
		},
	})
}

// GetComplaint GET /complaints/:id.
func (h *ComplaintsHandler) GetComplaint(c *fiber.Ctx) error {
	complaint, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    complaintResponse(complaint),
	})
}

// UpdateComplaint PUT /complaints/:id.
func (h *ComplaintsHandler) UpdateComplaint(c *fiber.Ctx) error {
	var req dto.UpdateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	patch := service.ComplaintPatch{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Priority:      req.Priority,
		Status:        req.Status,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		AssignedTo:    req.AssignedTo,
		Notes:         req.Notes,
	}
	complaint, err := h.service.Update(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    complaintResponse(complaint),
		"message": "Complaint updated successfully",
	})
}

// DeleteComplaint DELETE /complaints/:id.
func (h *ComplaintsHandler) DeleteComplaint(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Complaint deleted successfully",
	})
}

// AddNote POST /complaints/:id/notes.
func (h *ComplaintsHandler) AddNote(c *fiber.Ctx) error {
	var req dto.AddNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	complaint, err := h.service.AddNote(c.UserContext(), c.Params("id"), req.Note)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    complaintResponse(complaint),
		"message": "Note added successfully",
	})
}

// Analytics GET /complaints/analytics.
func (h *ComplaintsHandler) Analytics(c *fiber.Ctx) error {
	summary, err := h.service.Analytics(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    summary,
	})
}

func parseListQuery(c *fiber.Ctx) service.ListQuery {
	query := service.ListQuery{
		SortBy:    c.Query("sortBy", "createdAt"),
		SortOrder: c.Query("sortOrder", "desc"),
		Page:      parseInt(c.Query("page"), 1),
		Limit:     parseInt(c.Query("limit"), 10),
	}
	if val := c.Query("status"); val != "" {
		status := domain.ComplaintStatus(val)
		query.Status = &status
	}
	if val := c.Query("category"); val != "" {
		category := domain.ComplaintCategory(val)
		query.Category = &category
	}
	if val := c.Query("priority"); val != "" {
		priority := domain.ComplaintPriority(val)
		query.Priority = &priority
	}
	if val := c.Query("search"); val != "" {
		query.Search = &val
	}
	return query
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func complaintResponse(complaint *domain.Complaint) dto.ComplaintResponse {
	notes := complaint.Notes
	if notes == nil {
		notes = []string{}
	}
	return dto.ComplaintResponse{
		ID:            complaint.ID,
		Title:         complaint.Title,
		Description:   complaint.Description,
		Category:      complaint.Category,
		Priority:      complaint.Priority,
		Status:        complaint.Status,
		CustomerName:  complaint.CustomerName,
		CustomerEmail: complaint.CustomerEmail,
		CustomerPhone: complaint.CustomerPhone,
		AssignedTo:    complaint.AssignedTo,
		Notes:         notes,
		CreatedAt:     complaint.CreatedAt,
		UpdatedAt:     complaint.UpdatedAt,
		ResolvedAt:    complaint.ResolvedAt,
	}
}
