package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/complainthub/complaint-service/internal/domain"
	"github.com/complainthub/complaint-service/internal/events"
	"github.com/complainthub/complaint-service/internal/repository"
	apperrors "github.com/complainthub/complaint-service/pkg/util/errorutil"
)

// ComplaintService coordinates complaint intake, querying and lifecycle.
type ComplaintService struct {
	complaints repository.ComplaintRepository
	dispatcher events.Dispatcher
	analytics  AnalyticsCache
}

// ComplaintDependencies bundles collaborators for the complaint service.
type ComplaintDependencies struct {
	ComplaintRepo  repository.ComplaintRepository
	Dispatcher     events.Dispatcher
	AnalyticsCache AnalyticsCache
}

// ComplaintDraft describes complaint creation payload.
type ComplaintDraft struct {
	Title         string
	Description   string
	Category      domain.ComplaintCategory
	Priority      domain.ComplaintPriority
	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	AssignedTo    *string
}

// ComplaintPatch describes a partial update. Nil members are untouched.
type ComplaintPatch struct {
	Title         *string
	Description   *string
	Category      *domain.ComplaintCategory
	Priority      *domain.ComplaintPriority
	Status        *domain.ComplaintStatus
	CustomerName  *string
	CustomerEmail *string
	CustomerPhone *string
	AssignedTo    *string
	Notes         *[]string
}

// ListQuery describes list filters, sorting and pagination.
type ListQuery struct {
	Status    *domain.ComplaintStatus
	Category  *domain.ComplaintCategory
	Priority  *domain.ComplaintPriority
	Search    *string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// Pagination carries page math for list responses.
type Pagination struct {
	Current int `json:"current"`
	Total   int `json:"total"`
	Pages   int `json:"pages"`
	Limit   int `json:"limit"`
}

// ComplaintPage is a window of the filtered complaint collection.
type ComplaintPage struct {
	Items      []domain.Complaint
	Pagination Pagination
}

// AnalyticsSummary aggregates counts by status and priority.
type AnalyticsSummary struct {
	Total      int `json:"total"`
	Open       int `json:"open"`
	InProgress int `json:"inProgress"`
	Resolved   int `json:"resolved"`
	Critical   int `json:"critical"`
	High       int `json:"high"`
	Medium     int `json:"medium"`
	Low        int `json:"low"`
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	return &ComplaintService{
		complaints: deps.ComplaintRepo,
		dispatcher: deps.Dispatcher,
		analytics:  deps.AnalyticsCache,
	}
}

// Create validates a draft, applies defaults and persists a new complaint.
func (s *ComplaintService) Create(ctx context.Context, draft ComplaintDraft) (*domain.Complaint, error) {
	complaint := &domain.Complaint{
		ID:            uuid.NewString(),
		Title:         strings.TrimSpace(draft.Title),
		Description:   strings.TrimSpace(draft.Description),
		Category:      draft.Category,
		Priority:      draft.Priority,
		Status:        domain.ComplaintStatusOpen,
		CustomerName:  strings.TrimSpace(draft.CustomerName),
		CustomerEmail: strings.ToLower(strings.TrimSpace(draft.CustomerEmail)),
		CustomerPhone: trimOptional(draft.CustomerPhone),
		AssignedTo:    trimOptional(draft.AssignedTo),
		Notes:         []string{},
	}

	if complaint.Category == "" {
		complaint.Category = domain.ComplaintCategoryOther
	}
	if complaint.Priority == "" {
		complaint.Priority = domain.ComplaintPriorityMedium
	}

	if err := validateComplaint(complaint); err != nil {
		return nil, err
	}

	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	s.invalidateAnalytics(ctx)

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintCreated,
		ComplaintID: complaint.ID,
		Payload: events.ComplaintCreatedPayload{
			Title:         complaint.Title,
			Description:   complaint.Description,
			Category:      complaint.Category,
			Priority:      complaint.Priority,
			Status:        complaint.Status,
			CustomerName:  complaint.CustomerName,
			CustomerEmail: complaint.CustomerEmail,
		},
	})
	return complaint, nil
}

// Get fetches a single complaint.
func (s *ComplaintService) Get(ctx context.Context, id string) (*domain.Complaint, error) {
	complaint, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"id": id})
		}
		return nil, apperrors.ToDomainError(err)
	}
	return complaint, nil
}

// List executes a filtered, sorted, paginated query. A page beyond range
// yields an empty item slice, never an error.
func (s *ComplaintService) List(ctx context.Context, query ListQuery) (*ComplaintPage, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit <= 0 {
		limit = 10
	}

	filter := repository.ComplaintFilter{
		Status:    query.Status,
		Category:  query.Category,
		Priority:  query.Priority,
		Search:    query.Search,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}

	items, total, err := s.complaints.List(ctx, filter)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	if items == nil {
		items = []domain.Complaint{}
	}

	return &ComplaintPage{
		Items: items,
		Pagination: Pagination{
			Current: page,
			Total:   total,
			Pages:   (total + limit - 1) / limit,
			Limit:   limit,
		},
	}, nil
}

// Update applies a partial patch, re-validating only touched fields.
// Setting status to Resolved stamps resolvedAt in the same write; the stamp
// is never cleared by later transitions.
func (s *ComplaintService) Update(ctx context.Context, id string, patch ComplaintPatch) (*domain.Complaint, error) {
	complaint, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	oldStatus := complaint.Status

	if patch.Title != nil {
		complaint.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		complaint.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Category != nil {
		complaint.Category = *patch.Category
	}
	if patch.Priority != nil {
		complaint.Priority = *patch.Priority
	}
	if patch.Status != nil {
		complaint.Status = *patch.Status
	}
	if patch.CustomerName != nil {
		complaint.CustomerName = strings.TrimSpace(*patch.CustomerName)
	}
	if patch.CustomerEmail != nil {
		complaint.CustomerEmail = strings.ToLower(strings.TrimSpace(*patch.CustomerEmail))
	}
	if patch.CustomerPhone != nil {
		complaint.CustomerPhone = trimOptional(patch.CustomerPhone)
	}
	if patch.AssignedTo != nil {
		complaint.AssignedTo = trimOptional(patch.AssignedTo)
	}
	if patch.Notes != nil {
		complaint.Notes = *patch.Notes
	}

	if err := validateComplaint(complaint); err != nil {
		return nil, err
	}

	if patch.Status != nil && *patch.Status == domain.ComplaintStatusResolved {
		now := time.Now()
		complaint.ResolvedAt = &now
	}

	if err := s.complaints.Update(ctx, complaint); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"id": id})
		}
		return nil, apperrors.ToDomainError(err)
	}
	s.invalidateAnalytics(ctx)

	if complaint.Status != oldStatus {
		s.publishEvent(ctx, events.Event{
			Type:        events.EventComplaintStatusChanged,
			ComplaintID: complaint.ID,
			Payload: events.ComplaintStatusChangedPayload{
				OldStatus:     oldStatus,
				NewStatus:     complaint.Status,
				Title:         complaint.Title,
				CustomerName:  complaint.CustomerName,
				CustomerEmail: complaint.CustomerEmail,
			},
		})
	}
	return complaint, nil
}

// AddNote appends a single note without requiring the caller to resend the
// full notes array.
func (s *ComplaintService) AddNote(ctx context.Context, id, note string) (*domain.Complaint, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return nil, apperrors.NewValidationError("note is required", map[string]any{"note": "note is required"})
	}
	complaint, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	complaint.Notes = append(complaint.Notes, note)
	if err := s.complaints.Update(ctx, complaint); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"id": id})
		}
		return nil, apperrors.ToDomainError(err)
	}
	return complaint, nil
}

// Delete removes a complaint. Repeated deletes after the first report NotFound.
func (s *ComplaintService) Delete(ctx context.Context, id string) error {
	if err := s.complaints.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("complaint", map[string]any{"id": id})
		}
		return apperrors.ToDomainError(err)
	}
	s.invalidateAnalytics(ctx)
	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintDeleted,
		ComplaintID: id,
	})
	return nil
}

// Analytics returns aggregate counts, served from cache when available.
func (s *ComplaintService) Analytics(ctx context.Context) (*AnalyticsSummary, error) {
	if s.analytics != nil {
		if summary, ok := s.analytics.Get(ctx); ok {
			return summary, nil
		}
	}

	byStatus, err := s.complaints.CountByStatus(ctx)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	byPriority, err := s.complaints.CountByPriority(ctx)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}

	summary := &AnalyticsSummary{
		Open:       byStatus[domain.ComplaintStatusOpen],
		InProgress: byStatus[domain.ComplaintStatusInProgress],
		Resolved:   byStatus[domain.ComplaintStatusResolved],
		Critical:   byPriority[domain.ComplaintPriorityCritical],
		High:       byPriority[domain.ComplaintPriorityHigh],
		Medium:     byPriority[domain.ComplaintPriorityMedium],
		Low:        byPriority[domain.ComplaintPriorityLow],
	}
	for _, count := range byStatus {
		summary.Total += count
	}

	if s.analytics != nil {
		s.analytics.Set(ctx, summary)
	}
	return summary, nil
}

func (s *ComplaintService) invalidateAnalytics(ctx context.Context) {
	if s.analytics != nil {
		s.analytics.Invalidate(ctx)
	}
}

func (s *ComplaintService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func trimOptional(val *string) *string {
	if val == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*val)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// validateComplaint checks the full record against field constraints. It runs
// before any write so a failed update leaves the stored row untouched.
// Length caps count characters, not bytes.
func validateComplaint(c *domain.Complaint) error {
	details := map[string]any{}

	if c.Title == "" {
		details["title"] = "Title is required"
	} else if utf8.RuneCountInString(c.Title) > domain.MaxTitleLen {
		details["title"] = fmt.Sprintf("Title cannot exceed %d characters", domain.MaxTitleLen)
	}

	if c.Description == "" {
		details["description"] = "Description is required"
	} else if utf8.RuneCountInString(c.Description) > domain.MaxDescriptionLen {
		details["description"] = fmt.Sprintf("Description cannot exceed %d characters", domain.MaxDescriptionLen)
	}

	if c.CustomerName == "" {
		details["customerName"] = "Customer name is required"
	} else if utf8.RuneCountInString(c.CustomerName) > domain.MaxCustomerNameLen {
		details["customerName"] = fmt.Sprintf("Name cannot exceed %d characters", domain.MaxCustomerNameLen)
	}

	if c.CustomerEmail == "" {
		details["customerEmail"] = "Customer email is required"
	} else if !domain.ValidEmail(c.CustomerEmail) {
		details["customerEmail"] = "Please enter a valid email"
	}

	if c.CustomerPhone != nil && !domain.ValidPhone(*c.CustomerPhone) {
		details["customerPhone"] = "Please enter a valid phone number"
	}

	if !domain.ValidCategory(c.Category) {
		details["category"] = fmt.Sprintf("`%s` is not a valid category", c.Category)
	}
	if !domain.ValidPriority(c.Priority) {
		details["priority"] = fmt.Sprintf("`%s` is not a valid priority", c.Priority)
	}
	if !domain.ValidStatus(c.Status) {
		details["status"] = fmt.Sprintf("`%s` is not a valid status", c.Status)
	}

	if len(details) > 0 {
		// fixed field order keeps the joined message stable
		messages := make([]string, 0, len(details))
		for _, field := range []string{
			"title", "description", "customerName", "customerEmail",
			"customerPhone", "category", "priority", "status",
		} {
			if msg, ok := details[field]; ok {
				messages = append(messages, msg.(string))
			}
		}
		return apperrors.NewValidationError(strings.Join(messages, ", "), details)
	}
	return nil
}
