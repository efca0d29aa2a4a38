package domain

import (
	"regexp"
	"time"
)

// ComplaintStatus enumerates lifecycle states for complaints.
type ComplaintStatus string

const (
	ComplaintStatusOpen       ComplaintStatus = "Open"
	ComplaintStatusInProgress ComplaintStatus = "In Progress"
	ComplaintStatusResolved   ComplaintStatus = "Resolved"
	ComplaintStatusClosed     ComplaintStatus = "Closed"
)

// ComplaintCategory enumerates complaint topics.
type ComplaintCategory string

const (
	ComplaintCategoryTechnical ComplaintCategory = "Technical"
	ComplaintCategoryBilling   ComplaintCategory = "Billing"
	ComplaintCategoryService   ComplaintCategory = "Service"
	ComplaintCategoryProduct   ComplaintCategory = "Product"
	ComplaintCategoryOther     ComplaintCategory = "Other"
)

// ComplaintPriority enumerates urgency.
type ComplaintPriority string

const (
	ComplaintPriorityLow      ComplaintPriority = "Low"
	ComplaintPriorityMedium   ComplaintPriority = "Medium"
	ComplaintPriorityHigh     ComplaintPriority = "High"
	ComplaintPriorityCritical ComplaintPriority = "Critical"
)

// Field length bounds enforced on create and update.
const (
	MaxTitleLen        = 100
	MaxDescriptionLen  = 1000
	MaxCustomerNameLen = 50
)

var (
	emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9\s\-()]{7,20}$`)
)

// Complaint is the aggregate for customer-reported issues.
type Complaint struct {
	ID            string
	Title         string
	Description   string
	Category      ComplaintCategory
	Priority      ComplaintPriority
	Status        ComplaintStatus
	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	AssignedTo    *string
	Notes         []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ResolvedAt    *time.Time
}

// ValidStatus reports whether s is a recognized status value.
func ValidStatus(s ComplaintStatus) bool {
	switch s {
	case ComplaintStatusOpen, ComplaintStatusInProgress, ComplaintStatusResolved, ComplaintStatusClosed:
		return true
	}
	return false
}

// ValidCategory reports whether c is a recognized category value.
func ValidCategory(c ComplaintCategory) bool {
	switch c {
	case ComplaintCategoryTechnical, ComplaintCategoryBilling, ComplaintCategoryService,
		ComplaintCategoryProduct, ComplaintCategoryOther:
		return true
	}
	return false
}

// ValidPriority reports whether p is a recognized priority value.
func ValidPriority(p ComplaintPriority) bool {
	switch p {
	case ComplaintPriorityLow, ComplaintPriorityMedium, ComplaintPriorityHigh, ComplaintPriorityCritical:
		return true
	}
	return false
}

// ValidEmail reports whether addr matches the accepted email shape.
func ValidEmail(addr string) bool {
	return emailPattern.MatchString(addr)
}

// ValidPhone reports whether num matches the accepted phone shape.
func ValidPhone(num string) bool {
	return phonePattern.MatchString(num)
}
