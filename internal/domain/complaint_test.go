package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, s := range []ComplaintStatus{
		ComplaintStatusOpen,
		ComplaintStatusInProgress,
		ComplaintStatusResolved,
		ComplaintStatusClosed,
	} {
		assert.True(t, ValidStatus(s), string(s))
	}
	assert.False(t, ValidStatus("open"), "statuses are case sensitive")
	assert.False(t, ValidStatus("InProgress"), "In Progress carries a space")
	assert.False(t, ValidStatus(""))
}

func TestValidCategoryAndPriority(t *testing.T) {
	for _, c := range []ComplaintCategory{
		ComplaintCategoryTechnical,
		ComplaintCategoryBilling,
		ComplaintCategoryService,
		ComplaintCategoryProduct,
		ComplaintCategoryOther,
	} {
		assert.True(t, ValidCategory(c), string(c))
	}
	assert.False(t, ValidCategory("Gossip"))

	for _, p := range []ComplaintPriority{
		ComplaintPriorityLow,
		ComplaintPriorityMedium,
		ComplaintPriorityHigh,
		ComplaintPriorityCritical,
	} {
		assert.True(t, ValidPriority(p), string(p))
	}
	assert.False(t, ValidPriority("Urgent"))
}

func TestValidEmail(t *testing.T) {
	valid := []string{
		"a@x.com",
		"first.last@example.org",
		"user-name@mail.example.co",
	}
	for _, email := range valid {
		assert.True(t, ValidEmail(email), email)
	}

	invalid := []string{
		"",
		"plain",
		"@example.com",
		"user@",
		"user@example",
		"user @example.com",
	}
	for _, email := range invalid {
		assert.False(t, ValidEmail(email), email)
	}
}

func TestValidPhone(t *testing.T) {
	valid := []string{
		"+1 555 123 4567",
		"(020) 7946-0958",
		"5551234",
	}
	for _, phone := range valid {
		assert.True(t, ValidPhone(phone), phone)
	}

	invalid := []string{
		"abc",
		"123",          // too short
		"+1 555 ext 4", // letters
	}
	for _, phone := range invalid {
		assert.False(t, ValidPhone(phone), phone)
	}
}
