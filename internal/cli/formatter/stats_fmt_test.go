package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/planeasy/internal/domain"
	"github.com/alexanderramin/planeasy/internal/query"
	"github.com/alexanderramin/planeasy/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestFormatStats(t *testing.T) {
	plans := []domain.Plan{
		testutil.NewTestPlan("Gym", testutil.WithCategory(domain.CategoryPersonal), testutil.WithCompleted()),
		testutil.NewTestPlan("Exam", testutil.WithCategory(domain.CategoryStudy)),
		testutil.NewTestPlan("Essay", testutil.WithCategory(domain.CategoryStudy)),
	}
	out := FormatStats(query.ComputeStats(plans))

	assert.Contains(t, out, "33%")
	assert.Contains(t, out, "BY CATEGORY")
	assert.Less(t, strings.Index(out, "Study"), strings.Index(out, "Personal"))
}

func TestFormatStats_Empty(t *testing.T) {
	out := FormatStats(query.ComputeStats(nil))
	assert.Contains(t, out, "0%")
	assert.Contains(t, out, "No plans yet")
	assert.NotContains(t, out, "BY CATEGORY")
}

func TestFormatCategories_IncludesKnownAndCustom(t *testing.T) {
	plans := []domain.Plan{
		testutil.NewTestPlan("Run", testutil.WithCategory("Health")),
		testutil.NewTestPlan("Read", testutil.WithCategory(domain.CategoryStudy)),
	}
	out := FormatCategories(query.ComputeStats(plans))

	for _, c := range []string{"Study", "Work", "Personal", "Health"} {
		assert.Contains(t, out, c)
	}
	assert.Less(t, strings.Index(out, "Personal"), strings.Index(out, "Health"))
}

func TestFormatReminders(t *testing.T) {
	assert.Contains(t, FormatReminders(nil, time.UTC), "No pending reminders")

	r := testutil.NewTestReminder("Gym", testutil.WithFireAt(time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)))
	out := FormatReminders([]*domain.Reminder{r}, time.UTC)
	assert.Contains(t, out, "Don't forget: Gym")
	assert.Contains(t, out, "18:00")
}
