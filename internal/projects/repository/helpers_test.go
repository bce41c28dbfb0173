package repository_test

import (
	"testing"
	"time"

	"github.com/americano/projectsync/internal/projects/domain"
	"github.com/stretchr/testify/assert"
)

var baseTime = time.Date(2025, 3, 14, 9, 26, 53, 589793000, time.UTC)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: baseTime}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func assertSameProject(t *testing.T, want, got *domain.Project) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Title, got.Title)
	assert.Equal(t, want.Description, got.Description)
	assert.Equal(t, want.Status, got.Status)
	assert.Equal(t, want.ResponsiblePerson, got.ResponsiblePerson)
	assert.True(t, want.CreatedDate.Equal(got.CreatedDate), "createdDate %s != %s", want.CreatedDate, got.CreatedDate)
	assert.True(t, want.LastModifiedDate.Equal(got.LastModifiedDate), "lastModifiedDate %s != %s", want.LastModifiedDate, got.LastModifiedDate)
}
