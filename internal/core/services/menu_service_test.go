package services

import (
	"testing"

	"garderie-api/internal/adapters/persistence/models"
	"garderie-api/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekMeals() models.WeekMeals {
	return models.WeekMeals{
		Monday:  models.Meal{Breakfast: "Bouillie de mil", Lunch: "Riz sauce arachide", Snack: "Banane"},
		Tuesday: models.Meal{Breakfast: "Pain beurre", Lunch: "Attiéké poisson", Snack: "Yaourt"},
	}
}

func TestMenuLifecycle(t *testing.T) {
	f := newFixture(t)
	svc := NewMenuService(f.repos.Menus, f.clock)

	menu, err := svc.Create(f.ctx, &MenuInput{
		WeekStartDate: "2024-05-13",
		WeekEndDate:   "2024-05-18",
		Meals:         weekMeals(),
	}, f.admin.ID)
	require.NoError(t, err)
	assert.True(t, menu.IsActive)
	assert.Equal(t, "Attiéké poisson", menu.Meals.Data().Tuesday.Lunch)

	current, err := svc.Current(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, menu.ID, current.ID)

	_, err = svc.Create(f.ctx, &MenuInput{WeekStartDate: "2024-05-20", WeekEndDate: "2024-05-13"}, f.admin.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidMenuInterval)

	require.NoError(t, svc.Delete(f.ctx, menu.ID))
	_, err = svc.Current(f.ctx)
	assert.ErrorIs(t, err, domain.ErrNoCurrentMenu)
	assert.ErrorIs(t, svc.Delete(f.ctx, menu.ID), domain.ErrMenuNotFound)
}

func TestDuplicateMenu(t *testing.T) {
	f := newFixture(t)
	svc := NewMenuService(f.repos.Menus, f.clock)

	source, err := svc.Create(f.ctx, &MenuInput{
		WeekStartDate: "2024-05-06",
		WeekEndDate:   "2024-05-11",
		Meals:         weekMeals(),
	}, f.admin.ID)
	require.NoError(t, err)

	copied, err := svc.Duplicate(f.ctx, source.ID, &DuplicateMenuInput{
		WeekStartDate: "2024-05-13",
		WeekEndDate:   "2024-05-18",
	}, f.admin.ID)
	require.NoError(t, err)
	assert.NotEqual(t, source.ID, copied.ID)
	assert.Equal(t, source.Meals.Data(), copied.Meals.Data())
	assert.Equal(t, "2024-05-13", copied.WeekStartDate.Format("2006-01-02"))

	again, err := svc.Get(f.ctx, source.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-06", again.WeekStartDate.Format("2006-01-02"))
	assert.Equal(t, weekMeals(), again.Meals.Data())

	changed := weekMeals()
	changed.Monday = models.Meal{Breakfast: "Pain", Lunch: "Riz gras", Snack: "Mangue"}
	changed.Saturday.Lunch = "Foutou"
	edited, err := svc.Update(f.ctx, copied.ID, &MenuInput{
		WeekStartDate: "2024-05-20",
		WeekEndDate:   "2024-05-25",
		Meals:         changed,
	})
	require.NoError(t, err)
	assert.Equal(t, changed, edited.Meals.Data())

	again, err = svc.Get(f.ctx, source.ID)
	require.NoError(t, err)
	assert.Equal(t, weekMeals(), again.Meals.Data())
	assert.Equal(t, "2024-05-06", again.WeekStartDate.Format("2006-01-02"))
	assert.Equal(t, "2024-05-11", again.WeekEndDate.Format("2006-01-02"))

	_, err = svc.Duplicate(f.ctx, 999, &DuplicateMenuInput{WeekStartDate: "2024-05-13", WeekEndDate: "2024-05-18"}, f.admin.ID)
	assert.ErrorIs(t, err, domain.ErrMenuNotFound)
}
