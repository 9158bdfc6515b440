package services

import (
	"testing"
	"time"

	"garderie-api/internal/core/domain"
	"garderie-api/internal/pkg/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validChild() *CreateChildInput {
	return &CreateChildInput{
		FirstName:   "Awa",
		LastName:    "Traoré",
		DateOfBirth: "2021-09-15",
		Class:       "Maternelle",
		PaymentMode: "Mensuel",
		Parent:      GuardianInput{Name: "Mariam Traoré", Phone: "0102030405", Email: "Mariam@Example.com"},
	}
}

func TestCreateChild(t *testing.T) {
	f := newFixture(t)
	svc := NewChildService(f.repos.Children, f.clock)

	child, err := svc.Create(f.ctx, validChild())
	require.NoError(t, err)
	assert.True(t, child.IsActive)
	assert.Equal(t, "mariam@example.com", child.Parent.Email)
	assert.True(t, child.EnrollmentDate.Equal(testNow))

	tests := []struct {
		name   string
		mutate func(*CreateChildInput)
	}{
		{name: "unknown class", mutate: func(in *CreateChildInput) { in.Class = "CP" }},
		{name: "unknown mode", mutate: func(in *CreateChildInput) { in.PaymentMode = "Annuel" }},
		{name: "missing parent phone", mutate: func(in *CreateChildInput) { in.Parent.Phone = "" }},
		{name: "birth in the future", mutate: func(in *CreateChildInput) { in.DateOfBirth = "2030-01-01" }},
		{name: "bad birth date", mutate: func(in *CreateChildInput) { in.DateOfBirth = "15/09/2021" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validChild()
			tt.mutate(in)
			_, err := svc.Create(f.ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestUpdateAndListChildren(t *testing.T) {
	f := newFixture(t)
	svc := NewChildService(f.repos.Children, f.clock)

	child, err := svc.Create(f.ctx, validChild())
	require.NoError(t, err)
	_, err = svc.Create(f.ctx, &CreateChildInput{
		FirstName: "Koffi", LastName: "Yao", DateOfBirth: "2022-01-10",
		Class: "Crèche", PaymentMode: "Journalier",
		Parent: GuardianInput{Name: "Ama Yao", Phone: "0700000001"},
	})
	require.NoError(t, err)

	inactive := false
	class := "Garderie"
	updated, err := svc.Update(f.ctx, child.ID, &UpdateChildInput{Class: &class, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Garderie", updated.Class)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Awa", updated.FirstName)

	active := true
	out, err := svc.List(f.ctx, &ListChildrenInput{IsActive: &active, Page: pagination.New(1, 10)})
	require.NoError(t, err)
	assert.EqualValues(t, 1, out.Total)
	assert.Equal(t, "Koffi", out.Children[0].FirstName)

	out, err = svc.List(f.ctx, &ListChildrenInput{Search: "traoré", Page: pagination.New(1, 10)})
	require.NoError(t, err)
	assert.EqualValues(t, 1, out.Total)

	require.NoError(t, svc.Delete(f.ctx, child.ID))
	_, err = svc.Get(f.ctx, child.ID)
	assert.ErrorIs(t, err, domain.ErrChildNotFound)
	assert.ErrorIs(t, svc.Delete(f.ctx, child.ID), domain.ErrChildNotFound)
}

func TestBirthDateKeepsCalendarDay(t *testing.T) {
	f := newFixture(t)
	f.clock = FixedClock(testNow.In(time.FixedZone("UTC+1", 3600)))
	svc := NewChildService(f.repos.Children, f.clock)

	child, err := svc.Create(f.ctx, validChild())
	require.NoError(t, err)

	v, err := child.DateOfBirth.Value()
	require.NoError(t, err)
	assert.Equal(t, "2021-09-15", v.(time.Time).In(time.UTC).Format("2006-01-02"))
}
