package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/gedcheck/internal/domain/entities"
	"github.com/ersonp/gedcheck/internal/domain/ports"
)

var _ ports.Repository = (*Repository)(nil)

func TestNewRepository_IndexesDuplicates(t *testing.T) {
	first := &entities.Individual{ID: "I1", Line: 1}
	second := &entities.Individual{ID: "I2", Line: 5}
	third := &entities.Individual{ID: "I1", Line: 9}

	repo := NewRepository(&entities.RecordSet{
		Individuals: []*entities.Individual{first, second, third},
		Families: []*entities.Family{
			{ID: "F2", Line: 12},
			{ID: "F1", Line: 15},
			{ID: "F2", Line: 20},
		},
	})

	assert.Len(t, repo.Individuals(), 3)
	assert.Len(t, repo.Families(), 3)
	assert.Equal(t, []string{"I1", "I2"}, repo.IndividualIDs())
	assert.Equal(t, []string{"F2", "F1"}, repo.FamilyIDs())

	assert.Equal(t, []*entities.Individual{first, third}, repo.IndividualsByID("I1"))
	assert.Len(t, repo.FamiliesByID("F2"), 2)
	assert.Equal(t, 20, repo.FamiliesByID("F2")[1].Line)
	assert.Empty(t, repo.IndividualsByID("I9"))
	assert.Empty(t, repo.FamiliesByID("F9"))
}

func TestNewRepository_ResolvesSpouses(t *testing.T) {
	husband := &entities.Individual{ID: "I1", Line: 1}
	wifeA := &entities.Individual{ID: "I2", Line: 2}
	wifeB := &entities.Individual{ID: "I2", Line: 3}

	fam := &entities.Family{ID: "F1", Line: 4, Husband: &entities.Link{ID: "I1", Line: 5}, Wife: &entities.Link{ID: "I2", Line: 6}}
	orphan := &entities.Family{ID: "F2", Line: 7, Husband: &entities.Link{ID: "I9", Line: 8}}

	NewRepository(&entities.RecordSet{
		Individuals: []*entities.Individual{husband, wifeA, wifeB},
		Families:    []*entities.Family{fam, orphan},
	})

	assert.Equal(t, []*entities.Individual{husband}, fam.Husbands)
	assert.Equal(t, []*entities.Individual{wifeA, wifeB}, fam.Wives)
	assert.Empty(t, orphan.Husbands)
	assert.Empty(t, orphan.Wives)
}

func TestNewRepository_NilInput(t *testing.T) {
	t.Run("nil set", func(t *testing.T) {
		repo := NewRepository(nil)
		assert.Empty(t, repo.Individuals())
		assert.Empty(t, repo.IndividualIDs())
		assert.Empty(t, repo.FamiliesByID("F1"))
	})

	t.Run("nil records stay listed but unindexed", func(t *testing.T) {
		repo := NewRepository(&entities.RecordSet{
			Individuals: []*entities.Individual{nil, {ID: "I1", Line: 2}},
			Families:    []*entities.Family{nil},
		})
		require.Len(t, repo.Individuals(), 2)
		assert.Nil(t, repo.Individuals()[0])
		assert.Equal(t, []string{"I1"}, repo.IndividualIDs())
		assert.Len(t, repo.Families(), 1)
		assert.Empty(t, repo.FamilyIDs())
	})
}
