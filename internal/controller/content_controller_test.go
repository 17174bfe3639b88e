package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"devri_backend/internal/model"
)

func category(id uint, name, catType string, parentID *uint) model.ServiceCategory {
	return model.ServiceCategory{
		Model:    gorm.Model{ID: id},
		Name:     name,
		Slug:     name,
		Type:     catType,
		ParentID: parentID,
	}
}

func TestBuildCategoryTree(t *testing.T) {
	restaurantes := category(1, "restaurantes", model.CategoryTypePrimary, nil)
	salud := category(2, "salud", model.CategoryTypePrimary, nil)
	p1 := restaurantes.ID
	cafeterias := category(3, "cafeterias", model.CategoryTypeSecondary, &p1)
	taquerias := category(4, "taquerias", model.CategoryTypeSecondary, &p1)

	tree := BuildCategoryTree([]model.ServiceCategory{restaurantes, salud, cafeterias, taquerias})

	require.Len(t, tree, 2)
	assert.Equal(t, "restaurantes", tree[0].Name)
	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "cafeterias", tree[0].Children[0].Name)
	assert.Equal(t, "taquerias", tree[0].Children[1].Name)
	assert.Empty(t, tree[1].Children)
}

func TestBuildCategoryTreeIgnoresOrphanSecondaries(t *testing.T) {
	missing := uint(99)
	orphan := category(5, "huerfana", model.CategoryTypeSecondary, &missing)
	detached := category(6, "suelta", model.CategoryTypeSecondary, nil)

	tree := BuildCategoryTree([]model.ServiceCategory{orphan, detached})
	assert.Empty(t, tree)
}

func TestBuildCategoryTreeEmptyInput(t *testing.T) {
	tree := BuildCategoryTree(nil)
	assert.NotNil(t, tree)
	assert.Empty(t, tree)
}
