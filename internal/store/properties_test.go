package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dhruv/estate-hub/backend/internal/models"
)

func TestPatchDocument_EmptyPatch(t *testing.T) {
	set := patchDocument(models.PropertyPatch{})
	assert.Empty(t, set)
}

func TestPatchDocument_OnlyPresentFields(t *testing.T) {
	title := "Renovated house"
	price := 120000.0
	patch := models.PropertyPatch{Title: &title, Price: &price}

	set := patchDocument(patch)
	assert.Equal(t, 2, len(set))
	assert.Equal(t, "Renovated house", set["title"])
	assert.Equal(t, 120000.0, set["price"])
	assert.NotContains(t, set, "status")
	assert.NotContains(t, set, "images")
}

func TestPatchDocument_ImagesReplaceWholesale(t *testing.T) {
	images := []string{"https://cdn.example/z.jpg"}
	set := patchDocument(models.PropertyPatch{Images: &images})
	assert.Equal(t, images, set["images"])
}

func TestPatchDocument_FalseAndZeroStillApply(t *testing.T) {
	// A set-but-zero field is a real update, not an omission.
	featured := false
	price := 0.0
	set := patchDocument(models.PropertyPatch{Featured: &featured, Price: &price})
	assert.Equal(t, false, set["featured"])
	assert.Equal(t, 0.0, set["price"])
}

func TestPatchDocument_StatusTransitionUnrestricted(t *testing.T) {
	for _, status := range []models.Status{models.StatusSold, models.StatusPending, models.StatusAvailable} {
		s := status
		set := patchDocument(models.PropertyPatch{Status: &s})
		assert.Equal(t, s, set["status"])
	}
}

func TestNewStores_NilSafeWithoutConnection(t *testing.T) {
	// A Client whose dial never succeeded still constructs stores; the
	// availability gate keeps their methods from running.
	c := &Client{}
	assert.NotNil(t, NewUserStore(c))
	assert.NotNil(t, NewPropertyStore(c))
	assert.False(t, c.Connected())
	assert.NoError(t, c.Close(nil))
}
