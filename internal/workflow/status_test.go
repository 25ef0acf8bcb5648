package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("waitlisted", EntityCollege)
	require.NoError(t, err)
	assert.Equal(t, StatusWaitlisted, s)

	_, err = ParseStatus("waitlisted", EntityScholarship)
	assert.Error(t, err, "waitlisted is not a scholarship status")

	_, err = ParseStatus("", EntityCollege)
	assert.Error(t, err)
}

func TestParseEntityType(t *testing.T) {
	for _, raw := range []string{"college", "scholarship"} {
		typ, err := ParseEntityType(raw)
		require.NoError(t, err)
		assert.Equal(t, EntityType(raw), typ)
	}
	_, err := ParseEntityType("institution")
	assert.Error(t, err)
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusResearching, InitialStatus(EntityCollege))
	assert.Equal(t, StatusInterested, InitialStatus(EntityScholarship))
}

func TestStatuses_returnsCopy(t *testing.T) {
	first := Statuses(EntityCollege)
	first[0] = Status("tampered")
	assert.Equal(t, StatusResearching, Statuses(EntityCollege)[0])
}

func TestInfoFor(t *testing.T) {
	assert.Equal(t, "In Progress", InfoFor(StatusInProgress).Label)
	assert.Equal(t, "success", InfoFor(StatusEnrolled).Category)

	// Unknown statuses fall back instead of blowing up a render.
	info := InfoFor(Status("mystery"))
	assert.Equal(t, "mystery", info.Label)
	assert.Equal(t, "muted", info.Category)
}
