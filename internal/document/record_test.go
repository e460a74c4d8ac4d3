package document

import (
	"testing"
	"time"

	"github.com/lexdesk/lexdesk/backend/go-services/internal/models"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFromModelStampsTimestamps(t *testing.T) {
	c := models.NewCase()
	title, client := "Merger review", "abc123"
	c.Title = &title
	c.ClientID = &client
	c.OpenedAt = &models.DateTime{Time: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	c.ApplyDefaults()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rec, err := FromModel(c, now)
	require.NoError(t, err)
	require.Equal(t, "Merger review", rec["title"])
	require.Equal(t, "open", rec["status"])
	require.Nil(t, rec["description"])
	require.Equal(t, primitive.NewDateTimeFromTime(c.OpenedAt.Time), rec["opened_at"])
	require.Nil(t, rec["closed_at"])
	require.Equal(t, primitive.NewDateTimeFromTime(now), rec[FieldCreatedAt])
	require.Equal(t, rec[FieldCreatedAt], rec[FieldUpdatedAt])
	require.Len(t, rec["tags"], 0)
	require.NotNil(t, rec["tags"])
}

func TestPresentExposesID(t *testing.T) {
	oid := primitive.NewObjectID()
	rec := Record{FieldID: oid, "name": "Acme Corp"}

	out := Present(rec)
	require.Equal(t, oid.Hex(), out["id"])
	require.Equal(t, "Acme Corp", out["name"])
	_, hasRaw := out[FieldID]
	require.False(t, hasRaw)
	// source record untouched
	require.Equal(t, oid, rec[FieldID])
}
