package migration

import (
	"testing"

	"meetocure-service/internal/app/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestIndexSpecs(t *testing.T) {
	cfg := config.NewInternalConfig()
	specs := IndexSpecs(cfg)

	byName := make(map[string]IndexSpec)
	for _, spec := range specs {
		require.NotNil(t, spec.Model.Options)
		require.NotNil(t, spec.Model.Options.Name)
		byName[spec.Collection+"."+*spec.Model.Options.Name] = spec
	}

	t.Run("active slot index is unique and partial", func(t *testing.T) {
		spec, ok := byName[cfg.MongoDB.AppointmentCollection+".uniq_active_slot"]
		require.True(t, ok)
		require.NotNil(t, spec.Model.Options.Unique)
		assert.True(t, *spec.Model.Options.Unique)
		assert.Equal(t, bson.M{"slotKey": bson.M{"$exists": true}}, spec.Model.Options.PartialFilterExpression)
	})

	t.Run("one onboarding record per doctor", func(t *testing.T) {
		spec, ok := byName[cfg.MongoDB.OnboardingCollection+".uniq_doctor"]
		require.True(t, ok)
		assert.True(t, *spec.Model.Options.Unique)
	})

	t.Run("notifications are listed per recipient newest first", func(t *testing.T) {
		spec, ok := byName[cfg.MongoDB.NotificationCollection+".recipient_created"]
		require.True(t, ok)
		assert.Equal(t, bson.D{{Key: "recipientUserId", Value: 1}, {Key: "createdAt", Value: -1}}, spec.Model.Keys)
	})
}
