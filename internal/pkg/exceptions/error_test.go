package exceptions

import (
	"context"
	"errors"
	"meetocure-service/internal/pkg/constvars"
	"reflect"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type intake struct {
	Name   string `json:"name" validate:"required"`
	Age    int    `json:"age" validate:"gte=1,lte=120"`
	Gender string `json:"gender" validate:"oneof=male female other"`
}

func newTestValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	})
	return v
}

func TestBuildNewCustomError(t *testing.T) {
	t.Run("derives kind from status", func(t *testing.T) {
		err := ErrMongoDBFindDocument(errors.New("connection reset"))
		assert.Equal(t, constvars.StatusInternalServerError, err.StatusCode)
		assert.Equal(t, KindInternal, err.Kind)
		assert.Contains(t, err.DevMessage, "connection reset")
		require.Len(t, err.Locations, 1)
		assert.Contains(t, err.Locations[0].FunctionName, "TestBuildNewCustomError")
	})

	t.Run("keeps an existing custom error and appends the call site", func(t *testing.T) {
		inner := ErrSlotConflict(nil, "D1", "2025-03-10", "10:30 AM")
		outer := ErrServerProcess(inner)
		assert.Same(t, inner, outer)
		assert.Equal(t, KindSlotConflict, outer.Kind)
		assert.Len(t, outer.Locations, 2)
	})

	t.Run("deadline overrides a wrapped repository error", func(t *testing.T) {
		repoErr := ErrMongoDBFindDocument(context.DeadlineExceeded)
		err := ErrServerDeadlineExceeded(repoErr)
		assert.Equal(t, constvars.StatusGatewayTimeout, err.StatusCode)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, constvars.StatusInternalServerError, repoErr.StatusCode)
	})

	t.Run("unwraps to the cause", func(t *testing.T) {
		cause := errors.New("boom")
		err := ErrRedisGet(cause)
		assert.ErrorIs(t, err, cause)
	})
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"slot unavailable", ErrSlotUnavailable(nil, "D1", "2025-03-10", "9:00 AM"), KindSlotUnavailable},
		{"illegal transition", ErrIllegalTransition(nil, constvars.ErrClientAppointmentNotPending, "accepted", "accepted"), KindIllegalTransition},
		{"not found", ErrAppointmentNotFound(nil, "A1"), KindNotFound},
		{"authorization", ErrActorNotAuthorized(nil, "D2", "accept"), KindAuthorization},
		{"delivery", ErrRealtimeNoSubscriber(nil, "U1"), KindDeliveryFailure},
		{"plain error", errors.New("plain"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
			assert.True(t, IsKind(tt.err, tt.want))
		})
	}
	assert.False(t, IsKind(nil, KindInternal))
}

func TestFormatFirstValidationError(t *testing.T) {
	v := newTestValidator()

	t.Run("range tag", func(t *testing.T) {
		err := v.Struct(intake{Name: "Asha", Age: 130, Gender: "female"})
		assert.Equal(t, "age must be less than or equal to 120", FormatFirstValidationError(err))
	})

	t.Run("oneof tag", func(t *testing.T) {
		err := v.Struct(intake{Name: "Asha", Age: 30, Gender: "unknown"})
		assert.Equal(t, "gender must be one of [male, female, other]", FormatFirstValidationError(err))
	})

	t.Run("required tag", func(t *testing.T) {
		err := v.Struct(intake{Age: 30, Gender: "male"})
		assert.Equal(t, "name is required", FormatFirstValidationError(err))
	})

	t.Run("non validation error", func(t *testing.T) {
		assert.Equal(t, constvars.ErrDevInvalidInput, FormatFirstValidationError(errors.New("x")))
	})

	t.Run("input validation error is a validation kind", func(t *testing.T) {
		err := ErrInputValidation(v.Struct(intake{Age: 0, Name: "A", Gender: "male"}))
		assert.Equal(t, KindValidation, err.Kind)
		assert.Equal(t, constvars.StatusBadRequest, err.StatusCode)
	})
}
