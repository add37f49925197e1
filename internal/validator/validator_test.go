package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type selectBody struct {
	CartID        string `json:"cart_id" validate:"required,notblank"`
	PickupPointID string `json:"pickup_point_id" validate:"required,notblank"`
}

func TestStruct(t *testing.T) {
	val := New()

	require.NoError(t, val.Struct(selectBody{CartID: "cart_1", PickupPointID: "1"}))

	err := val.Struct(selectBody{CartID: "   ", PickupPointID: ""})
	require.Error(t, err)
	require.Equal(t, []string{"cart_id: notblank", "pickup_point_id: required"}, Fields(err))
}

func TestVar(t *testing.T) {
	val := New()
	require.NoError(t, val.Var("Praha", "notblank"))
	require.Error(t, val.Var(" ", "notblank"))
}

func TestFieldsPlainError(t *testing.T) {
	require.Equal(t, []string{"boom"}, Fields(errors.New("boom")))
}
