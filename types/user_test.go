package types

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSafetyStatusMarshalFiniteDistance(t *testing.T) {
	st := SafetyStatus{UserID: "a@example.com", Safe: false, MinDistance: 0}
	out, err := json.Marshal(st)
	require.NoError(t, err)
	require.JSONEq(t, `{"userId":"a@example.com","safe":false,"minDistance":0}`, string(out))
}

func TestSafetyStatusMarshalInfiniteDistanceAsNull(t *testing.T) {
	st := SafetyStatus{UserID: "a@example.com", Safe: true, MinDistance: math.Inf(1)}
	out, err := json.Marshal(st)
	require.NoError(t, err)
	require.JSONEq(t, `{"userId":"a@example.com","safe":true,"minDistance":null}`, string(out))
}
