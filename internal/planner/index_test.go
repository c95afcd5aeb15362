package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkIndex_SameKeyReturnsSameIndex(t *testing.T) {
	idx := newWorkIndex()

	a := idx.pickupIndex(42)
	b := idx.pickupIndex(42)

	assert.Equal(t, a, b)
}

func TestWorkIndex_DifferentKindsGetDistinctIndices(t *testing.T) {
	idx := newWorkIndex()

	pickup := idx.pickupIndex(1)
	delivery := idx.deliveryIndex(1)
	shipmentPickup := idx.shipmentPickupIndex(1)
	shipmentDelivery := idx.shipmentDeliveryIndex(1)
	shipmentAssembly := idx.shipmentAssemblyIndex(1)
	dummy := idx.dummyIndex(2, 1)

	seen := map[int]bool{}
	for _, i := range []int{pickup, delivery, shipmentPickup, shipmentDelivery, shipmentAssembly, dummy} {
		assert.False(t, seen[i], "index %d reused across distinct keys", i)
		seen[i] = true
	}
}

func TestWorkIndex_WorkIDRoundTrips(t *testing.T) {
	idx := newWorkIndex()

	i := idx.deliveryIndex(99)

	kind, workID := idx.workID(i)
	assert.Equal(t, kindDelivery, kind)
	assert.Equal(t, int64(99), workID)
}

func TestWorkIndex_IsDummy(t *testing.T) {
	idx := newWorkIndex()

	dummy := idx.dummyIndex(1, 5)
	shipmentAssembly := idx.shipmentAssemblyIndex(7)
	pickup := idx.pickupIndex(7)

	assert.True(t, idx.isDummy(dummy))
	assert.True(t, idx.isDummy(shipmentAssembly))
	assert.False(t, idx.isDummy(pickup))
}
