package planner

// indexKind tags which slot family an indexKey belongs to.
type indexKind string

const (
	kindPickup           indexKind = "pickup"
	kindDelivery         indexKind = "delivery"
	kindShipmentPickup   indexKind = "shipment_pickup"
	kindShipmentDelivery indexKind = "shipment_delivery"
	kindShipmentAssembly indexKind = "shipment_assembly"
	kindDummy            indexKind = "dummy"
)

// indexKey is the tagged semantic key a workIndex interns to a dense int.
// dummy keys carry both a wave and a vehicle id in a/b; every other kind
// carries a work id in a and leaves b unused.
type indexKey struct {
	kind indexKind
	a    int64
	b    int64
}

// workIndex lazily assigns a dense, solver-facing integer id to every
// (kind, work/vehicle) pair it is asked about, and can map back from an id
// to the key that produced it.
type workIndex struct {
	next      int
	idToIndex map[indexKey]int
	indexToID map[int]indexKey
}

func newWorkIndex() *workIndex {
	return &workIndex{
		idToIndex: make(map[indexKey]int),
		indexToID: make(map[int]indexKey),
	}
}

func (h *workIndex) setup(key indexKey) int {
	if idx, ok := h.idToIndex[key]; ok {
		return idx
	}
	idx := h.next
	h.next++
	h.idToIndex[key] = idx
	h.indexToID[idx] = key
	return idx
}

func (h *workIndex) pickupIndex(workID int64) int {
	return h.setup(indexKey{kind: kindPickup, a: workID})
}

func (h *workIndex) deliveryIndex(workID int64) int {
	return h.setup(indexKey{kind: kindDelivery, a: workID})
}

func (h *workIndex) shipmentPickupIndex(workID int64) int {
	return h.setup(indexKey{kind: kindShipmentPickup, a: workID})
}

func (h *workIndex) shipmentDeliveryIndex(workID int64) int {
	return h.setup(indexKey{kind: kindShipmentDelivery, a: workID})
}

func (h *workIndex) shipmentAssemblyIndex(workID int64) int {
	return h.setup(indexKey{kind: kindShipmentAssembly, a: workID})
}

func (h *workIndex) dummyIndex(wave int, vehicleID int64) int {
	return h.setup(indexKey{kind: kindDummy, a: int64(wave), b: vehicleID})
}

// workID returns the (kind, work id) pair an index was interned from.
func (h *workIndex) workID(index int) (indexKind, int64) {
	key := h.indexToID[index]
	return key.kind, key.a
}

// isDummy reports whether the index was allocated for a filler stop that
// carries no customer-visible work (a wave-closing dummy job, or a
// shipment's already-loaded assembly pseudo-leg).
func (h *workIndex) isDummy(index int) bool {
	kind := h.indexToID[index].kind
	return kind == kindDummy || kind == kindShipmentAssembly
}
