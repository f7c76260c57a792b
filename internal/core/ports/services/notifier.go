package services

// Notifier pushes balance-change events to the owning principal. Delivery is
// best-effort and asynchronous: callers never block on it and a failed or
// dropped push never fails the ledger operation that triggered it. Clients
// treat these as advisory refresh hints and re-derive state by querying the
// ledger.
type Notifier interface {
	// NotifyPointsUpdate pushes an event describing a points change.
	NotifyPointsUpdate(userID string, eventKind string, points int64, newBalance int64)
}
