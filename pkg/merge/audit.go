package merge

import "go.uber.org/zap"

// ValueUpdateEvent records one pending field copy into the base table.
type ValueUpdateEvent struct {
	BaseRow  int
	Key      string
	Field    string
	OldValue string
	NewValue string
}

// DuplicateEvent records a secondary key whose leaf was already matched by
// an earlier secondary key in the same pass.
type DuplicateEvent struct {
	LeafKey       string
	BaseName      string
	SecondaryKey  string
	SecondaryName string
}

// KeyNotFoundEvent records a secondary key whose leaf is absent from the
// base table.
type KeyNotFoundEvent struct {
	LeafKey       string
	SecondaryKey  string
	SecondaryName string
}

// Auditor receives the structured events emitted while classifying a merge
// pass. Implementations decide the sink and format; the merge only defines
// the event shapes and trigger conditions.
type Auditor interface {
	ValueUpdate(ValueUpdateEvent)
	DuplicateFound(DuplicateEvent)
	KeyNotFound(KeyNotFoundEvent)
}

// NopAuditor discards all events.
type NopAuditor struct{}

func (NopAuditor) ValueUpdate(ValueUpdateEvent)  {}
func (NopAuditor) DuplicateFound(DuplicateEvent) {}
func (NopAuditor) KeyNotFound(KeyNotFoundEvent)  {}

// ZapAuditor writes events as structured zap logs.
type ZapAuditor struct {
	Log *zap.Logger
}

func (a ZapAuditor) ValueUpdate(e ValueUpdateEvent) {
	a.Log.Info("value_update",
		zap.Int("base_row", e.BaseRow),
		zap.String("key", e.Key),
		zap.String("field", e.Field),
		zap.String("old_value", e.OldValue),
		zap.String("new_value", e.NewValue),
	)
}

func (a ZapAuditor) DuplicateFound(e DuplicateEvent) {
	a.Log.Info("duplicate_found",
		zap.String("leaf_key", e.LeafKey),
		zap.String("base_name", e.BaseName),
		zap.String("secondary_key", e.SecondaryKey),
		zap.String("secondary_name", e.SecondaryName),
	)
}

func (a ZapAuditor) KeyNotFound(e KeyNotFoundEvent) {
	a.Log.Info("key_not_found",
		zap.String("leaf_key", e.LeafKey),
		zap.String("secondary_key", e.SecondaryKey),
		zap.String("secondary_name", e.SecondaryName),
	)
}
