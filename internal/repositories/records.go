package repositories

import "vitrine/internal/store"

// RejectedRecord is a fetched row left out of a listing.
type RejectedRecord struct {
	Record store.Record `json:"record"`
	Reason string       `json:"reason"`
}

// decodeAll decodes every row that carries a non-null id not seen before.
// The other rows, and rows that fail to decode, come back as rejected.
func decodeAll[T any](recs []store.Record) ([]T, []RejectedRecord) {
	out := make([]T, 0, len(recs))
	rejected := []RejectedRecord{}
	seen := make(map[string]bool, len(recs))
	for _, rec := range recs {
		id, ok := rec.ID()
		switch {
		case rec == nil:
			rejected = append(rejected, RejectedRecord{Record: rec, Reason: "empty record"})
			continue
		case !ok:
			rejected = append(rejected, RejectedRecord{Record: rec, Reason: "missing id"})
			continue
		case seen[id]:
			rejected = append(rejected, RejectedRecord{Record: rec, Reason: "duplicate id " + id})
			continue
		}
		var v T
		if err := store.Decode(rec, &v); err != nil {
			rejected = append(rejected, RejectedRecord{Record: rec, Reason: err.Error()})
			continue
		}
		seen[id] = true
		out = append(out, v)
	}
	return out, rejected
}

// write encodes v, hands the record to call and decodes what the store
// confirmed. Failures are tagged with op.
func write[T any](op string, v T, call func(store.Record) (store.Record, error)) (*T, error) {
	rec, err := store.Encode(v)
	if err != nil {
		return nil, translate(op, err)
	}
	saved, err := call(rec)
	if err != nil {
		return nil, translate(op, err)
	}
	var out T
	if err := store.Decode(saved, &out); err != nil {
		return nil, translate(op, err)
	}
	return &out, nil
}

// getSingleton returns nil without error when the collection is empty.
func getSingleton[T any](op string, rec store.Record, err error) (*T, error) {
	if err != nil {
		return nil, translate(op, err)
	}
	if rec == nil {
		return nil, nil
	}
	var out T
	if err := store.Decode(rec, &out); err != nil {
		return nil, translate(op, err)
	}
	return &out, nil
}
