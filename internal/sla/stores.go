package sla

// DefaultStores is the allow-list of dark stores included in the report.
// Matching is exact and case-sensitive.
var DefaultStores = []string{
	"BLR_kalyan-nagar",
	"BLR_koramangala",
	"CH_Periyamet",
	"DEL_malviya-nagar",
	"HYD_manikonda",
	"KOL-Topsia",
	"MUM_andheri",
	"PUN_koregaon-park",
}

// StoreSet is an ordered allow-list with constant-time membership checks.
type StoreSet struct {
	order []string
	index map[string]int
}

// NewStoreSet builds a StoreSet preserving the order of stores.
// Duplicates keep their first position.
func NewStoreSet(stores []string) *StoreSet {
	s := &StoreSet{index: make(map[string]int, len(stores))}
	for _, store := range stores {
		if _, ok := s.index[store]; ok {
			continue
		}
		s.index[store] = len(s.order)
		s.order = append(s.order, store)
	}
	return s
}

// Contains reports whether store is allow-listed.
func (s *StoreSet) Contains(store string) bool {
	_, ok := s.index[store]
	return ok
}

// Position returns the allow-list position of store, or -1.
func (s *StoreSet) Position(store string) int {
	if i, ok := s.index[store]; ok {
		return i
	}
	return -1
}

// Stores returns a copy of the allow-list in order.
func (s *StoreSet) Stores() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of allow-listed stores.
func (s *StoreSet) Len() int {
	return len(s.order)
}
