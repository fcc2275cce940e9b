package service

import (
	"testing"
)

type item struct {
	ID      *int
	Deleted bool
	Price   float64
}

func itemKey(it item) (int, bool) {
	if it.ID == nil {
		return 0, false
	}
	return *it.ID, true
}

func itemDeleted(it item) bool { return it.Deleted }

func ptr(v int) *int { return &v }

func TestReconcileBasicDiff(t *testing.T) {
	persisted := []item{{ID: ptr(1)}, {ID: ptr(2)}}
	desired := []item{{ID: ptr(1)}, {ID: ptr(3)}}

	diff, err := Reconcile("items", persisted, desired, itemKey, itemDeleted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(diff.ToAdd) != 1 || *diff.ToAdd[0].ID != 3 {
		t.Errorf("toAdd = %+v, want [{id:3}]", diff.ToAdd)
	}
	if len(diff.ToUpdate) != 1 || *diff.ToUpdate[0].ID != 1 {
		t.Errorf("toUpdate = %+v, want [{id:1}]", diff.ToUpdate)
	}
	if len(diff.ToRemove) != 1 || diff.ToRemove[0] != 2 {
		t.Errorf("toRemove = %v, want [2]", diff.ToRemove)
	}
}

func TestReconcileNewItemWithoutID(t *testing.T) {
	persisted := []item{{ID: ptr(1)}}
	desired := []item{{ID: ptr(1)}, {Price: 50}}

	diff, err := Reconcile("items", persisted, desired, itemKey, itemDeleted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diff.ToAdd) != 1 || diff.ToAdd[0].Price != 50 {
		t.Errorf("item tanpa id harus masuk toAdd, got %+v", diff.ToAdd)
	}
	if len(diff.ToRemove) != 0 {
		t.Errorf("toRemove = %v, want kosong", diff.ToRemove)
	}
}

func TestReconcileDeletedFlag(t *testing.T) {
	persisted := []item{{ID: ptr(1)}, {ID: ptr(2)}}
	desired := []item{{ID: ptr(1)}, {ID: ptr(2), Deleted: true}}

	diff, err := Reconcile("items", persisted, desired, itemKey, itemDeleted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diff.ToRemove) != 1 || diff.ToRemove[0] != 2 {
		t.Errorf("item ber-flag deleted harus masuk toRemove, got %v", diff.ToRemove)
	}
	if len(diff.ToUpdate) != 1 || *diff.ToUpdate[0].ID != 1 {
		t.Errorf("toUpdate = %+v", diff.ToUpdate)
	}
}

// Baris dibuat lalu dihapus lagi di UI sebelum save: tanpa id dan
// ber-flag deleted, harus jadi no-op — bukan add.
func TestReconcileDeletedWithoutIDIsNoop(t *testing.T) {
	persisted := []item{{ID: ptr(1)}}
	desired := []item{{ID: ptr(1)}, {Deleted: true, Price: 50}}

	diff, err := Reconcile("items", persisted, desired, itemKey, itemDeleted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diff.ToAdd) != 0 {
		t.Errorf("baris deleted tanpa id tidak boleh masuk toAdd, got %+v", diff.ToAdd)
	}
	if len(diff.ToRemove) != 0 {
		t.Errorf("toRemove = %v, want kosong", diff.ToRemove)
	}
	if len(diff.ToUpdate) != 1 || *diff.ToUpdate[0].ID != 1 {
		t.Errorf("toUpdate = %+v", diff.ToUpdate)
	}
}

func TestReconcileDuplicateIDRejected(t *testing.T) {
	persisted := []item{{ID: ptr(1)}}
	desired := []item{{ID: ptr(1)}, {ID: ptr(1)}}

	_, err := Reconcile("items", persisted, desired, itemKey, itemDeleted)
	if err == nil {
		t.Fatal("id kembar di desired harus ditolak, bukan dipilih diam-diam")
	}
	se := AsSaveError(err)
	if se.Kind != ErrKindValidation || se.Field != "items" {
		t.Fatalf("error = %+v, want validation dengan field items", se)
	}
}

// persisted == desired ⇒ tidak ada add/remove, semua id masuk toUpdate.
func TestReconcileIdempotent(t *testing.T) {
	persisted := []item{{ID: ptr(1)}, {ID: ptr(2)}, {ID: ptr(3)}}
	desired := []item{{ID: ptr(1)}, {ID: ptr(2)}, {ID: ptr(3)}}

	diff, err := Reconcile("items", persisted, desired, itemKey, itemDeleted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diff.ToAdd) != 0 || len(diff.ToRemove) != 0 {
		t.Fatalf("state identik harus menghasilkan add/remove kosong, got %+v", diff)
	}
	if len(diff.ToUpdate) != 3 {
		t.Fatalf("toUpdate harus memuat semua id, got %+v", diff.ToUpdate)
	}
}

// Id asing (tidak ada di persisted) diperlakukan sebagai add.
func TestReconcileForeignIDTreatedAsAdd(t *testing.T) {
	persisted := []item{{ID: ptr(1)}}
	desired := []item{{ID: ptr(99)}}

	diff, err := Reconcile("items", persisted, desired, itemKey, itemDeleted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diff.ToAdd) != 1 || *diff.ToAdd[0].ID != 99 {
		t.Errorf("toAdd = %+v", diff.ToAdd)
	}
	if len(diff.ToRemove) != 1 || diff.ToRemove[0] != 1 {
		t.Errorf("toRemove = %v", diff.ToRemove)
	}
}
