// file: internals/features/academics/programs/service/reconcile.go
package service

/* =========================
   Entity Reconciler
   Diff tiga-arah berbasis identitas, murni komputasi (tidak menyentuh
   storage). Dipakai untuk packages, coach links, discounts, dan asosiasi
   discount-package. Schedules sengaja TIDAK di-diff (full replace).
========================= */

// Diff adalah hasil partisi desired terhadap persisted.
type Diff[T any, K comparable] struct {
	ToAdd    []T
	ToUpdate []T
	ToRemove []K
}

// Empty: true bila tidak ada operasi tulis yang perlu dilakukan selain update.
func (d Diff[T, K]) Empty() bool {
	return len(d.ToAdd) == 0 && len(d.ToUpdate) == 0 && len(d.ToRemove) == 0
}

// Reconcile mempartisi desired relatif terhadap persisted:
//   - ToAdd    : item desired tanpa key (kecuali ditandai deleted — itu
//     no-op), atau key-nya tidak ada di persisted
//   - ToUpdate : item desired yang key-nya ada di persisted dan tidak
//     ditandai deleted
//   - ToRemove : key persisted yang tidak dirujuk desired mana pun, plus
//     item desired yang membawa key persisted tapi ditandai deleted
//
// keyOf mengembalikan (key, true) bila item punya identitas persisted.
// isDeleted membaca soft "deleted" marker dari caller (boleh selalu false).
//
// Key kembar di desired seharusnya tidak terjadi (UI membangun koleksi per
// baris) — dijaga eksplisit dan dikembalikan sebagai validation error,
// bukan diam-diam memilih salah satu. collection dipakai untuk atribusi
// field pada error.
func Reconcile[T any, K comparable](
	collection string,
	persisted []T,
	desired []T,
	keyOf func(T) (K, bool),
	isDeleted func(T) bool,
) (Diff[T, K], error) {
	persistedKeys := make(map[K]struct{}, len(persisted))
	for _, p := range persisted {
		if k, ok := keyOf(p); ok {
			persistedKeys[k] = struct{}{}
		}
	}

	var diff Diff[T, K]
	seen := make(map[K]struct{}, len(desired))
	referenced := make(map[K]struct{}, len(desired))

	for _, d := range desired {
		k, ok := keyOf(d)
		if !ok {
			// baris baru yang sudah ditandai deleted (dibuat lalu dihapus
			// lagi di UI sebelum save) adalah no-op, bukan add
			if isDeleted != nil && isDeleted(d) {
				continue
			}
			diff.ToAdd = append(diff.ToAdd, d)
			continue
		}
		if _, dup := seen[k]; dup {
			return Diff[T, K]{}, NewValidationError(collection, "duplicate id in desired collection")
		}
		seen[k] = struct{}{}

		if _, exists := persistedKeys[k]; !exists {
			// id asing (mis. hasil copy antar program) → perlakukan sebagai add
			diff.ToAdd = append(diff.ToAdd, d)
			continue
		}
		referenced[k] = struct{}{}
		if isDeleted != nil && isDeleted(d) {
			diff.ToRemove = append(diff.ToRemove, k)
			continue
		}
		diff.ToUpdate = append(diff.ToUpdate, d)
	}

	// persisted yang tidak dirujuk → remove (urutan mengikuti persisted)
	for _, p := range persisted {
		k, ok := keyOf(p)
		if !ok {
			continue
		}
		if _, ok := referenced[k]; !ok {
			diff.ToRemove = append(diff.ToRemove, k)
		}
	}

	return diff, nil
}
