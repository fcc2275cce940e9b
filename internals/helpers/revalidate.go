// file: internals/helpers/revalidate.go
package helper

import (
	"log"
	"sync"
)

/* ===============================
   Cache revalidation hook
   Side channel invalidasi cache per tag (mis. "academy:<id>",
   "program:<id>"). Dipanggil controller SETELAH commit sukses —
   sengaja di luar transaksi tulis, commit tidak boleh tergantung
   pada subscriber cache.
=================================*/

type InvalidateFunc func(tag string)

var (
	revalidateMu   sync.RWMutex
	revalidateSubs []InvalidateFunc
)

// OnInvalidate mendaftarkan subscriber (CDN purge, in-memory cache, dsb).
func OnInvalidate(fn InvalidateFunc) {
	revalidateMu.Lock()
	defer revalidateMu.Unlock()
	revalidateSubs = append(revalidateSubs, fn)
}

// InvalidateTags fan-out ke semua subscriber. Best-effort: subscriber yang
// lambat/gagal tidak mempengaruhi response.
func InvalidateTags(tags ...string) {
	revalidateMu.RLock()
	subs := make([]InvalidateFunc, len(revalidateSubs))
	copy(subs, revalidateSubs)
	revalidateMu.RUnlock()

	if len(subs) == 0 {
		return
	}
	go func() {
		for _, tag := range tags {
			for _, fn := range subs {
				fn(tag)
			}
			log.Printf("[CACHE] invalidate tag=%s", tag)
		}
	}()
}
