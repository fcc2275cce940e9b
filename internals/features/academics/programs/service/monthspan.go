// file: internals/features/academics/programs/service/monthspan.go
package service

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

/* =========================
   Month-Range Resolver
========================= */

// MonthSpan adalah rentang inklusif hasil resolve label bulan.
type MonthSpan struct {
	StartDate time.Time
	EndDate   time.Time
}

// monthLabelLayout: label bulan berbentuk "March 2025".
const monthLabelLayout = "January 2006"

// ParseMonthLabel mem-parse satu label "Month YYYY" menjadi hari pertama
// bulan tersebut.
func ParseMonthLabel(label string) (time.Time, error) {
	t, err := time.ParseInLocation(monthLabelLayout, strings.TrimSpace(label), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("label bulan tidak valid %q (format: %q)", label, monthLabelLayout)
	}
	return t, nil
}

// ResolveMonthSpan menghitung [hari pertama bulan paling awal, hari terakhir
// bulan paling akhir] dari kumpulan label bulan yang urutannya bebas.
//
// Dipanggil ulang pada setiap save paket monthly: idempoten (set label sama
// → span sama) dan tidak bergantung pada span yang pernah tersimpan.
//
// Input kosong mengembalikan span degenerate now/now — fallback defensif,
// bukan state bisnis valid; caller wajib menolak list kosong di validasi.
func ResolveMonthSpan(monthLabels []string) (MonthSpan, error) {
	if len(monthLabels) == 0 {
		now := truncateToDate(time.Now())
		return MonthSpan{StartDate: now, EndDate: now}, nil
	}

	months := make([]time.Time, 0, len(monthLabels))
	for _, label := range monthLabels {
		t, err := ParseMonthLabel(label)
		if err != nil {
			return MonthSpan{}, err
		}
		months = append(months, t)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	earliest := months[0]
	latest := months[len(months)-1]

	start := time.Date(earliest.Year(), earliest.Month(), 1, 0, 0, 0, 0, time.Local)
	// hari ke-0 bulan berikutnya = hari terakhir bulan latest;
	// time.Date menormalkan Desember+1 ke Januari tahun berikutnya.
	end := time.Date(latest.Year(), latest.Month()+1, 0, 0, 0, 0, 0, time.Local)

	return MonthSpan{StartDate: start, EndDate: end}, nil
}
