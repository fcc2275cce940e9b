package service

import (
	"testing"
	"time"
)

func TestResolveMonthSpanSingleMonth(t *testing.T) {
	span, err := ResolveMonthSpan([]string{"March 2025"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !span.StartDate.Equal(date(2025, time.March, 1)) {
		t.Errorf("start = %v, want 2025-03-01", span.StartDate)
	}
	if !span.EndDate.Equal(date(2025, time.March, 31)) {
		t.Errorf("end = %v, want 2025-03-31", span.EndDate)
	}
}

func TestResolveMonthSpanYearRollover(t *testing.T) {
	span, err := ResolveMonthSpan([]string{"December 2025", "February 2026"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !span.StartDate.Equal(date(2025, time.December, 1)) {
		t.Errorf("start = %v, want 2025-12-01", span.StartDate)
	}
	// Februari 2026 bukan tahun kabisat
	if !span.EndDate.Equal(date(2026, time.February, 28)) {
		t.Errorf("end = %v, want 2026-02-28", span.EndDate)
	}
}

func TestResolveMonthSpanOrderIndependence(t *testing.T) {
	a, err := ResolveMonthSpan([]string{"January 2026", "March 2025"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := ResolveMonthSpan([]string{"March 2025", "January 2026"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.StartDate.Equal(b.StartDate) || !a.EndDate.Equal(b.EndDate) {
		t.Fatalf("urutan input mengubah hasil: %+v vs %+v", a, b)
	}
	if !a.StartDate.Equal(date(2025, time.March, 1)) || !a.EndDate.Equal(date(2026, time.January, 31)) {
		t.Fatalf("span = %+v, want 2025-03-01..2026-01-31", a)
	}
}

// Dipanggil ulang di setiap save paket monthly — set label sama harus
// selalu menghasilkan span yang sama.
func TestResolveMonthSpanIdempotent(t *testing.T) {
	labels := []string{"June 2025", "August 2025"}
	first, err := ResolveMonthSpan(labels)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := ResolveMonthSpan(labels)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !again.StartDate.Equal(first.StartDate) || !again.EndDate.Equal(first.EndDate) {
			t.Fatalf("hasil berubah pada pemanggilan ke-%d: %+v vs %+v", i+2, again, first)
		}
	}
}

func TestResolveMonthSpanEmptyInputDegenerate(t *testing.T) {
	span, err := ResolveMonthSpan(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// fallback defensif: kedua batas = hari ini
	if !span.StartDate.Equal(span.EndDate) {
		t.Fatalf("span kosong harus degenerate, got %+v", span)
	}
}

func TestResolveMonthSpanInvalidLabel(t *testing.T) {
	if _, err := ResolveMonthSpan([]string{"Maret 2025"}); err == nil {
		t.Fatal("label tidak valid harus error")
	}
}
