package service

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestAgeToDateWholeYears(t *testing.T) {
	ref := date(2025, time.June, 15)
	got := AgeToDate(10, AgeUnitYears, ref)
	want := date(2015, time.June, 15)
	if !got.Equal(want) {
		t.Fatalf("AgeToDate(10y) = %v, want %v", got, want)
	}
}

func TestAgeToDateFractionalYears(t *testing.T) {
	ref := date(2025, time.June, 15)
	// 2.5 tahun = 2 tahun + 6 bulan
	got := AgeToDate(2.5, AgeUnitYears, ref)
	want := date(2022, time.December, 15)
	if !got.Equal(want) {
		t.Fatalf("AgeToDate(2.5y) = %v, want %v", got, want)
	}
}

func TestAgeToDateWholeMonths(t *testing.T) {
	ref := date(2025, time.June, 15)
	// 18 bulan = 1 tahun + 6 bulan
	got := AgeToDate(18, AgeUnitMonths, ref)
	want := date(2023, time.December, 15)
	if !got.Equal(want) {
		t.Fatalf("AgeToDate(18mo) = %v, want %v", got, want)
	}
}

func TestAgeToDateFractionalMonths(t *testing.T) {
	ref := date(2025, time.June, 15)
	// 6.5 bulan: 6 bulan penuh → 2024-12-15, sisa 0.5 × 31 hari (Des) = 16 hari
	got := AgeToDate(6.5, AgeUnitMonths, ref)
	want := date(2024, time.November, 29)
	if !got.Equal(want) {
		t.Fatalf("AgeToDate(6.5mo) = %v, want %v", got, want)
	}
}

func TestUnlimitedEndDateSentinel(t *testing.T) {
	ref := date(2025, time.March, 1)
	got := UnlimitedEndDate(ref)
	want := date(2125, time.March, 1)
	if !got.Equal(want) {
		t.Fatalf("UnlimitedEndDate = %v, want %v", got, want)
	}
}

func TestDateToAge(t *testing.T) {
	tests := []struct {
		name  string
		birth time.Time
		ref   time.Time
		want  int
	}{
		{"sudah ulang tahun", date(2000, time.March, 10), date(2026, time.August, 28), 26},
		{"belum ulang tahun", date(2000, time.August, 30), date(2026, time.August, 28), 25},
		{"tepat hari ulang tahun", date(2000, time.August, 28), date(2026, time.August, 28), 26},
		{"lahir setelah referensi", date(2030, time.January, 1), date(2026, time.August, 28), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DateToAge(tt.birth, tt.ref); got != tt.want {
				t.Fatalf("DateToAge = %d, want %d", got, tt.want)
			}
		})
	}
}

// Round-trip: presisi hilang ke tahun bulat itu wajar, tapi tidak boleh
// meleset lebih dari 1 tahun.
func TestAgeDateRoundTripWithinOneYear(t *testing.T) {
	today := date(2026, time.August, 28)
	cases := []struct {
		age  float64
		unit AgeUnit
	}{
		{0.5, AgeUnitYears},
		{1, AgeUnitYears},
		{7.25, AgeUnitYears},
		{12.9, AgeUnitYears},
		{40, AgeUnitYears},
		{6, AgeUnitMonths},
		{18.5, AgeUnitMonths},
		{30, AgeUnitMonths},
		{144, AgeUnitMonths},
	}
	for _, c := range cases {
		birth := AgeToDate(c.age, c.unit, today)
		gotYears := float64(DateToAge(birth, today))

		wantYears := c.age
		if c.unit == AgeUnitMonths {
			wantYears = c.age / 12
		}
		diff := gotYears - wantYears
		if diff < 0 {
			diff = -diff
		}
		if diff > 1 {
			t.Errorf("round trip %v %s: birth=%v age=%v, selisih %v tahun", c.age, c.unit, birth, gotYears, diff)
		}
	}
}
