// file: internals/features/academics/programs/service/agedate.go
package service

import (
	"math"
	"time"
)

/* =========================
   Age ⇄ Date converter
   Pure function, tanpa I/O. Semua tanggal dianggap wall-clock lokal
   (tidak ada penanganan timezone — lihat non-goals).
========================= */

// AgeUnit adalah satuan umur yang dikirim caller. Nilai di luar enum ini
// adalah programming error (schema upstream sudah memvalidasi).
type AgeUnit string

const (
	AgeUnitYears  AgeUnit = "years"
	AgeUnitMonths AgeUnit = "months"
)

// UnlimitedAgeHorizonYears: umur atas "unlimited" dipetakan ke tanggal
// referensi + 100 tahun, bukan nilai null/open-ended, supaya invariant
// start <= end selalu bisa dipenuhi.
// TODO(product): ganti sentinel ini dengan representasi nullable begitu
// ada keputusan produk soal batas atas umur.
const UnlimitedAgeHorizonYears = 100

// AgeToDate mengubah (umur, satuan) menjadi batas tanggal lahir, dihitung
// mundur dari referenceDate. Mendukung umur pecahan:
//   - years: bagian bulat tahun dulu, sisa pecahan → bulan (×12), sisa
//     pecahan bulan → hari, diskalakan ke jumlah hari bulan hasil.
//   - months: total bulan dipecah tahun/bulan via div-mod, sisa pecahan
//     → hari pada bulan hasil.
func AgeToDate(age float64, unit AgeUnit, referenceDate time.Time) time.Time {
	ref := truncateToDate(referenceDate)

	switch unit {
	case AgeUnitYears:
		wholeYears := int(math.Floor(age))
		fracYears := age - float64(wholeYears)

		d := ref.AddDate(-wholeYears, 0, 0)

		monthsPart := fracYears * 12
		wholeMonths := int(math.Floor(monthsPart))
		fracMonths := monthsPart - float64(wholeMonths)

		d = d.AddDate(0, -wholeMonths, 0)
		if fracMonths > 0 {
			days := int(math.Round(fracMonths * float64(daysInMonth(d.Year(), d.Month()))))
			d = d.AddDate(0, 0, -days)
		}
		return d

	case AgeUnitMonths:
		wholeMonths := int(math.Floor(age))
		fracMonths := age - float64(wholeMonths)

		years := wholeMonths / 12
		months := wholeMonths % 12

		d := ref.AddDate(-years, -months, 0)
		if fracMonths > 0 {
			days := int(math.Round(fracMonths * float64(daysInMonth(d.Year(), d.Month()))))
			d = d.AddDate(0, 0, -days)
		}
		return d
	}

	// unreachable: unit sudah divalidasi enum di upstream
	return ref
}

// UnlimitedEndDate adalah sentinel untuk "tanpa batas umur atas".
func UnlimitedEndDate(referenceDate time.Time) time.Time {
	return truncateToDate(referenceDate).AddDate(UnlimitedAgeHorizonYears, 0, 0)
}

// DateToAge menghitung umur dalam tahun penuh (floor). Dipakai untuk
// prefill UI saja — tidak harus inverse persis dari AgeToDate.
func DateToAge(birthDate, referenceDate time.Time) int {
	birth := truncateToDate(birthDate)
	ref := truncateToDate(referenceDate)

	years := ref.Year() - birth.Year()
	// belum ulang tahun di tahun referensi → kurangi satu
	anniversary := time.Date(ref.Year(), birth.Month(), birth.Day(), 0, 0, 0, 0, time.Local)
	if ref.Before(anniversary) {
		years--
	}
	if years < 0 {
		years = 0
	}
	return years
}

// daysInMonth: hari ke-0 bulan berikutnya = hari terakhir bulan ini.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
