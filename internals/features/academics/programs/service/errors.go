// file: internals/features/academics/programs/service/errors.go
package service

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

/* =========================
   Error taxonomy
========================= */

// SaveErrorKind membedakan kelas kegagalan saveProgram supaya caller bisa
// memetakan ke status HTTP + highlight field di form tanpa string matching.
type SaveErrorKind string

const (
	ErrKindAuthorization SaveErrorKind = "authorization" // dicek SEBELUM transaksi dibuka
	ErrKindNotFound      SaveErrorKind = "not_found"
	ErrKindValidation    SaveErrorKind = "validation"
	ErrKindPersistence   SaveErrorKind = "persistence" // gagal di tengah transaksi → rollback total
)

// SaveError adalah hasil error terstruktur dari writer.
// Field diisi kalau error bisa diatribusikan ke satu input form.
type SaveError struct {
	Kind    SaveErrorKind
	Field   string
	Message string
	Err     error // penyebab asli (mis. *pq.Error), boleh nil
}

func (e *SaveError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field=%s)", e.Kind, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *SaveError) Unwrap() error { return e.Err }

func NewAuthorizationError(msg string) *SaveError {
	return &SaveError{Kind: ErrKindAuthorization, Message: msg}
}

func NewNotFoundError(msg string) *SaveError {
	return &SaveError{Kind: ErrKindNotFound, Message: msg}
}

func NewValidationError(field, msg string) *SaveError {
	return &SaveError{Kind: ErrKindValidation, Field: field, Message: msg}
}

// WrapPersistence membungkus error storage jadi SaveError, dengan klasifikasi
// ulang untuk kasus yang sebenarnya not-found / duplikat.
func WrapPersistence(err error) *SaveError {
	if err == nil {
		return nil
	}
	var se *SaveError
	if errors.As(err, &se) {
		return se // sudah terklasifikasi, jangan dibungkus ulang
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &SaveError{Kind: ErrKindNotFound, Message: "record not found", Err: err}
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23503":
			return &SaveError{Kind: ErrKindNotFound, Message: "referensi tidak ditemukan (FK violation)", Err: err}
		case "23505":
			return &SaveError{Kind: ErrKindPersistence, Message: "data duplikat (unique violation)", Err: err}
		}
	}
	return &SaveError{Kind: ErrKindPersistence, Message: err.Error(), Err: err}
}

// AsSaveError mengekstrak *SaveError dari error apa pun; fallback persistence.
func AsSaveError(err error) *SaveError {
	if err == nil {
		return nil
	}
	var se *SaveError
	if errors.As(err, &se) {
		return se
	}
	return WrapPersistence(err)
}
