// file: internals/features/enrollments/service/midtrans_service.go
package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"

	"akademiku_backend/internals/configs"
)

var (
	snapClient snap.Client
	coreClient coreapi.Client
)

// InitMidtrans: panggil sekali dari main setelah LoadEnv.
func InitMidtrans() {
	env := midtrans.Sandbox
	if strings.EqualFold(configs.GetEnv("MIDTRANS_ENV", "sandbox"), "production") {
		env = midtrans.Production
	}
	snapClient.New(configs.MidtransServerKey, env)
	coreClient.New(configs.MidtransServerKey, env)
	log.Println("✅ Midtrans client siap")
}

// NewOrderID: unik per enrollment, jadi kunci rekonsiliasi webhook.
func NewOrderID(enrollmentID uuid.UUID) string {
	return fmt.Sprintf("ENR-%s-%d", enrollmentID.String()[:8], time.Now().Unix())
}

// CreateSnapToken membuat transaksi Snap dan mengembalikan token
// untuk dibuka di client.
func CreateSnapToken(orderID string, amount float64, studentName, email string) (string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: int64(amount),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: studentName,
			Email: email,
		},
	}
	resp, err := snapClient.CreateTransaction(req)
	if err != nil {
		return "", fmt.Errorf("midtrans snap error: %w", err)
	}
	return resp.Token, nil
}

// CheckTransaction menanyakan status order langsung ke Midtrans; webhook
// body tidak dipercaya mentah-mentah.
func CheckTransaction(orderID string) (*coreapi.TransactionStatusResponse, error) {
	resp, err := coreClient.CheckTransaction(orderID)
	if err != nil {
		return nil, fmt.Errorf("midtrans check error: %w", err)
	}
	return resp, nil
}

// IsSettled: status Midtrans yang dihitung sebagai pembayaran sukses.
func IsSettled(status *coreapi.TransactionStatusResponse) bool {
	switch status.TransactionStatus {
	case "settlement":
		return true
	case "capture":
		return status.FraudStatus == "accept"
	}
	return false
}
