package validator

import (
	"net/mail"
	"strings"

	"app/internal/domain/model"
	"app/internal/usecase"
)

// チェックアウトフォームの検証。
// フィールド名→メッセージのmapを返す（空なら合格）。
type checkoutValidator struct{}

func NewCheckoutValidator() usecase.CheckoutValidator {
	return &checkoutValidator{}
}

func (v *checkoutValidator) ValidateCheckout(in usecase.CheckoutInput) map[string]string {
	fields := map[string]string{}

	requireField(fields, "full_name", in.FullName)
	requireField(fields, "phone", in.Phone)
	requireField(fields, "address", in.Address)
	requireField(fields, "city", in.City)
	requireField(fields, "postal_code", in.PostalCode)
	requireField(fields, "country", in.Country)

	if strings.TrimSpace(in.Email) == "" {
		fields["email"] = "this field is required"
	} else if !isEmailLike(in.Email) {
		fields["email"] = "enter a valid email address"
	}

	switch model.PaymentMethod(in.PaymentMethod) {
	case model.PaymentCashOnDelivery, model.PaymentPrepaid:
	default:
		fields["payment_method"] = "select a valid payment method"
	}

	return fields
}

func requireField(fields map[string]string, name string, value string) {
	if strings.TrimSpace(value) == "" {
		fields[name] = "this field is required"
	}
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	_, err := mail.ParseAddress(strings.TrimSpace(s))
	return err == nil
}
