package validation

import (
	"bordados_admin/internal/adapter/http/dto/request"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a validator with the request-level rules registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()
	v.RegisterStructValidation(exportRangeStructValidation, request.PaymentExportQuery{})
	v.RegisterStructValidation(createOrderStructValidation, request.CreateOrderRequest{})
	return v
}

// exportRangeStructValidation rejects ranges whose start is after their end.
// Both bounds are YYYY-MM-DD so they compare lexically.
func exportRangeStructValidation(sl validatorv10.StructLevel) {
	q := sl.Current().Interface().(request.PaymentExportQuery)
	if q.From != "" && q.To != "" && q.From > q.To {
		sl.ReportError(q.From, "from", "From", "from_before_to", q.To)
	}
}

func createOrderStructValidation(sl validatorv10.StructLevel) {
	r := sl.Current().Interface().(request.CreateOrderRequest)
	if r.Description != "" && strings.TrimSpace(r.Description) == "" {
		sl.ReportError(r.Description, "description", "Description", "required", "")
	}
}
