package lineitem

import (
	stdErrors "errors"
	"math"
	"reflect"
	"strings"

	pkgerrors "github.com/angelmondragon/shoppingcart/pkg/errors"
	"github.com/go-playground/validator/v10"
)

const (
	fieldID               = "id"
	fieldName             = "name"
	fieldValue            = "value"
	fieldPrice            = "price"
	fieldQty              = "qty"
	fieldTaxRate          = "taxRate"
	fieldFreeShipping     = "freeShipping"
	fieldShippingDiscount = "shippingDiscount"
)

var fieldLabels = map[string]string{
	fieldID:               "identifier",
	fieldQty:              "quantity",
	fieldTaxRate:          "tax rate",
	fieldFreeShipping:     "free shipping flag",
	fieldShippingDiscount: "shipping discount",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	// An empty identifier validates as "" so `required` rejects it.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		id, ok := field.Interface().(Identifier)
		if !ok || id.IsZero() {
			return ""
		}
		return id.String()
	}, Identifier{})
	if err := v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	}); err != nil {
		panic(err)
	}
	return v
}

type discountFields struct {
	ID    Identifier `json:"id" validate:"required"`
	Name  string     `json:"name" validate:"required"`
	Value float64    `json:"value" validate:"finite"`
}

type shippingFields struct {
	ID               Identifier `json:"id" validate:"required"`
	Name             string     `json:"name" validate:"required"`
	Price            float64    `json:"price" validate:"finite"`
	Qty              float64    `json:"qty" validate:"required,finite"`
	ShippingDiscount float64    `json:"shippingDiscount" validate:"finite"`
}

func validateFields(fields any) error {
	if err := validate.Struct(fields); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func validateFinite(field string, value float64) error {
	if err := validate.Var(value, "finite"); err != nil {
		return invalidField(field, "must be a finite number")
	}
	return nil
}

func formatValidationErrors(err error) *pkgerrors.Error {
	var errs validator.ValidationErrors
	if stdErrors.As(err, &errs) && len(errs) > 0 {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeInvalidArgument, supplyMessage(errs[0].Field())).WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInvalidArgument, err, "validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "finite":
		return "must be a finite number"
	}
	return "is invalid"
}

func invalidField(field, reason string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeInvalidArgument, supplyMessage(field)).
		WithDetails(map[string]string{field: reason})
}

func supplyMessage(field string) string {
	label, ok := fieldLabels[field]
	if !ok {
		label = field
	}
	return "please supply a valid " + label
}
