package validation

import (
	"bordados_admin/pkg"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

var (
	errInvalidBody  = pkg.NewDomainErrorSimple("INVALID_REQUEST_BODY", "Solicitud inválida", http.StatusBadRequest)
	errInvalidQuery = pkg.NewDomainErrorSimple("INVALID_QUERY", "Parámetros inválidos", http.StatusBadRequest)
	errValidation   = pkg.NewDomainErrorSimple("VALIDATION_FAILED", "Datos inválidos", http.StatusBadRequest)
)

// BindAndValidate binds the JSON body into out and validates it. On failure
// it writes a 400 response and returns the error so the handler can stop.
func BindAndValidate(c *gin.Context, out any, v *validatorv10.Validate) error {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(errInvalidBody.HTTPStatus, errInvalidBody.WithMessage(err.Error()).ToHTTPError())
		return err
	}
	return validate(c, out, v)
}

// BindQueryAndValidate is BindAndValidate for query parameters.
func BindQueryAndValidate(c *gin.Context, out any, v *validatorv10.Validate) error {
	if err := c.ShouldBindQuery(out); err != nil {
		c.JSON(errInvalidQuery.HTTPStatus, errInvalidQuery.WithMessage(err.Error()).ToHTTPError())
		return err
	}
	return validate(c, out, v)
}

func validate(c *gin.Context, out any, v *validatorv10.Validate) error {
	if err := v.Struct(out); err != nil {
		appErr := errValidation.WithDetail("fields", validationErrorsToMap(err))
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return err
	}
	return nil
}

func validationErrorsToMap(err error) map[string]string {
	out := map[string]string{}
	var ve validatorv10.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			out[fe.Field()] = fieldMessage(fe)
		}
		return out
	}
	out["error"] = err.Error()
	return out
}

func fieldMessage(fe validatorv10.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case "gt", "gte":
		return "debe ser mayor o igual a " + fe.Param()
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "datetime":
		return "debe tener formato AAAA-MM-DD"
	case "max":
		return "supera el largo máximo de " + fe.Param()
	case "from_before_to":
		return "debe ser anterior o igual a " + fe.Param()
	}
	return fe.Error()
}
