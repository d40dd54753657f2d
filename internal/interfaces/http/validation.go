package http

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-dashboard-api/internal/application/dto"
)

var validate = validator.New()

func init() {
	// Los mensajes usan el nombre del tag query/json en lugar del campo Go.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"query", "json"} {
			if name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]; name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
}

// validateStruct corre los tags validate. Si falla escribe 400 y devuelve false;
// el handler debe retornar sin escribir otra respuesta.
func validateStruct(c *fiber.Ctx, code string, in interface{}) (bool, error) {
	err := validate.Struct(in)
	if err == nil {
		return true, nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: strings.Join(msgs, "; ")})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " es requerido"
	case "email":
		return fe.Field() + " debe ser un email válido"
	case "oneof":
		return fe.Field() + " debe ser uno de: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datetime":
		return fe.Field() + " debe tener formato YYYY-MM-DD"
	case "min", "max":
		return fe.Field() + " fuera de rango"
	default:
		return fe.Field() + " inválido (" + fe.Tag() + ")"
	}
}
