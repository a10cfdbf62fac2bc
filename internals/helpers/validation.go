package helper

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate = validator.New()

var shortCodeRe = regexp.MustCompile(`^[A-Za-z0-9_-]{3,32}$`)

func init() {
	// report fields by their json name
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = validate.RegisterValidation("shortcode", func(fl validator.FieldLevel) bool {
		return shortCodeRe.MatchString(fl.Field().String())
	})
}

// ValidateStruct returns field → message, or nil when v is valid.
//
//	if errs := helper.ValidateStruct(&body); errs != nil {
//		return helper.JsonValidationError(c, errs)
//	}
func ValidateStruct(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return map[string]string{"body": "ข้อมูลที่ส่งมาไม่ถูกต้อง"}
	}
	return ValidationMessages(ve)
}

// ValidationMessages maps field → Thai message.
func ValidationMessages(ve validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		field := toSnake(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = "จำเป็นต้องกรอก"
		case "email":
			out[field] = "รูปแบบอีเมลไม่ถูกต้อง"
		case "min":
			out[field] = "ต้องมีความยาวหรือค่าอย่างน้อย " + fe.Param()
		case "max":
			out[field] = "ต้องมีความยาวหรือค่าไม่เกิน " + fe.Param()
		case "oneof":
			out[field] = "ต้องเป็นค่าใดค่าหนึ่งใน: " + fe.Param()
		case "url", "http_url":
			out[field] = "รูปแบบ URL ไม่ถูกต้อง"
		case "numeric", "number":
			out[field] = "ต้องเป็นตัวเลข"
		case "len":
			out[field] = "ต้องมีความยาว " + fe.Param() + " ตัวอักษร"
		case "shortcode":
			out[field] = "ใช้ได้เฉพาะ A-Z a-z 0-9 _ - ความยาว 3-32 ตัวอักษร"
		default:
			out[field] = "รูปแบบไม่ถูกต้อง"
		}
	}
	return out
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
