package grpc

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	usernameRe  = regexp.MustCompile(`^[A-Za-z0-9_]{4,32}$`)
	sha256hexRe = regexp.MustCompile(`^[0-9a-fA-F]{64}$`)
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their wire names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("username", validateUsername)
	_ = v.RegisterValidation("sha256hex", validateSHA256Hex)
	return v
}

// validateUsername accepts 4 to 32 letters, digits or underscores.
func validateUsername(fl validator.FieldLevel) bool {
	return usernameRe.MatchString(fl.Field().String())
}

// validateSHA256Hex accepts a hex encoded 32-byte digest.
func validateSHA256Hex(fl validator.FieldLevel) bool {
	return sha256hexRe.MatchString(fl.Field().String())
}

// validateRequest checks the validate tags of req and reports the first
// violation as InvalidArgument.
func (s *GRPCServer) validateRequest(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return status.Error(codes.InvalidArgument, describe(verrs[0]))
	}
	return status.Error(codes.InvalidArgument, "invalid request")
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "username":
		return fmt.Sprintf("%s must be 4-32 letters, digits or underscores", field)
	case "sha256hex":
		return fmt.Sprintf("%s must be 64 hex characters", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "uuid":
		return fmt.Sprintf("%s must be a UUID", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %q validation", field, fe.Tag())
	}
}
