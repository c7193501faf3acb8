// Package validate checks user input before it reaches the API. Each
// checker returns nil or an *apperr.ValidationError listing every reason the
// input was rejected, so callers can surface all of them at once.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/poultrypro/poultryctl/internal/apperr"
	"github.com/poultrypro/poultryctl/pkg/client"
)

var phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]{10,}$`)

// Validator wraps go-playground/validator with the custom rules the domain
// needs. The zero value is not usable; call New.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator with the phone rule registered.
func New() *Validator {
	v := validator.New()
	// The error is only non-nil for a blank tag or nil func.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return &Validator{v: v}
}

// check runs struct validation and converts the result to reasons.
func (va *Validator) check(s any) []string {
	err := va.v.Struct(s)
	if err == nil {
		return nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	reasons := make([]string, 0, len(ve))
	for _, fe := range ve {
		reasons = append(reasons, fieldError(fe))
	}
	return reasons
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "Please enter a valid email address"
	case "phone":
		return "Please enter a valid phone number"
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be no more than %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be no more than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func result(reasons []string) error {
	if len(reasons) == 0 {
		return nil
	}
	return &apperr.ValidationError{Reasons: reasons}
}

// Password checks strength the way the signup form does: at least eight
// characters with lower, upper, digit, and special classes all present.
func passwordReasons(password string) []string {
	if password == "" {
		return []string{"Password is required"}
	}
	var reasons []string
	if len(password) < 8 {
		reasons = append(reasons, "Password must be at least 8 characters long")
	}
	checks := []struct {
		class  string
		reason string
	}{
		{"abcdefghijklmnopqrstuvwxyz", "Password must contain at least one lowercase letter"},
		{"ABCDEFGHIJKLMNOPQRSTUVWXYZ", "Password must contain at least one uppercase letter"},
		{"0123456789", "Password must contain at least one number"},
		{"@$!%*?&", "Password must contain at least one special character"},
	}
	for _, c := range checks {
		if !strings.ContainsAny(password, c.class) {
			reasons = append(reasons, c.reason)
		}
	}
	return reasons
}

type credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Credentials checks a login form. Password strength is not enforced here;
// an existing account may predate the current policy.
func (va *Validator) Credentials(email, password string) error {
	return result(va.check(credentials{Email: email, Password: password}))
}

type registration struct {
	Email string `validate:"required,email"`
	Name  string `validate:"required,min=2,max=100"`
	Role  string `validate:"required,oneof=farmer veterinarian supplier customer"`
}

// Registration checks a signup form, including password strength.
func (va *Validator) Registration(req client.RegisterRequest) error {
	reasons := va.check(registration{
		Email: req.Email,
		Name:  req.Name,
		Role:  string(req.Role),
	})
	reasons = append(reasons, passwordReasons(req.Password)...)
	return result(reasons)
}

type farmInput struct {
	Name       string `validate:"required,min=2,max=100"`
	Address    string `validate:"required"`
	TotalBirds int    `validate:"required,min=1,max=1000000"`
	FarmType   string `validate:"required,oneof=broiler layer mixed"`
}

// Farm checks a farm creation form.
func (va *Validator) Farm(req client.CreateFarmRequest) error {
	return result(va.check(farmInput{
		Name:       req.Name,
		Address:    req.Location.Address,
		TotalBirds: req.TotalBirds,
		FarmType:   string(req.FarmType),
	}))
}

type customerInput struct {
	Name  string `validate:"required,min=2,max=100"`
	Type  string `validate:"required"`
	Email string `validate:"required,email"`
	Phone string `validate:"required,phone"`
}

// Customer checks a customer record form.
func (va *Validator) Customer(req client.CreateCustomerRequest) error {
	return result(va.check(customerInput{
		Name:  req.Name,
		Type:  req.Type,
		Email: req.Email,
		Phone: req.Phone,
	}))
}

type bookingInput struct {
	ServiceID string `validate:"required"`
	Notes     string `validate:"max=500"`
}

// Booking checks a service booking form. The scheduled date must lie in the
// future.
func (va *Validator) Booking(serviceID string, req client.BookServiceRequest) error {
	reasons := va.check(bookingInput{ServiceID: serviceID, Notes: req.Notes})
	if req.ScheduledDate.IsZero() {
		reasons = append(reasons, "scheduleddate is required")
	} else if !req.ScheduledDate.After(time.Now()) {
		reasons = append(reasons, "Scheduled date must be in the future")
	}
	return result(reasons)
}

type feedOrderInput struct {
	SupplierID string `validate:"required"`
}

// FeedOrder checks a feed order form: a supplier and at least one item.
func (va *Validator) FeedOrder(req client.PlaceFeedOrderRequest) error {
	reasons := va.check(feedOrderInput{SupplierID: req.SupplierID})
	if len(req.Items) == 0 {
		reasons = append(reasons, "items is required")
	}
	return result(reasons)
}
