package dto

import (
	"errors"
	"net"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	registerOnce sync.Once
	registerErr  error
	hostValidate = validator.New()
)

// RegisterValidators installs the custom binding rules on gin's validator engine
// and makes field errors report JSON/query names instead of Go field names.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})

		registerErr = errors.Join(
			v.RegisterValidation("projectdomain", func(fl validator.FieldLevel) bool {
				return IsValidDomain(fl.Field().String())
			}),
			v.RegisterValidation("trimmedemail", func(fl validator.FieldLevel) bool {
				return IsValidEmail(fl.Field().String())
			}),
		)
	})
	return registerErr
}

// NormalizeDomain reduces user input such as "https://Example.com/path" to a bare lowercase host.
func NormalizeDomain(raw string) string {
	d := strings.ToLower(strings.TrimSpace(raw))
	if i := strings.Index(d, "://"); i >= 0 {
		d = d[i+3:]
	}
	if i := strings.IndexAny(d, "/?#"); i >= 0 {
		d = d[:i]
	}
	if host, _, err := net.SplitHostPort(d); err == nil {
		d = host
	}
	return strings.TrimSuffix(d, ".")
}

// IsValidDomain reports whether raw normalizes to an RFC 1123 hostname.
func IsValidDomain(raw string) bool {
	d := NormalizeDomain(raw)
	if d == "" {
		return false
	}
	return hostValidate.Var(d, "hostname_rfc1123") == nil
}

// NormalizeEmail trims and lowercases an address before it is checked or stored.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// IsValidEmail checks the address after normalization, so surrounding spaces are not an error.
func IsValidEmail(raw string) bool {
	e := NormalizeEmail(raw)
	return e != "" && hostValidate.Var(e, "email") == nil
}
