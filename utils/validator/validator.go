package validatorx

import (
	"sync"

	gpvalidator "github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *gpvalidator.Validate
)

// Init builds the shared validator instance. Safe to call more than once.
func Init() {
	once.Do(func() {
		v = gpvalidator.New()
	})
}

// ValidateStruct checks the struct's `validate` tags against the shared
// instance, initializing it on first use.
func ValidateStruct(s interface{}) error {
	if v == nil {
		Init()
	}
	return v.Struct(s)
}
