package topology

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/edvin/regionfailover/internal/model"
)

// DefaultStage is the deployment stage used when none is configured.
const DefaultStage = "prod"

var validate = validator.New()

func init() {
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("field"); name != "" {
			return name
		}
		return f.Name
	})
	validate.RegisterValidation("supported_region", func(fl validator.FieldLevel) bool {
		return model.Region(fl.Field().String()).IsSupported()
	})
}

// Input holds everything one topology composition needs. Main carries the
// main role for the whole call; it is never looked up elsewhere.
type Input struct {
	AppName      string         `field:"app_name" validate:"required"`
	Stage        string         `field:"stage"`
	Main         model.Region   `field:"region" validate:"required,supported_region"`
	Secondaries  []model.Region `field:"secondary_regions" validate:"unique,dive,supported_region"`
	HostedZoneID string         `field:"hosted_zone_id" validate:"required"`
	DomainName   string         `field:"domain_name" validate:"required,fqdn"`
	TableSuffix  string         `field:"table_suffix"`
}

// Validate checks the input and returns a *ConfigurationError naming the
// first offending field.
func (in Input) Validate() error {
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return configErrorFrom(verrs[0])
		}
		return &ConfigurationError{Field: "input", Reason: err.Error()}
	}

	for _, r := range in.Secondaries {
		if r == in.Main {
			return &ConfigurationError{
				Field:  "secondary_regions",
				Reason: fmt.Sprintf("main region %s cannot also be secondary", r),
			}
		}
	}
	return nil
}

func (in Input) withDefaults() Input {
	if in.Stage == "" {
		in.Stage = DefaultStage
	}
	return in
}

func configErrorFrom(fe validator.FieldError) *ConfigurationError {
	field := fe.Field()
	var reason string
	switch fe.Tag() {
	case "required":
		reason = "is required"
	case "supported_region":
		reason = fmt.Sprintf("unsupported region %q", fe.Value())
	case "fqdn":
		reason = fmt.Sprintf("%q is not a fully qualified domain name", fe.Value())
	case "unique":
		reason = "contains duplicate regions"
	default:
		reason = fmt.Sprintf("failed %q validation", fe.Tag())
	}
	return &ConfigurationError{Field: field, Reason: reason}
}
