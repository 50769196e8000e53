// Package validation provides struct-tag and programmatic validation that
// reports failures as *errors.AppError with per-field details.
//
// # Struct Tag Validation
//
//	type Config struct {
//	    Count  int    `mapstructure:"count" validate:"min=1,max=1000"`
//	    Format string `mapstructure:"format" validate:"required,intverb"`
//	}
//	err := validation.Validate(cfg)
//
// Field names in messages come from the mapstructure tag, then the json tag,
// then the snake_cased Go name. The intverb tag accepts printf formats with
// exactly one integer verb.
//
// # Programmatic Validation
//
//	err := validation.New().
//	    OneOf("demo", demo, []string{"all", "scores"}).
//	    Range("count", count, 1, 1000).
//	    Validate()
package validation
