// Package patient implements the patient record domain: the validated
// patient model with its derived body-mass-index fields, the record store
// abstraction, and the HTTP surface for managing records.
package patient

import (
	"math"

	"github.com/go-playground/validator/v10"
)

// Verdict values derived from the BMI thresholds.
const (
	VerdictUnderweight = "Underweight"
	VerdictNormal      = "Normal"
	VerdictOverweight  = "Overweight"
	VerdictObesity     = "Obesity"
)

// Patient is the fully specified inbound payload. The id is the store key
// and is immutable after creation; it never appears inside a stored record.
type Patient struct {
	ID     string  `json:"id" validate:"required"`
	Name   string  `json:"name" validate:"required"`
	City   string  `json:"city" validate:"required"`
	Age    int     `json:"age" validate:"required,gt=0,lt=120"`
	Gender string  `json:"gender" validate:"required,oneof=male female others"`
	Height float64 `json:"height" validate:"required,gt=0"`
	Weight float64 `json:"weight" validate:"required,gt=0"`
}

// Record is the persisted and returned shape of a patient. BMI and Verdict
// are derived from Height and Weight on every materialization and are never
// accepted from callers.
type Record struct {
	Name    string  `json:"name"`
	City    string  `json:"city"`
	Age     int     `json:"age"`
	Gender  string  `json:"gender"`
	Height  float64 `json:"height"`
	Weight  float64 `json:"weight"`
	BMI     float64 `json:"bmi"`
	Verdict string  `json:"verdict"`
}

// Update is a partial patch. Nil fields mean "leave unchanged", not "clear".
type Update struct {
	Name   *string  `json:"name"`
	City   *string  `json:"city"`
	Age    *int     `json:"age"`
	Gender *string  `json:"gender"`
	Height *float64 `json:"height"`
	Weight *float64 `json:"weight"`
}

var validate = validator.New()

// Validate checks every field constraint. It returns
// validator.ValidationErrors so callers can map individual field failures.
func (p Patient) Validate() error {
	return validate.Struct(p)
}

// BMI computes weight(kg)/height(m)² rounded to two decimal places.
// A non-positive height yields 0 rather than a division blowup; validation
// keeps that branch unreachable for stored records.
func BMI(height, weight float64) float64 {
	if height <= 0 {
		return 0
	}
	return math.Round(weight/(height*height)*100) / 100
}

// VerdictFor classifies a rounded BMI value.
func VerdictFor(bmi float64) string {
	switch {
	case bmi < 18.5:
		return VerdictUnderweight
	case bmi < 25:
		return VerdictNormal
	case bmi < 30:
		return VerdictOverweight
	default:
		return VerdictObesity
	}
}

// Record materializes the persisted shape, deriving BMI and Verdict from the
// current height and weight. This is the only constructor for Record, so
// derived fields can never go stale relative to their inputs.
func (p Patient) Record() Record {
	bmi := BMI(p.Height, p.Weight)
	return Record{
		Name:    p.Name,
		City:    p.City,
		Age:     p.Age,
		Gender:  p.Gender,
		Height:  p.Height,
		Weight:  p.Weight,
		BMI:     bmi,
		Verdict: VerdictFor(bmi),
	}
}

// Patient reattaches the store key to a record, producing the full payload
// used for re-validation during updates. Derived fields are dropped; they
// are recomputed by Record().
func (r Record) Patient(id string) Patient {
	return Patient{
		ID:     id,
		Name:   r.Name,
		City:   r.City,
		Age:    r.Age,
		Gender: r.Gender,
		Height: r.Height,
		Weight: r.Weight,
	}
}

// Apply overlays the patch's present fields onto a copy of the record.
// Derived fields are left untouched here; the caller must rebuild the
// record through Patient().Record() to revalidate and re-derive.
func (r Record) Apply(u Update) Record {
	if u.Name != nil {
		r.Name = *u.Name
	}
	if u.City != nil {
		r.City = *u.City
	}
	if u.Age != nil {
		r.Age = *u.Age
	}
	if u.Gender != nil {
		r.Gender = *u.Gender
	}
	if u.Height != nil {
		r.Height = *u.Height
	}
	if u.Weight != nil {
		r.Weight = *u.Weight
	}
	return r
}
