package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

const (
	FieldFName            = "fName"
	FieldLName            = "lName"
	FieldDateOfBirth      = "dateOfBirth"
	FieldCountOfOwnedCars = "countOfOwnedCars"
	FieldAge              = "age"
)

// User is the document stored in the users index.
type User struct {
	FName            string     `json:"fName"`
	LName            string     `json:"lName"`
	DateOfBirth      *time.Time `json:"dateOfBirth,omitempty"`
	CountOfOwnedCars *int       `json:"countOfOwnedCars,omitempty"`
}

// UnmarshalJSON accepts dateOfBirth both as an RFC 3339 timestamp and as a
// plain yyyy-MM-dd date, the two forms the index date mapping stores.
func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	aux := struct {
		*alias
		DateOfBirth *string `json:"dateOfBirth,omitempty"`
	}{alias: (*alias)(u)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	u.DateOfBirth = nil
	if aux.DateOfBirth == nil || *aux.DateOfBirth == "" {
		return nil
	}

	for _, layout := range []string{time.RFC3339Nano, SeedDateLayout} {
		if dob, err := time.Parse(layout, *aux.DateOfBirth); err == nil {
			u.DateOfBirth = &dob
			return nil
		}
	}

	return fmt.Errorf("invalid dateOfBirth %q", *aux.DateOfBirth)
}

// IdentifiedUser pairs a user with the document id it is stored under.
type IdentifiedUser struct {
	ID   string
	User User
}

type UserWithAge struct {
	FName            string     `json:"fName"`
	LName            string     `json:"lName"`
	DateOfBirth      *time.Time `json:"dateOfBirth,omitempty"`
	CountOfOwnedCars *int       `json:"countOfOwnedCars,omitempty"`
	Age              *int       `json:"age,omitempty"`
}

func NewUserWithAge(u User, age *int) UserWithAge {
	return UserWithAge{
		FName:            u.FName,
		LName:            u.LName,
		DateOfBirth:      u.DateOfBirth,
		CountOfOwnedCars: u.CountOfOwnedCars,
		Age:              age,
	}
}

// FilterParams holds the optional filters of a user search. Zero values mean
// the filter is absent.
type FilterParams struct {
	FName            string `json:"fName,omitempty" mapstructure:"fName"`
	LName            string `json:"lName,omitempty" mapstructure:"lName"`
	CountOfOwnedCars int    `json:"countOfOwnedCars,omitempty" mapstructure:"countOfOwnedCars"`
}

func (p FilterParams) IsEmpty() bool {
	return p.FName == "" && p.LName == "" && p.CountOfOwnedCars == 0
}

// UserQuery is the inbound filter object. Age, when set, selects the
// exact-age search instead of the filter search.
type UserQuery struct {
	FilterParams `mapstructure:",squash"`
	Age          string `json:"age,omitempty" mapstructure:"age"`
	ID           string `json:"id,omitempty" mapstructure:"id"`
}

// HasAge reports whether an age was given. Zero counts as absent, the same
// way zero filters do.
func (q UserQuery) HasAge() bool {
	return q.Age != "" && q.Age != "0"
}

// DecodeUserQuery converts loosely typed input, such as a decoded JSON body or
// query string values, into a UserQuery. Numbers and numeric strings are
// accepted interchangeably.
func DecodeUserQuery(input map[string]any) (UserQuery, error) {
	var q UserQuery
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &q,
	})
	if err != nil {
		return q, err
	}

	if err := decoder.Decode(input); err != nil {
		return q, err
	}

	return q, nil
}
