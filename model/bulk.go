package model

import "time"

const SeedDateLayout = "2006-01-02"

// SeedUser is one CSV row loaded by the seed command.
type SeedUser struct {
	ID               string `csv:"id" validate:"required"`
	FirstName        string `csv:"first_name" validate:"required"`
	LastName         string `csv:"last_name" validate:"required"`
	DateOfBirth      string `csv:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	CountOfOwnedCars *int   `csv:"count_of_owned_cars,omitempty" validate:"omitempty,min=0"`
}

func (s SeedUser) ToIdentifiedUser() (IdentifiedUser, error) {
	user := User{
		FName:            s.FirstName,
		LName:            s.LastName,
		CountOfOwnedCars: s.CountOfOwnedCars,
	}

	if s.DateOfBirth != "" {
		dob, err := time.Parse(SeedDateLayout, s.DateOfBirth)
		if err != nil {
			return IdentifiedUser{}, err
		}
		user.DateOfBirth = &dob
	}

	return IdentifiedUser{ID: s.ID, User: user}, nil
}
