package main

import (
	"testing"

	"github.com/HavvokLab/contact-sync/model"
	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedCSV = `id,first_name,last_name,date_of_birth,count_of_owned_cars
1,John,Patrick,1990-05-17,2
2,Adam,Kowalski,,
3,,Nowak,1985-01-01,1
4,Eve,Smith,17/05/1990,1
5,Tom,Lee,2001-12-31,-3
`

func TestValidateKeepsValidRows(t *testing.T) {
	var rows []model.SeedUser
	require.NoError(t, gocsv.UnmarshalString(seedCSV, &rows))
	require.Len(t, rows, 5)

	users := Validate(rows)

	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	assert.Equal(t, []string{"1", "2"}, ids)

	assert.Equal(t, 2, *users[0].User.CountOfOwnedCars)
	assert.Equal(t, "1990-05-17", users[0].User.DateOfBirth.Format(model.SeedDateLayout))
	assert.Nil(t, users[1].User.DateOfBirth)
	assert.Nil(t, users[1].User.CountOfOwnedCars)
}
