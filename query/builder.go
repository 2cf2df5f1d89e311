// Package query turns loose user filters into Elasticsearch queries.
package query

import (
	"github.com/HavvokLab/contact-sync/model"
	"github.com/olivere/elastic/v7"
)

// Build returns the query for the first filter present, checked in the order
// fName, lName, countOfOwnedCars. Filters are never combined. With no filter
// it matches every document.
//
// countOfOwnedCars matches strictly greater counts.
func Build(params model.FilterParams) elastic.Query {
	switch {
	case params.IsEmpty():
		return elastic.NewMatchAllQuery()
	case params.FName != "":
		return elastic.NewMatchQuery(model.FieldFName, params.FName)
	case params.LName != "":
		return elastic.NewMatchQuery(model.FieldLName, params.LName)
	default:
		return elastic.NewRangeQuery(model.FieldCountOfOwnedCars).Gt(params.CountOfOwnedCars)
	}
}

// ExactAge matches documents whose derived age field equals age.
func ExactAge(age int) elastic.Query {
	return elastic.NewMatchQuery(model.FieldAge, age)
}
