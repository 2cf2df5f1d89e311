package main

import (
	"context"
	"flag"
	"strconv"

	"github.com/HavvokLab/contact-sync/bootstrap"
	"github.com/HavvokLab/contact-sync/config"
	"github.com/HavvokLab/contact-sync/model"
	"github.com/HavvokLab/contact-sync/pkg/logger"
	"github.com/HavvokLab/contact-sync/pkg/util"
	"github.com/rs/zerolog/log"
)

func main() {
	fName := flag.String("fname", "", "first name")
	lName := flag.String("lname", "", "last name")
	cars := flag.Int("cars", 0, "match users owning more than this many cars")
	age := flag.Int("age", 0, "exact age, takes priority over the other filters")
	flag.Parse()

	logger.Init("query.log")
	ctx := context.Background()

	app, err := bootstrap.New(ctx, config.GetConfig())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to bootstrap")
	}

	q := model.UserQuery{
		FilterParams: model.FilterParams{FName: *fName, LName: *lName, CountOfOwnedCars: *cars},
	}
	if *age != 0 {
		q.Age = strconv.Itoa(*age)
	}

	util.PrintJSON(app.UserService.Find(ctx, q))
}
