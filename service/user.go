package service

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/HavvokLab/contact-sync/model"
	"github.com/HavvokLab/contact-sync/pkg/logger"
	"github.com/HavvokLab/contact-sync/query"
	"github.com/HavvokLab/contact-sync/repo"
	"github.com/rs/zerolog"
)

const (
	MsgUsersFound      = "Users found"
	MsgNoUsersFound    = "No Users found"
	MsgUserNotFound    = "User not found"
	MsgFindUsersError  = "An error occurred while finding users."
	MsgUpdateUserError = "An error occurred while finding user."
	MsgInvalidAge      = "Invalid input: AGE must be a positive number"
)

type UserService struct {
	userRepo    repo.UserRepo
	ageSearcher repo.AgeSearcher
	logger      zerolog.Logger
}

func NewUserService(userRepo repo.UserRepo, ageSearcher repo.AgeSearcher) *UserService {
	return &UserService{
		userRepo:    userRepo,
		ageSearcher: ageSearcher,
		logger:      logger.New("user_service.log"),
	}
}

// Find routes a loose user query: a present, non-zero age selects the
// exact-age search, otherwise the filters are applied.
func (s *UserService) Find(ctx context.Context, q model.UserQuery) ServiceResponse {
	if q.HasAge() {
		age, err := ParseAge(q.Age)
		if err != nil {
			return Failure(MsgInvalidAge, http.StatusBadRequest)
		}
		return s.FindByExactAge(ctx, age)
	}

	return s.FindUsers(ctx, q.FilterParams)
}

func (s *UserService) FindUsers(ctx context.Context, params model.FilterParams) ServiceResponse {
	users, err := s.userRepo.Search(ctx, query.Build(params))
	if err != nil {
		s.logger.Error().Err(err).Any("params", params).Msg("UserService::FindUsers() - failed to search users")
		return Failure(MsgFindUsersError, http.StatusInternalServerError)
	}

	if len(users) == 0 {
		return Failure(MsgNoUsersFound, http.StatusNotFound)
	}

	return Success(MsgUsersFound, users)
}

func (s *UserService) FindByExactAge(ctx context.Context, age int) ServiceResponse {
	users, err := s.ageSearcher.SearchByExactAge(ctx, age)
	if err != nil {
		s.logger.Error().Err(err).Int("age", age).Msg("UserService::FindByExactAge() - failed to search users")
		return Failure(MsgFindUsersError, http.StatusInternalServerError)
	}

	if len(users) == 0 {
		return Failure(MsgNoUsersFound, http.StatusNotFound)
	}

	return Success(MsgUsersFound, users)
}

func (s *UserService) UpdateCountOfOwnedCarsAndFindByExactAge(ctx context.Context, id string, countOfOwnedCars, age int) ServiceResponse {
	s.logger.Info().Str("id", id).Int("count_of_owned_cars", countOfOwnedCars).Msg("UserService::UpdateCountOfOwnedCarsAndFindByExactAge() - update")

	if err := s.userRepo.UpdateField(ctx, id, model.FieldCountOfOwnedCars, countOfOwnedCars); err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("UserService::UpdateCountOfOwnedCarsAndFindByExactAge() - failed to update user")
		if errors.Is(err, repo.ErrUserNotFound) {
			return Failure(MsgUserNotFound, http.StatusNotFound)
		}
		return Failure(MsgUpdateUserError, http.StatusInternalServerError)
	}

	return s.FindByExactAge(ctx, age)
}

var ErrInvalidAge = errors.New("age must be a positive number")

// ParseAge accepts a positive integer in decimal form.
func ParseAge(raw string) (int, error) {
	age, err := strconv.Atoi(raw)
	if err != nil || age <= 0 {
		return 0, ErrInvalidAge
	}

	return age, nil
}
