package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/HavvokLab/contact-sync/model"
	"github.com/HavvokLab/contact-sync/service"
	"github.com/labstack/echo/v4"
)

const invalidInputPrefix = "Invalid input: "

type UserService interface {
	Find(ctx context.Context, q model.UserQuery) service.ServiceResponse
	UpdateCountOfOwnedCarsAndFindByExactAge(ctx context.Context, id string, countOfOwnedCars, age int) service.ServiceResponse
}

type ContactService interface {
	Sync(ctx context.Context) service.ServiceResponse
	LatestRun(ctx context.Context) service.ServiceResponse
}

func respond(c echo.Context, resp service.ServiceResponse) error {
	return c.JSON(resp.StatusCode, resp)
}

func invalidInput(c echo.Context, err error) error {
	reason := invalidInputReason(err)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		reason = fmt.Sprint(he.Message)
	}

	return respond(c, service.Failure(invalidInputPrefix+reason, http.StatusBadRequest))
}

type UserHandler struct {
	users UserService
}

func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

// FindUsers accepts a loosely typed filter object. Numbers may be sent as
// strings and unknown keys are ignored.
func (h *UserHandler) FindUsers(c echo.Context) error {
	var body map[string]any
	if err := c.Bind(&body); err != nil {
		return invalidInput(c, err)
	}

	q, err := model.DecodeUserQuery(body)
	if err != nil {
		return invalidInput(c, err)
	}

	return respond(c, h.users.Find(c.Request().Context(), q))
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	return respond(c, h.users.Find(c.Request().Context(), model.UserQuery{Age: c.QueryParam("age")}))
}

type updateUserRequest struct {
	ID               string `param:"id" json:"-" validate:"positive_int"`
	CountOfOwnedCars *int   `json:"countOfOwnedCars" validate:"required,gte=0"`
	Age              *int   `json:"age" validate:"required,gt=0"`
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return invalidInput(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return invalidInput(c, err)
	}

	return respond(c, h.users.UpdateCountOfOwnedCarsAndFindByExactAge(
		c.Request().Context(), req.ID, *req.CountOfOwnedCars, *req.Age,
	))
}

type ContactHandler struct {
	contacts ContactService
}

func NewContactHandler(contacts ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

func (h *ContactHandler) Sync(c echo.Context) error {
	return respond(c, h.contacts.Sync(c.Request().Context()))
}

func (h *ContactHandler) LatestRun(c echo.Context) error {
	return respond(c, h.contacts.LatestRun(c.Request().Context()))
}
