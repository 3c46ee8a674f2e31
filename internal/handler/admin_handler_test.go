package handler

import (
	"net/http"
	"testing"

	jsonpath "github.com/steinfletcher/apitest-jsonpath"

	"github.com/google/uuid"
	"github.com/steinfletcher/apitest"
	"github.com/stretchr/testify/mock"

	apperrors "divelog/internal/errors"
	"divelog/internal/model"
	"divelog/internal/repository"
)

func TestAdminListUsersEndpoint(t *testing.T) {
	svc := new(MockAdminService)
	caller := uuid.New()
	e := newTestEcho()
	e.GET("/api/admin/users", NewAdminHandler(svc).ListUsers, authAs(caller, "root"))

	svc.On("ListUsers", mock.Anything, caller).Return([]repository.UserWithRole{
		{User: model.User{ID: uuid.New(), Pseudo: "alice"}, Admin: false},
		{User: model.User{ID: caller, Pseudo: "root"}, Admin: true},
	}, nil)

	apitest.New().
		Handler(e).
		Get("/api/admin/users").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.total`, float64(2))).
		Assert(jsonpath.Equal(`$.users[1].admin`, true)).
		End()
}

func TestAdminListUsersEndpoint_NotAdmin(t *testing.T) {
	svc := new(MockAdminService)
	caller := uuid.New()
	e := newTestEcho()
	e.GET("/api/admin/users", NewAdminHandler(svc).ListUsers, authAs(caller, "alice"))

	svc.On("ListUsers", mock.Anything, caller).Return(nil, apperrors.ErrAdminRequired)

	apitest.New().
		Handler(e).
		Get("/api/admin/users").
		Expect(t).
		Status(http.StatusForbidden).
		Assert(jsonpath.Equal(`$.code`, "ADMIN_REQUIRED")).
		End()
}

func TestAdminBlockUserEndpoint(t *testing.T) {
	svc := new(MockAdminService)
	caller := uuid.New()
	target := uuid.New()
	e := newTestEcho()
	e.PATCH("/api/admin/users/:id/block", NewAdminHandler(svc).BlockUser, authAs(caller, "root"))

	svc.On("SetBlocked", mock.Anything, caller, target, true).
		Return(&model.User{ID: target, Pseudo: "alice", Blocked: true}, nil)

	apitest.New().
		Handler(e).
		Patch("/api/admin/users/" + target.String() + "/block").
		JSON(`{"blocked":true}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.message`, "user blocked")).
		Assert(jsonpath.Equal(`$.user.blocked`, true)).
		End()
}

func TestAdminBlockUserEndpoint_MissingFlag(t *testing.T) {
	svc := new(MockAdminService)
	caller := uuid.New()
	e := newTestEcho()
	e.PATCH("/api/admin/users/:id/block", NewAdminHandler(svc).BlockUser, authAs(caller, "root"))

	apitest.New().
		Handler(e).
		Patch("/api/admin/users/" + uuid.NewString() + "/block").
		JSON(`{}`).
		Expect(t).
		Status(http.StatusBadRequest).
		End()
	svc.AssertNotCalled(t, "SetBlocked", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminPromoteUserEndpoint(t *testing.T) {
	svc := new(MockAdminService)
	caller := uuid.New()
	target := uuid.New()
	e := newTestEcho()
	e.PATCH("/api/admin/users/:id/promote", NewAdminHandler(svc).PromoteUser, authAs(caller, "root"))

	svc.On("SetAdmin", mock.Anything, caller, target, true).Return(nil)

	apitest.New().
		Handler(e).
		Patch("/api/admin/users/" + target.String() + "/promote").
		JSON(`{"admin":true}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.message`, "user promoted to admin")).
		End()
}

func TestAdminDeleteUserEndpoint_Self(t *testing.T) {
	svc := new(MockAdminService)
	caller := uuid.New()
	e := newTestEcho()
	e.DELETE("/api/admin/users/:id", NewAdminHandler(svc).DeleteUser, authAs(caller, "root"))

	svc.On("DeleteUser", mock.Anything, caller, caller).Return(apperrors.ErrSelfDelete)

	apitest.New().
		Handler(e).
		Delete("/api/admin/users/" + caller.String()).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal(`$.code`, "SELF_DELETE")).
		End()
}

func TestAdminDeleteUserEndpoint_BadID(t *testing.T) {
	svc := new(MockAdminService)
	caller := uuid.New()
	e := newTestEcho()
	e.DELETE("/api/admin/users/:id", NewAdminHandler(svc).DeleteUser, authAs(caller, "root"))

	apitest.New().
		Handler(e).
		Delete("/api/admin/users/not-a-uuid").
		Expect(t).
		Status(http.StatusBadRequest).
		End()
	svc.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything, mock.Anything)
}
