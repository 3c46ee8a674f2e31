package handler

import (
	"net/http"
	"testing"

	jsonpath "github.com/steinfletcher/apitest-jsonpath"

	"github.com/steinfletcher/apitest"
	"github.com/stretchr/testify/mock"

	"divelog/internal/model"
	"divelog/internal/service"
)

func TestCatalogEndpoint_Defaults(t *testing.T) {
	svc := new(MockSpeciesService)
	e := newTestEcho()
	e.GET("/api/species", NewSpeciesHandler(svc).Catalog)

	svc.On("CatalogPage", mock.Anything, 1, 12, "").Return(&service.CatalogPage{
		Especes:    []model.Species{{ID: 1, Nom: "Clownfish"}},
		Total:      25,
		Page:       1,
		Limit:      12,
		TotalPages: 3,
	}, nil)

	apitest.New().
		Handler(e).
		Get("/api/species").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.totalPages`, float64(3))).
		Assert(jsonpath.Equal(`$.especes[0].nom`, "Clownfish")).
		End()
}

func TestCatalogEndpoint_SearchAndPaging(t *testing.T) {
	svc := new(MockSpeciesService)
	e := newTestEcho()
	e.GET("/api/species", NewSpeciesHandler(svc).Catalog)

	svc.On("CatalogPage", mock.Anything, 2, 5, "fish").Return(&service.CatalogPage{
		Especes:    []model.Species{},
		Total:      6,
		Page:       2,
		Limit:      5,
		TotalPages: 2,
	}, nil)

	apitest.New().
		Handler(e).
		Get("/api/species").
		Query("page", "2").
		Query("limit", "5").
		Query("search", "fish").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.page`, float64(2))).
		End()
}

func TestCreateSpeciesEndpoint_Idempotent(t *testing.T) {
	svc := new(MockSpeciesService)
	e := newTestEcho()
	e.POST("/api/species", NewSpeciesHandler(svc).Create)

	existing := &model.Species{ID: 4, Nom: "Clownfish"}
	svc.On("LookupOrCreate", mock.Anything, "Clownfish", (*string)(nil)).
		Return(existing, false, nil).Once()

	apitest.New().
		Handler(e).
		Post("/api/species").
		JSON(`{"nom":"Clownfish"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.espece.id`, float64(4))).
		End()

	svc.On("LookupOrCreate", mock.Anything, "Manta ray", (*string)(nil)).
		Return(&model.Species{ID: 5, Nom: "Manta ray"}, true, nil).Once()

	apitest.New().
		Handler(e).
		Post("/api/species").
		JSON(`{"nom":"Manta ray"}`).
		Expect(t).
		Status(http.StatusCreated).
		End()
}
