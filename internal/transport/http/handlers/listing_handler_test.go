package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BorisVilhard/IT-MAXI-BE/internal/domain/enums"
	"github.com/BorisVilhard/IT-MAXI-BE/internal/domain/model"
	pgrepo "github.com/BorisVilhard/IT-MAXI-BE/internal/repo/postgres"
	listingsvc "github.com/BorisVilhard/IT-MAXI-BE/internal/services/listings"
)

type stubListingProfiles struct {
	profiles []*model.Profile
}

func (s *stubListingProfiles) ListVisible(context.Context) ([]*model.Profile, error) {
	var out []*model.Profile
	for _, p := range s.profiles {
		if p.JobPostVisibility {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubListingProfiles) ListWithCourses(context.Context) ([]*model.Profile, error) {
	var out []*model.Profile
	for _, p := range s.profiles {
		if len(p.Courses) > 0 {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubListingProfiles) FindByCourseID(_ context.Context, courseID string) (*model.Profile, error) {
	for _, p := range s.profiles {
		if p.FindCourse(courseID) != nil {
			return p, nil
		}
	}
	return nil, pgrepo.ErrProfileNotFound
}

func newListingHandlerFixture() *ListingHandler {
	profiles := &stubListingProfiles{profiles: []*model.Profile{
		{
			UserID:            1,
			JobPostVisibility: true,
			ActiveRole:        "company",
			JobDescriptions: []model.JobDescription{
				{ID: "j1", Position: "Backend Engineer", RoleType: enums.RoleTypeCompany},
				{ID: "j2", Position: "Frontend Engineer", RoleType: enums.RoleTypeRegular},
			},
			Courses: []model.Course{
				{ID: "c1", Title: "Go from scratch"},
			},
		},
		{
			UserID:            2,
			JobPostVisibility: false,
			JobDescriptions: []model.JobDescription{
				{ID: "j3", Position: "Hidden role", RoleType: enums.RoleTypeCompany},
			},
		},
	}}
	users := &stubInteractionUsers{users: map[int64]model.User{
		1: {ID: 1, Username: "acme"},
		2: {ID: 2, Username: "ghost"},
	}}
	return NewListingHandler(listingsvc.NewService(profiles, users, "http://localhost:8080"))
}

func TestJobsListingFlattensVisibleProfiles(t *testing.T) {
	h := newListingHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/list/job-descriptions", nil)
	rr := httptest.NewRecorder()
	h.Jobs(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusOK)
	}

	var page struct {
		Items []struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"items"`
		Total       int `json:"total"`
		CurrentPage int `json:"currentPage"`
		TotalPages  int `json:"totalPages"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if page.Total != 2 || len(page.Items) != 2 {
		t.Fatalf("unexpected page: %+v", page)
	}
	if page.Items[0].Username != "acme" {
		t.Fatalf("username not enriched: %+v", page.Items[0])
	}
	if page.CurrentPage != 1 || page.TotalPages != 1 {
		t.Fatalf("unexpected pagination: %+v", page)
	}
}

func TestJobsByRoleTypeRejectsUnknownRole(t *testing.T) {
	h := newListingHandlerFixture()

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/list/job-descriptions/banana", nil), "roleType", "banana")
	rr := httptest.NewRecorder()
	h.JobsByRoleType(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestCourseLookup(t *testing.T) {
	h := newListingHandlerFixture()

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/list/courses/c1", nil), "courseId", "c1")
	rr := httptest.NewRecorder()
	h.Course(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusOK)
	}

	req = withURLParam(httptest.NewRequest(http.MethodGet, "/list/courses/missing", nil), "courseId", "missing")
	rr = httptest.NewRecorder()
	h.Course(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusNotFound)
	}
}
