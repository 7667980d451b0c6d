package handlers_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/example/startupvillage/internal/handlers"
	"github.com/example/startupvillage/internal/models"
	"github.com/example/startupvillage/internal/utils"
)

type feedbackFixture struct {
	startup *models.Startup
	faculty *models.Faculty
	request *models.ConnectRequest
}

func (s *testServer) feedbackFixture(t *testing.T) feedbackFixture {
	t.Helper()
	ctx := context.Background()

	startup := &models.Startup{Name: "Scare Floor", Slug: "scare-floor"}
	if err := s.store.Startups.Create(ctx, startup); err != nil {
		t.Fatalf("create startup: %v", err)
	}
	s.user(t, "founder", func(u *models.User) { u.StartupID = &startup.ID })

	faculty := &models.Faculty{Name: "Henry Waternoose", Token: "faculty-token"}
	if err := s.store.Faculty.Create(ctx, faculty); err != nil {
		t.Fatalf("create faculty: %v", err)
	}

	req := &models.ConnectRequest{StartupID: startup.ID, FacultyID: faculty.ID}
	if err := s.store.ConnectRequests.Create(ctx, req); err != nil {
		t.Fatalf("create connect request: %v", err)
	}
	return feedbackFixture{startup: startup, faculty: faculty, request: req}
}

func (s *testServer) connectRequest(t *testing.T, f feedbackFixture) *models.ConnectRequest {
	t.Helper()
	req, err := s.store.ConnectRequests.FindForStartup(context.Background(), f.startup.ID, f.request.ID)
	if err != nil {
		t.Fatalf("reload connect request: %v", err)
	}
	return req
}

func expectFlash(t *testing.T, resp *http.Response, cookie, message string) {
	t.Helper()
	expectStatus(t, resp, fiber.StatusFound)
	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
	for _, c := range resp.Cookies() {
		if c.Name != cookie {
			continue
		}
		got, err := url.QueryUnescape(c.Value)
		if err != nil {
			t.Fatalf("unescape flash: %v", err)
		}
		if got != message {
			t.Fatalf("expected flash %q, got %q", message, got)
		}
		return
	}
	t.Fatalf("missing %s cookie", cookie)
}

const (
	savedFlash  = "Thank you! Your rating of the connect session has been saved."
	failedFlash = "We're sorry, but something went wrong when we tried to save that rating."
)

func TestFeedbackRatingsAreIndependent(t *testing.T) {
	s := newTestServer(t)
	f := s.feedbackFixture(t)

	resp := s.do(t, http.MethodGet, path("/connect_request/%d/feedback/from_team/founder?rating=4", f.request.ID), nil, "")
	expectFlash(t, resp, handlers.FlashSuccessCookie, savedFlash)

	got := s.connectRequest(t, f)
	if got.RatingOfFaculty == nil || *got.RatingOfFaculty != 4 || got.RatingOfTeam != nil {
		t.Fatalf("team feedback must only set rating_of_faculty: %+v", got)
	}

	resp = s.do(t, http.MethodGet, path("/connect_request/%d/feedback/from_faculty/faculty-token?rating=2", f.request.ID), nil, "")
	expectFlash(t, resp, handlers.FlashSuccessCookie, savedFlash)

	got = s.connectRequest(t, f)
	if got.RatingOfFaculty == nil || *got.RatingOfFaculty != 4 {
		t.Fatalf("faculty feedback altered rating_of_faculty: %+v", got)
	}
	if got.RatingOfTeam == nil || *got.RatingOfTeam != 2 {
		t.Fatalf("expected rating_of_team 2, got %+v", got.RatingOfTeam)
	}
}

func TestFeedbackInvalidRatingFlashesError(t *testing.T) {
	s := newTestServer(t)
	f := s.feedbackFixture(t)

	for _, query := range []string{"?rating=9", "?rating=0", "?rating=great", ""} {
		resp := s.do(t, http.MethodGet, path("/connect_request/%d/feedback/from_faculty/faculty-token%s", f.request.ID, query), nil, "")
		expectFlash(t, resp, handlers.FlashErrorCookie, failedFlash)
	}

	if got := s.connectRequest(t, f); got.RatingOfTeam != nil {
		t.Fatalf("invalid ratings must not be stored, got %d", *got.RatingOfTeam)
	}
}

func TestFeedbackLookupFailuresAreNotFound(t *testing.T) {
	s := newTestServer(t)
	f := s.feedbackFixture(t)

	other := &models.Faculty{Name: "Other", Token: "other-token"}
	if err := s.store.Faculty.Create(context.Background(), other); err != nil {
		t.Fatalf("create faculty: %v", err)
	}
	s.user(t, "outsider", nil)

	cases := []string{
		path("/connect_request/%d/feedback/from_team/unknown?rating=3", f.request.ID),
		path("/connect_request/%d/feedback/from_team/outsider?rating=3", f.request.ID),
		path("/connect_request/%d/feedback/from_faculty/unknown?rating=3", f.request.ID),
		path("/connect_request/%d/feedback/from_faculty/other-token?rating=3", f.request.ID),
		path("/connect_request/%d/feedback/from_faculty/faculty-token?rating=3", f.request.ID+100),
		"/connect_request/abc/feedback/from_faculty/faculty-token?rating=3",
	}
	for _, target := range cases {
		resp := s.do(t, http.MethodGet, target, nil, "")
		expectStatus(t, resp, fiber.StatusNotFound)
	}
}

func TestFacultyDirectoryPaginates(t *testing.T) {
	s := newTestServer(t)
	for _, name := range []string{"Celia", "Mike", "Roz"} {
		if err := s.store.Faculty.Create(context.Background(), &models.Faculty{Name: name, Token: name}); err != nil {
			t.Fatalf("create faculty: %v", err)
		}
	}

	resp := s.do(t, http.MethodGet, "/api/faculty?page=2&limit=2", nil, "")
	expectStatus(t, resp, fiber.StatusOK)

	body := decode[struct {
		Data []struct {
			Name  string `json:"name"`
			Token string `json:"token"`
		} `json:"data"`
		Pagination struct {
			CurrentPage int `json:"current_page"`
			TotalItems  int `json:"total_items"`
		} `json:"pagination"`
	}](t, resp)

	if len(body.Data) != 1 || body.Data[0].Name != "Roz" {
		t.Fatalf("unexpected page %+v", body.Data)
	}
	if body.Data[0].Token != "" {
		t.Fatalf("faculty token leaked")
	}
	if body.Pagination.CurrentPage != 2 || body.Pagination.TotalItems != 3 {
		t.Fatalf("unexpected pagination %+v", body.Pagination)
	}
}

func TestCreateConnectRequest(t *testing.T) {
	s := newTestServer(t)
	f := s.feedbackFixture(t)
	s.user(t, "solo", nil)

	resp := s.do(t, http.MethodPost, "/api/startups/self/connect_requests", fiber.Map{"faculty_id": f.faculty.ID, "questions": "How to scale?"}, "solo")
	expectError(t, resp, fiber.StatusNotFound, "UserHasNoStartup")

	resp = s.do(t, http.MethodPost, "/api/startups/self/connect_requests", fiber.Map{"faculty_id": 999}, "founder")
	expectStatus(t, resp, fiber.StatusNotFound)

	resp = s.do(t, http.MethodPost, "/api/startups/self/connect_requests", fiber.Map{"faculty_id": f.faculty.ID, "questions": "How to scale?"}, "founder")
	expectStatus(t, resp, fiber.StatusCreated)
	body := decode[map[string]any](t, resp)
	if uint(body["startup_id"].(float64)) != f.startup.ID || body["status"] != models.ConnectRequestRequested {
		t.Fatalf("unexpected connect request %+v", body)
	}
}

func TestFacultyDirectoryClampsHugePage(t *testing.T) {
	s := newTestServer(t)
	if err := s.store.Faculty.Create(context.Background(), &models.Faculty{Name: "Celia", Token: "celia"}); err != nil {
		t.Fatalf("create faculty: %v", err)
	}

	resp := s.do(t, http.MethodGet, "/api/faculty?page=461168601842738792&limit=999999", nil, "")
	expectStatus(t, resp, fiber.StatusOK)

	body := decode[struct {
		Data       []map[string]any `json:"data"`
		Pagination struct {
			CurrentPage  int `json:"current_page"`
			ItemsPerPage int `json:"items_per_page"`
			TotalItems   int `json:"total_items"`
		} `json:"pagination"`
	}](t, resp)

	if len(body.Data) != 0 || body.Pagination.TotalItems != 1 {
		t.Fatalf("expected an empty page past the end, got %+v", body)
	}
	if body.Pagination.CurrentPage != utils.MaxPage || body.Pagination.ItemsPerPage != utils.MaxPageLimit {
		t.Fatalf("expected clamped pagination, got %+v", body.Pagination)
	}
}
