package web

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"portfolio/internal/domain/portfolio"
	"portfolio/internal/presentation"
	"portfolio/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type stubFetcher struct {
	err error
}

func (s stubFetcher) FetchProfile(context.Context) (portfolio.Profile, error) {
	return portfolio.Profile{Name: "Live Person", Title: "Engineer", Bio: "<b>bio</b>"}, s.err
}

func (s stubFetcher) FetchSkills(context.Context) ([]portfolio.Skill, error) {
	return []portfolio.Skill{
		{Name: "Go", Category: "Backend", Proficiency: 90, DisplayOrder: 2},
		{Name: "CSS", Category: "Frontend", Proficiency: 70, DisplayOrder: 1},
	}, nil
}

func (s stubFetcher) FetchProjects(context.Context) ([]portfolio.Project, error) {
	return []portfolio.Project{{Title: "Site", Technologies: portfolio.EncodedTechnologiesOf("Go"), GithubURL: "https://github.com/x"}}, nil
}

type stubContact struct {
	err error
	got []usecase.ContactInput
}

func (s *stubContact) Submit(_ context.Context, in usecase.ContactInput) (portfolio.Message, error) {
	s.got = append(s.got, in)
	return portfolio.Message{ID: 1}, s.err
}

func newApp(t *testing.T, f presentation.Fetcher, c usecase.ContactUsecase) *fiber.App {
	t.Helper()
	h, err := NewHandler(f, NewSender(c), log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	app := fiber.New()
	h.RegisterRoutes(app)
	return app
}

func get(t *testing.T, app *fiber.App, req *http.Request) (int, string) {
	t.Helper()
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(b)
}

func TestIndex_RendersLiveData(t *testing.T) {
	app := newApp(t, stubFetcher{}, &stubContact{})

	status, body := get(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	for _, want := range []string{"Live Person", "&lt;b&gt;bio&lt;/b&gt;", `class="project-technology">Go<`, "View on GitHub", "width: 90%"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in page", want)
		}
	}
	if strings.Index(body, ">CSS<") > strings.Index(body, ">Go<") {
		t.Fatalf("skills must be ordered by display_order")
	}
	if strings.Contains(body, "offline-banner") {
		t.Fatalf("live page must not show the fallback banner")
	}
}

func TestIndex_CategoryFilter(t *testing.T) {
	app := newApp(t, stubFetcher{}, &stubContact{})

	_, body := get(t, app, httptest.NewRequest(http.MethodGet, "/?category=Frontend", nil))
	if !strings.Contains(body, `class="skill-name">CSS<`) || strings.Contains(body, `class="skill-name">Go<`) {
		t.Fatalf("expected only Frontend skills")
	}
	if !strings.Contains(body, `skill-category-btn active" data-category="Frontend"`) {
		t.Fatalf("expected Frontend tab active")
	}
}

func TestIndex_FallbackOnFetchError(t *testing.T) {
	app := newApp(t, stubFetcher{err: errors.New("down")}, &stubContact{})

	_, body := get(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
	if !strings.Contains(body, "Ahmed Aboelcode") || !strings.Contains(body, "Weather Dashboard") {
		t.Fatalf("expected fallback content")
	}
	if strings.Contains(body, "Live Person") {
		t.Fatalf("fallback must replace all sections")
	}
}

func postForm(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestContact_Success(t *testing.T) {
	c := &stubContact{}
	app := newApp(t, stubFetcher{}, c)

	status, body := get(t, app, postForm("name=Ann&email=ann%40x.io&message=hello"))
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !strings.Contains(body, presentation.NoticeSent) || !strings.Contains(body, `data-timeout-ms="5000"`) {
		t.Fatalf("expected success notice with timeout")
	}
	if len(c.got) != 1 || c.got[0].Email != "ann@x.io" {
		t.Fatalf("unexpected submissions %+v", c.got)
	}
	if strings.Contains(body, `value="Ann"`) {
		t.Fatalf("form must be cleared on success")
	}
}

func TestContact_IncompleteNeverSubmits(t *testing.T) {
	c := &stubContact{}
	app := newApp(t, stubFetcher{}, c)

	status, body := get(t, app, postForm("name=Ann&email=&message=hi"))
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", status)
	}
	if !strings.Contains(body, presentation.NoticeFieldsRequired) || !strings.Contains(body, `value="Ann"`) {
		t.Fatalf("expected validation notice with retained form")
	}
	if len(c.got) != 0 {
		t.Fatalf("incomplete form must not be submitted")
	}
}

func TestContact_SaveFailure(t *testing.T) {
	c := &stubContact{err: usecase.ErrInternal}
	app := newApp(t, stubFetcher{}, c)

	status, body := get(t, app, postForm("name=Ann&email=a%40b.c&message=hi"))
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", status)
	}
	if !strings.Contains(body, "Failed to save message") {
		t.Fatalf("expected server error text in notice")
	}
}
