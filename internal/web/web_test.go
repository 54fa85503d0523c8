package web

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/erazemk/educycle/internal/app"
	"github.com/erazemk/educycle/internal/db"
	"github.com/erazemk/educycle/internal/model"
	"github.com/erazemk/educycle/internal/store"
)

type stubQuotes struct{}

func (stubQuotes) Quote(context.Context) string { return "Pass it on." }

func setupTestRouter(t *testing.T, p model.Permission) (http.Handler, *app.App) {
	t.Helper()
	records := store.NewRecords(store.NewSQLite(db.NewTestDB(t)))
	ctx := context.Background()
	if p != model.PermissionPrompt {
		if err := records.SetPermission(ctx, p); err != nil {
			t.Fatalf("SetPermission: %v", err)
		}
	}

	a := app.New(records, stubQuotes{})
	if err := a.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}

	router, err := NewRouter(a)
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	return router, a
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
	return rec
}

func post(h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func loginAs(t *testing.T, a *app.App, email, id string) {
	t.Helper()
	if _, err := a.Login(context.Background(), email, id); err != nil {
		t.Fatalf("Login %s: %v", id, err)
	}
}

func expectRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != location {
		t.Errorf("expected redirect to %s, got %s", location, got)
	}
}

func expectBody(t *testing.T, rec *httptest.ResponseRecorder, status int, contains ...string) {
	t.Helper()
	if rec.Code != status {
		t.Errorf("expected %d, got %d", status, rec.Code)
	}
	body := rec.Body.String()
	for _, s := range contains {
		if !strings.Contains(body, s) {
			t.Errorf("expected body to contain %q", s)
		}
	}
}

func TestSessionRequired(t *testing.T) {
	router, _ := setupTestRouter(t, model.PermissionGranted)

	for _, path := range []string{"/", "/share", "/leaderboard", "/promote", "/leaderboard/quote"} {
		rec := get(router, path)
		expectRedirect(t, rec, "/login")
	}
}

func TestLoginPage(t *testing.T) {
	router, a := setupTestRouter(t, model.PermissionGranted)

	expectBody(t, get(router, "/login"), http.StatusOK, "EduCycle Login", "Register here")
	expectBody(t, get(router, "/login?register=1"), http.StatusOK, "EduCycle Registration", "Enrollment year")

	loginAs(t, a, "junior1@college.edu", "JUNIOR001")
	expectRedirect(t, get(router, "/login"), "/")
}

func TestLoginSubmit(t *testing.T) {
	router, a := setupTestRouter(t, model.PermissionGranted)

	rec := post(router, "/login", url.Values{"email": {"junior1@college.edu"}, "id": {"WRONG"}})
	expectBody(t, rec, http.StatusUnauthorized, "Invalid email or ID.")

	rec = post(router, "/login", url.Values{"email": {""}, "id": {""}})
	expectBody(t, rec, http.StatusBadRequest, "Enter your email and ID.")

	rec = post(router, "/login", url.Values{"email": {"Junior1@College.edu"}, "id": {"JUNIOR001"}})
	expectRedirect(t, rec, "/")

	user, _ := a.CurrentUser(context.Background())
	if user == nil || user.ID != "JUNIOR001" {
		t.Errorf("expected JUNIOR001 session, got %+v", user)
	}

	expectRedirect(t, post(router, "/logout", nil), "/login")
	if user, _ := a.CurrentUser(context.Background()); user != nil {
		t.Errorf("expected no session after logout, got %+v", user)
	}
}

func TestRegisterSubmit(t *testing.T) {
	router, a := setupTestRouter(t, model.PermissionGranted)
	form := url.Values{
		"email": {"ada@college.edu"}, "id": {"ADA1"}, "course": {"Mathematics"},
		"year": {"2024"}, "is_senior": {"1"},
	}

	expectRedirect(t, post(router, "/register", form), "/")
	user, _ := a.CurrentUser(context.Background())
	if user == nil || user.ID != "ADA1" || !user.IsSenior {
		t.Errorf("expected senior ADA1 session, got %+v", user)
	}

	form.Set("id", "ADA2")
	form.Set("email", "ADA@college.edu")
	expectBody(t, post(router, "/register", form), http.StatusConflict, "A user with this ID or email already exists.", `value="ADA2"`)

	form.Set("year", "soon")
	expectBody(t, post(router, "/register", form), http.StatusBadRequest, "Enter your enrollment year as a number.")

	form.Set("year", "1850")
	form.Set("email", "other@college.edu")
	expectBody(t, post(router, "/register", form), http.StatusBadRequest, "Year must be at least 1900.")
}

func TestDashboardJunior(t *testing.T) {
	router, a := setupTestRouter(t, model.PermissionGranted)
	loginAs(t, a, "junior1@college.edu", "JUNIOR001")

	rec := get(router, "/")
	expectBody(t, rec, http.StatusOK, "Items for You", "Data Structures &amp; Algorithms Notes", "Request Item", "Calculus III Question Papers")
	if strings.Contains(rec.Body.String(), "Introduction to Algorithms") {
		t.Error("junior should not see another cohort's items")
	}
	if strings.Contains(rec.Body.String(), "Share Item") {
		t.Error("junior should not be offered sharing")
	}

	rec = get(router, "/?category=Books")
	expectBody(t, rec, http.StatusOK, "Operating Systems Textbook")
	if strings.Contains(rec.Body.String(), "Data Structures") {
		t.Error("category filter not applied")
	}

	rec = get(router, "/?q=handwritten")
	expectBody(t, rec, http.StatusOK, "Data Structures")
	if strings.Contains(rec.Body.String(), "Operating Systems") {
		t.Error("search not applied")
	}
}

func TestRequestAndPickup(t *testing.T) {
	router, a := setupTestRouter(t, model.PermissionGranted)

	loginAs(t, a, "junior1@college.edu", "JUNIOR001")
	expectRedirect(t, post(router, "/items/ITEM003/request", nil), "/?done=requested")
	expectBody(t, get(router, "/?done=requested"), http.StatusOK, "Item requested.")
	expectBody(t, post(router, "/items/ITEM003/request", nil), http.StatusConflict, "Item is not in the right state for this action.")

	loginAs(t, a, "senior3@college.edu", "SENIOR003")
	expectBody(t, get(router, "/"), http.StatusOK, "Your Shared Items", "Mark Picked Up")

	expectBody(t, post(router, "/items/ITEM003/pickup", url.Values{"junior_id": {"JUNIOR002"}}), http.StatusForbidden,
		"Item was requested by a different junior.")
	expectRedirect(t, post(router, "/items/ITEM003/pickup", url.Values{"junior_id": {"JUNIOR001"}}), "/?done=picked-up")
	expectBody(t, post(router, "/items/ITEM003/pickup", nil), http.StatusConflict, "Item is not in the right state")

	item, _ := a.Item(context.Background(), "ITEM003")
	if item.Status != model.StatusPickedUp {
		t.Errorf("expected Picked Up, got %q", item.Status)
	}

	loginAs(t, a, "senior1@college.edu", "SENIOR001")
	expectBody(t, post(router, "/items/ITEM006/pickup", nil), http.StatusForbidden, "Only the senior who shared this item can do that.")
}

func TestShare(t *testing.T) {
	router, a := setupTestRouter(t, model.PermissionGranted)

	loginAs(t, a, "junior1@college.edu", "JUNIOR001")
	expectBody(t, get(router, "/share"), http.StatusForbidden, "Only seniors can do that.")

	loginAs(t, a, "senior4@college.edu", "SENIOR004")
	expectBody(t, get(router, "/share"), http.StatusOK, "Share an Item", "Instruments (150 XP)", "Computer Lab C")

	form := url.Values{
		"name": {"Vernier Calipers"}, "description": {"Precise and clean"},
		"category": {"Instruments"}, "pickup_point": {"Physics Department"},
	}
	expectRedirect(t, post(router, "/share", form), "/?done=shared")

	senior, _ := a.User(context.Background(), "SENIOR004")
	if senior.XPPoints != 950 {
		t.Errorf("expected 950 XP, got %d", senior.XPPoints)
	}
	expectBody(t, get(router, "/?done=shared"), http.StatusOK, "Item shared!", "Vernier Calipers", "950 XP")

	form.Set("name", "")
	form.Set("category", "Snacks")
	expectBody(t, post(router, "/share", form), http.StatusBadRequest, "Name is required; category must be one of the listed categories.")
}

func TestLeaderboard(t *testing.T) {
	router, a := setupTestRouter(t, model.PermissionGranted)
	loginAs(t, a, "senior1@college.edu", "SENIOR001")

	rec := get(router, "/leaderboard")
	expectBody(t, rec, http.StatusOK, "XP Leaderboard", "senior3", "1500", `class="me"`, "/static/quote.js")
	body := rec.Body.String()
	_, table, _ := strings.Cut(body, "<tbody>")
	if strings.Index(table, "senior3") > strings.Index(table, "senior1") {
		t.Error("expected senior3 above senior1")
	}
	if strings.Contains(body, "junior1") {
		t.Error("juniors must not appear on the leaderboard")
	}

	rec = get(router, "/leaderboard/quote")
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding quote: %v", err)
	}
	if resp["quote"] != "Pass it on." {
		t.Errorf("unexpected quote %q", resp["quote"])
	}
}

func TestPromote(t *testing.T) {
	router, a := setupTestRouter(t, model.PermissionGranted)
	loginAs(t, a, "junior2@college.edu", "JUNIOR002")

	expectBody(t, get(router, "/promote"), http.StatusOK, "Current Computer Year: <strong>1</strong>", "Complete Next Computer Year")
	expectBody(t, post(router, "/promote", nil), http.StatusOK, "You have completed computer year 2.")
	post(router, "/promote", nil)
	expectBody(t, post(router, "/promote", nil), http.StatusOK, "Congratulations! You are now a Senior!", "Already a Senior")
	expectBody(t, post(router, "/promote", nil), http.StatusConflict, "You are already a senior.")
}

func TestPermissionBanner(t *testing.T) {
	router, a := setupTestRouter(t, model.PermissionPrompt)

	expectBody(t, get(router, "/login"), http.StatusOK, "Allow storage", `value="denied"`)

	// Nothing to log in against yet.
	rec := post(router, "/login", url.Values{"email": {"senior1@college.edu"}, "id": {"SENIOR001"}})
	expectBody(t, rec, http.StatusUnauthorized, "Invalid email or ID.")

	expectRedirect(t, post(router, "/permission", url.Values{"permission": {"granted"}, "next": {"/login"}}), "/login")
	if p, _ := a.Permission(context.Background()); p != model.PermissionGranted {
		t.Errorf("expected granted, got %q", p)
	}
	if strings.Contains(get(router, "/login").Body.String(), "Allow storage") {
		t.Error("banner should be gone once granted")
	}
	expectRedirect(t, post(router, "/login", url.Values{"email": {"senior1@college.edu"}, "id": {"SENIOR001"}}), "/")

	rec = post(router, "/permission", url.Values{"permission": {"sometimes"}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown permission, got %d", rec.Code)
	}
}

func TestDeclinedPermission(t *testing.T) {
	router, a := setupTestRouter(t, model.PermissionDenied)

	form := url.Values{"email": {"s@college.edu"}, "id": {"S"}, "course": {"CS"}, "year": {"2024"}}
	expectRedirect(t, post(router, "/register", form), "/")

	// The session was never stored, so the dashboard bounces back.
	expectRedirect(t, get(router, "/"), "/login")
	expectBody(t, get(router, "/login"), http.StatusOK, "Storage is turned off.")
	if u, _ := a.CurrentUser(context.Background()); u != nil {
		t.Errorf("expected no session, got %+v", u)
	}
}

func TestLocalPath(t *testing.T) {
	tests := map[string]string{
		"/leaderboard":         "/leaderboard",
		"":                     "/",
		"https://evil.example": "/",
		"//evil.example":       "/",
		"/\\evil.example":      "/",
	}
	for in, want := range tests {
		if got := localPath(in); got != want {
			t.Errorf("localPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStaticAssets(t *testing.T) {
	router, _ := setupTestRouter(t, model.PermissionGranted)

	for _, path := range []string{"/static/style.css", "/static/quote.js"} {
		if rec := get(router, path); rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestItemImageUpload(t *testing.T) {
	router, a := setupTestRouter(t, model.PermissionGranted)
	loginAs(t, a, "senior2@college.edu", "SENIOR002")

	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			img.Set(x, y, color.RGBA{G: 160, A: 255})
		}
	}
	var pngData bytes.Buffer
	png.Encode(&pngData, img)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, _ := mw.CreateFormFile("image", "photo.png")
	part.Write(pngData.Bytes())
	mw.Close()

	req := httptest.NewRequest("POST", "/items/ITEM004/image", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	expectRedirect(t, rec, "/?done=image")

	rec = get(router, "/items/ITEM004/image")
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/jpeg" {
		t.Errorf("expected JPEG, got %d %s", rec.Code, rec.Header().Get("Content-Type"))
	}
	expectBody(t, get(router, "/"), http.StatusOK, `src="/items/ITEM004/image"`)

	if rec := get(router, "/items/ITEM001/image"); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 without image, got %d", rec.Code)
	}

	expectBody(t, post(router, "/items/ITEM004/image", nil), http.StatusBadRequest, "File too large or invalid upload.")
}
