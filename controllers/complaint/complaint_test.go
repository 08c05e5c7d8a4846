package complaintController_test

import (
	"cdesk/config"
	"cdesk/database"
	"cdesk/models"
	"cdesk/server"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	config.LoadConfig()
	config.AppConfig.SaltRound = bcrypt.MinCost

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Complaint{},
		&models.ComplaintHistory{},
		&models.Feedback{},
	))
	database.Database = database.DbInstance{Db: db}

	return server.New("../../views")
}

func postForm(t *testing.T, app *fiber.App, path string, form url.Values, cookies []*http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func get(t *testing.T, app *fiber.App, path string, cookies []*http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

// registerAndLogin creates an account through the real flows and returns
// the session cookies.
func registerAndLogin(t *testing.T, app *fiber.App, name, email string) []*http.Cookie {
	t.Helper()
	resp := postForm(t, app, "/register", url.Values{
		"name": {name}, "email": {email}, "password": {"pw123"},
	}, nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	resp = postForm(t, app, "/login", url.Values{
		"email": {email}, "password": {"pw123"},
	}, nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	return resp.Cookies()
}

func submitComplaint(t *testing.T, app *fiber.App, cookies []*http.Cookie, title, description string) models.Complaint {
	t.Helper()
	resp := postForm(t, app, "/complaints/new", url.Values{
		"title": {title}, "description": {description},
	}, cookies)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	var complaint models.Complaint
	require.NoError(t, database.Database.Db.Where("title = ?", title).First(&complaint).Error)
	return complaint
}

func setStatus(t *testing.T, id uint, status string) {
	t.Helper()
	require.NoError(t, database.Database.Db.Model(&models.Complaint{}).
		Where("id = ?", id).Update("status", status).Error)
}

func TestSubmitAppliesDefaults(t *testing.T) {
	app := setupApp(t)
	cookies := registerAndLogin(t, app, "Alice", "alice@example.com")

	complaint := submitComplaint(t, app, cookies, "Leak", "Pipe leaking")
	assert.Equal(t, models.StatusSubmitted, complaint.Status)
	assert.Equal(t, models.DefaultCategory, complaint.Category)
	assert.Equal(t, models.PriorityMedium, complaint.Priority)

	body := readBody(t, get(t, app, "/complaints", cookies))
	assert.Contains(t, body, "Leak")

	body = readBody(t, get(t, app, "/dashboard", cookies))
	assert.Contains(t, body, "Submitted: 1")
	assert.Contains(t, body, "In Progress: 0")
	assert.Contains(t, body, "Resolved: 0")
}

func TestSubmitRequiresTitleAndDescription(t *testing.T) {
	app := setupApp(t)
	cookies := registerAndLogin(t, app, "Alice", "alice@example.com")

	resp := postForm(t, app, "/complaints/new", url.Values{"title": {"Leak"}}, cookies)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Title and description are required")

	var count int64
	database.Database.Db.Model(&models.Complaint{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestDetailNeverLeaksForeignComplaints(t *testing.T) {
	app := setupApp(t)
	alice := registerAndLogin(t, app, "Alice", "alice@example.com")
	bob := registerAndLogin(t, app, "Bob", "bob@example.com")

	complaint := submitComplaint(t, app, alice, "Leak", "Pipe leaking")
	path := "/complaints/" + strconv.Itoa(int(complaint.ID))

	resp := get(t, app, path, alice)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// someone else's complaint is indistinguishable from a missing one
	resp = get(t, app, path, bob)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = get(t, app, "/complaints/9999", bob)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFeedbackRejectedBeforeResolution(t *testing.T) {
	app := setupApp(t)
	cookies := registerAndLogin(t, app, "Alice", "alice@example.com")
	complaint := submitComplaint(t, app, cookies, "Leak", "Pipe leaking")
	path := "/complaints/" + strconv.Itoa(int(complaint.ID)) + "/feedback"

	for _, status := range []string{models.StatusSubmitted, models.StatusInProgress} {
		setStatus(t, complaint.ID, status)
		resp := postForm(t, app, path, url.Values{"rating": {"5"}, "comments": {"great"}}, cookies)
		assert.Equal(t, http.StatusFound, resp.StatusCode)

		var count int64
		database.Database.Db.Model(&models.Feedback{}).Count(&count)
		assert.EqualValues(t, 0, count, "no feedback row while status is %s", status)
	}
}

func TestFeedbackRatingMustBeInRange(t *testing.T) {
	app := setupApp(t)
	cookies := registerAndLogin(t, app, "Alice", "alice@example.com")
	complaint := submitComplaint(t, app, cookies, "Leak", "Pipe leaking")
	setStatus(t, complaint.ID, models.StatusResolved)
	path := "/complaints/" + strconv.Itoa(int(complaint.ID)) + "/feedback"

	for _, rating := range []string{"0", "6", "abc", ""} {
		resp := postForm(t, app, path, url.Values{"rating": {rating}}, cookies)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
	}

	var count int64
	database.Database.Db.Model(&models.Feedback{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestFeedbackUpsertsPerComplaintAndUser(t *testing.T) {
	app := setupApp(t)
	cookies := registerAndLogin(t, app, "Alice", "alice@example.com")
	complaint := submitComplaint(t, app, cookies, "Leak", "Pipe leaking")
	setStatus(t, complaint.ID, models.StatusClosed)
	path := "/complaints/" + strconv.Itoa(int(complaint.ID)) + "/feedback"

	resp := postForm(t, app, path, url.Values{"rating": {"4"}, "comments": {"ok"}}, cookies)
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	resp = postForm(t, app, path, url.Values{"rating": {"5"}, "comments": {"better now"}}, cookies)
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	var feedbacks []models.Feedback
	require.NoError(t, database.Database.Db.Find(&feedbacks).Error)
	require.Len(t, feedbacks, 1, "second submission must update, not insert")
	assert.Equal(t, 5, feedbacks[0].Rating)
	assert.Equal(t, "better now", feedbacks[0].Comments)
}

func TestDetailShowsHistoryWithActorName(t *testing.T) {
	app := setupApp(t)
	cookies := registerAndLogin(t, app, "Alice", "alice@example.com")
	complaint := submitComplaint(t, app, cookies, "Leak", "Pipe leaking")

	hash, err := bcrypt.GenerateFromPassword([]byte("adminpw"), bcrypt.MinCost)
	require.NoError(t, err)
	admin := models.User{Name: "Root", Email: "root@example.com", Password: string(hash), Role: models.RoleAdmin}
	require.NoError(t, database.Database.Db.Create(&admin).Error)

	setStatus(t, complaint.ID, models.StatusResolved)
	require.NoError(t, database.Database.Db.Create(&models.ComplaintHistory{
		ComplaintID: complaint.ID,
		ActionBy:    admin.ID,
		OldStatus:   models.StatusSubmitted,
		NewStatus:   models.StatusResolved,
		Note:        "Plumber dispatched",
	}).Error)

	body := readBody(t, get(t, app, "/complaints/"+strconv.Itoa(int(complaint.ID)), cookies))
	assert.Contains(t, body, "Root")
	assert.Contains(t, body, "Plumber dispatched")
	assert.Contains(t, body, models.StatusResolved)
}
