package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"daybook/cmd/internal/domain/entity"
	"daybook/cmd/internal/service"
	"daybook/cmd/internal/store"
	"daybook/cmd/internal/utils/validators"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nullGateway struct{}

func (nullGateway) Load() []entity.Appointment { return nil }
func (nullGateway) Save([]entity.Appointment)  {}

func newTestRoute() *DefaultAppointmentRoute {
	validate := validator.New()
	_ = validate.RegisterValidation("dateonly", validators.IsDateOnly)
	svc := service.NewAppointmentService(store.New(nullGateway{}), validate)
	return NewAppointmentDefault(svc)
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newTestServer(route *DefaultAppointmentRoute) *echo.Echo {
	e := echo.New()
	e.GET("/api/appointments", route.GetAppointments)
	e.POST("/api/appointments", route.CreateAppointment)
	e.PUT("/api/appointments/:id", route.UpdateAppointment)
	e.DELETE("/api/appointments/:id", route.DeleteAppointment)
	e.PUT("/api/appointments/:id/reschedule", route.RescheduleAppointment)
	e.GET("/api/appointments/day", route.GetDay)
	e.GET("/api/calendar", route.GetCalendar)
	e.GET("/api/timeline", route.GetTimeline)
	e.GET("/api/export.ics", route.ExportICS)
	return e
}

func TestCreateAndListAppointments(t *testing.T) {
	e := newTestServer(newTestRoute())

	rec := doJSON(e, http.MethodPost, "/api/appointments", `{"title":"Standup","date":"2024-03-10","start":540,"duration":60}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created service.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "9:00 AM – 10:00 AM", created.Interval)

	rec = doJSON(e, http.MethodGet, "/api/appointments", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var listed struct {
		Appointments []service.AppointmentResponse `json:"appointments"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed.Appointments, 1)
	assert.Equal(t, created.ID, listed.Appointments[0].ID)
}

func TestCreateAppointmentRejectsShortTitle(t *testing.T) {
	e := newTestServer(newTestRoute())

	rec := doJSON(e, http.MethodPost, "/api/appointments", `{"title":"Hi","date":"2024-03-10","start":540}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "message")
}

func TestUpdateAppointmentEndpoint(t *testing.T) {
	e := newTestServer(newTestRoute())

	rec := doJSON(e, http.MethodPost, "/api/appointments", `{"title":"Standup","date":"2024-03-10","start":540}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created service.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	id := strconv.FormatInt(created.ID, 10)
	rec = doJSON(e, http.MethodPut, "/api/appointments/"+id, `{"title":"Standup (moved)","date":"2024-03-10","start":600}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated service.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Standup (moved)", updated.Title)
	assert.Equal(t, 600, updated.Start)

	rec = doJSON(e, http.MethodPut, "/api/appointments/999", `{"title":"Ghost meeting","date":"2024-03-10","start":600}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(e, http.MethodPut, "/api/appointments/abc", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteAppointmentEndpoint(t *testing.T) {
	e := newTestServer(newTestRoute())

	rec := doJSON(e, http.MethodPost, "/api/appointments", `{"title":"Standup","date":"2024-03-10","start":540}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created service.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	id := strconv.FormatInt(created.ID, 10)
	rec = doJSON(e, http.MethodDelete, "/api/appointments/"+id, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodDelete, "/api/appointments/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRescheduleEndpoint(t *testing.T) {
	e := newTestServer(newTestRoute())

	rec := doJSON(e, http.MethodPost, "/api/appointments", `{"title":"Standup","date":"2024-03-10","start":540}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created service.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	id := strconv.FormatInt(created.ID, 10)
	rec = doJSON(e, http.MethodPut, "/api/appointments/"+id+"/reschedule", `{"offset":37}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var moved service.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &moved))
	assert.Equal(t, 90, moved.Start)
}

func TestDayEndpoint(t *testing.T) {
	e := newTestServer(newTestRoute())

	doJSON(e, http.MethodPost, "/api/appointments", `{"title":"Standup","date":"2024-03-10","start":540}`)
	doJSON(e, http.MethodPost, "/api/appointments", `{"title":"Review","date":"2024-03-11","start":600}`)

	rec := doJSON(e, http.MethodGet, "/api/appointments/day?date=2024-03-10", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var day struct {
		Date         string                        `json:"date"`
		Appointments []service.AppointmentResponse `json:"appointments"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &day))
	require.Len(t, day.Appointments, 1)
	assert.Equal(t, "Standup", day.Appointments[0].Title)

	rec = doJSON(e, http.MethodGet, "/api/appointments/day?date=bogus", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalendarEndpoint(t *testing.T) {
	e := newTestServer(newTestRoute())

	rec := doJSON(e, http.MethodGet, "/api/calendar?month=2024-02", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var calendar service.CalendarResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &calendar))
	assert.Len(t, calendar.Days, 29)

	rec = doJSON(e, http.MethodGet, "/api/calendar", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTimelineEndpoint(t *testing.T) {
	e := newTestServer(newTestRoute())

	rec := doJSON(e, http.MethodGet, "/api/timeline", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var tl service.TimelineResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tl))
	assert.Equal(t, 60, tl.Start)
	assert.Equal(t, 1380, tl.End)
	assert.Len(t, tl.Ticks, 22)
}

func TestExportEndpoint(t *testing.T) {
	e := newTestServer(newTestRoute())
	doJSON(e, http.MethodPost, "/api/appointments", `{"title":"Standup","date":"2024-03-10","start":540}`)

	rec := doJSON(e, http.MethodGet, "/api/export.ics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/calendar")
	assert.Contains(t, rec.Body.String(), "BEGIN:VCALENDAR")
	assert.Contains(t, rec.Body.String(), "SUMMARY:Standup")
}

func TestRequireToken(t *testing.T) {
	const secret = "test-secret"

	route := newTestRoute()
	e := echo.New()
	e.Use(RequireToken(secret))
	e.GET("/api/appointments", route.GetAppointments)

	rec := doJSON(e, http.MethodGet, "/api/appointments", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := jwt.New(jwt.SigningMethodHS256)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/appointments", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signed)
	ok := httptest.NewRecorder()
	e.ServeHTTP(ok, req)
	assert.Equal(t, http.StatusOK, ok.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/appointments", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-token")
	bad := httptest.NewRecorder()
	e.ServeHTTP(bad, req)
	assert.Equal(t, http.StatusUnauthorized, bad.Code)
}
