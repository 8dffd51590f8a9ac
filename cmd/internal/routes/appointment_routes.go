package routes

import (
	"fmt"
	"net/http"
	"strconv"

	"daybook/cmd/internal/service"
	"daybook/cmd/internal/utils/apierror"
	"github.com/labstack/echo/v4"
)

type AppointmentService interface {
	GetAppointments() []*service.AppointmentResponse
	GetDay(date string) ([]*service.AppointmentResponse, apierror.ErrorResponse)
	CreateAppointment(req *service.AppointmentRequest) (*service.AppointmentResponse, apierror.ErrorResponse)
	UpdateAppointment(id int64, req *service.AppointmentRequest) (*service.AppointmentResponse, apierror.ErrorResponse)
	DeleteAppointment(id int64) apierror.ErrorResponse
	RescheduleAppointment(id int64, req *service.RescheduleRequest) (*service.AppointmentResponse, apierror.ErrorResponse)
	GetCalendar(month string) (*service.CalendarResponse, apierror.ErrorResponse)
	GetTimeline() *service.TimelineResponse
	ExportICS() string
}

type DefaultAppointmentRoute struct {
	AppointmentService AppointmentService
}

func NewAppointmentDefault(apptService AppointmentService) *DefaultAppointmentRoute {
	return &DefaultAppointmentRoute{AppointmentService: apptService}
}

func (a *DefaultAppointmentRoute) GetAppointments(c echo.Context) error {
	resp := echo.Map{"appointments": a.AppointmentService.GetAppointments()}
	return c.JSON(http.StatusOK, &resp)
}

func (a *DefaultAppointmentRoute) GetDay(c echo.Context) error {
	date := c.QueryParam("date")
	appts, apierr := a.AppointmentService.GetDay(date)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"date": date, "appointments": appts}
	return c.JSON(http.StatusOK, &resp)
}

func (a *DefaultAppointmentRoute) CreateAppointment(c echo.Context) error {
	var req service.AppointmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, apierror.MalformedBodyError)
	}

	appt, apierr := a.AppointmentService.CreateAppointment(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, appt)
}

func (a *DefaultAppointmentRoute) UpdateAppointment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		errResp := apierror.NewSimple(400, "ID is not a number")
		return c.JSON(errResp.Code(), errResp)
	}

	var req service.AppointmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, apierror.MalformedBodyError)
	}

	appt, apierr := a.AppointmentService.UpdateAppointment(id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, appt)
}

func (a *DefaultAppointmentRoute) DeleteAppointment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		errResp := apierror.NewSimple(400, "ID is not a number")
		return c.JSON(errResp.Code(), errResp)
	}

	if apierr := a.AppointmentService.DeleteAppointment(id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}

func (a *DefaultAppointmentRoute) RescheduleAppointment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		errResp := apierror.NewSimple(400, "ID is not a number")
		return c.JSON(errResp.Code(), errResp)
	}

	var req service.RescheduleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, apierror.MalformedBodyError)
	}

	appt, apierr := a.AppointmentService.RescheduleAppointment(id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, appt)
}

func (a *DefaultAppointmentRoute) GetCalendar(c echo.Context) error {
	monthStr := c.QueryParam("month") // "2025-08"
	if monthStr == "" {
		return c.JSON(400, apierror.NewMissingParamError("month"))
	}

	calendar, apierr := a.AppointmentService.GetCalendar(monthStr)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, calendar)
}

func (a *DefaultAppointmentRoute) GetTimeline(c echo.Context) error {
	return c.JSON(http.StatusOK, a.AppointmentService.GetTimeline())
}

func (a *DefaultAppointmentRoute) ExportICS(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "daybook.ics"))
	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", []byte(a.AppointmentService.ExportICS()))
}

func parseID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
