package service

import (
	"fmt"
	"time"

	"daybook/cmd/internal/timeline"
	"daybook/cmd/internal/utils"
	"daybook/cmd/internal/utils/apierror"
	ics "github.com/arran4/golang-ical"
)

type CalendarDay struct {
	Date         string `json:"date"`
	Appointments int    `json:"appointments"`
}

type CalendarResponse struct {
	Month string         `json:"month"`
	Days  []*CalendarDay `json:"days"`
}

type TimelineResponse struct {
	Start     int      `json:"start"`
	End       int      `json:"end"`
	Ticks     []int    `json:"ticks"`
	GridLines []int    `json:"grid_lines"`
	Labels    []string `json:"labels"`
}

// GetCalendar builds the month grid: one entry per calendar day of the
// requested month with the number of appointments booked on it.
func (a *DefaultAppointmentService) GetCalendar(month string) (*CalendarResponse, apierror.ErrorResponse) {
	anchor, err := utils.ParseMonth(month)
	if err != nil {
		return nil, apierror.NewSimple(400, "Could not understand month format")
	}

	booked := make(map[string]int)
	for _, appointment := range a.Store.GetAll() {
		booked[appointment.Date]++
	}

	monthDays := timeline.DaysInMonth(anchor)
	days := make([]*CalendarDay, len(monthDays))
	for i, day := range monthDays {
		key := timeline.DateKey(day)
		days[i] = &CalendarDay{Date: key, Appointments: booked[key]}
	}

	return &CalendarResponse{Month: month, Days: days}, nil
}

// GetTimeline returns the fixed day-view geometry: hour ticks, grid
// rows and their clock labels.
func (a *DefaultAppointmentService) GetTimeline() *TimelineResponse {
	ticks := timeline.Ticks()
	labels := make([]string, len(ticks))
	for i, tick := range ticks {
		labels[i] = timeline.FormatTime(tick)
	}
	return &TimelineResponse{
		Start:     timeline.Start,
		End:       timeline.End,
		Ticks:     ticks,
		GridLines: timeline.GridLines(),
		Labels:    labels,
	}
}

// ExportICS serializes the whole collection as an iCalendar feed.
// Appointments carry no timezone, so event times are emitted as UTC.
func (a *DefaultAppointmentService) ExportICS() string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//daybook//scheduler//EN")

	now := time.Now().UTC()
	for _, appointment := range a.Store.GetAll() {
		day, err := timeline.ParseDate(appointment.Date)
		if err != nil {
			continue
		}
		start := day.Add(time.Duration(appointment.Start) * time.Minute)
		end := start.Add(time.Duration(appointment.Duration) * time.Minute)

		event := cal.AddEvent(fmt.Sprintf("%d@daybook", appointment.ID))
		event.SetDtStampTime(now)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(appointment.Title)
		if appointment.Description != "" {
			event.SetDescription(appointment.Description)
		}
	}
	return cal.Serialize()
}
