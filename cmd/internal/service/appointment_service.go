package service

import (
	"daybook/cmd/internal/domain/entity"
	"daybook/cmd/internal/timeline"
	"daybook/cmd/internal/utils"
	"daybook/cmd/internal/utils/apierror"
	"github.com/go-playground/validator/v10"
)

type AppointmentStore interface {
	GetAll() []entity.Appointment
	Add(d entity.Draft) entity.Appointment
	Update(a entity.Appointment) bool
	Delete(id int64) bool
}

// AppointmentRequest is the dialog-confirm payload. Title length is a
// UI-boundary rule; the store itself never validates it.
type AppointmentRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=50"`
	Description string `json:"description"`
	Date        string `json:"date" validate:"required,dateonly"`
	Start       int    `json:"start" validate:"min=0,max=1439"`
	Duration    int    `json:"duration" validate:"min=0"`
}

// RescheduleRequest carries the raw drag offset in minutes from the top
// of the timeline.
type RescheduleRequest struct {
	Offset int `json:"offset"`
}

type AppointmentResponse struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	Start       int    `json:"start"`
	Duration    int    `json:"duration"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Interval    string `json:"interval"`
}

type DefaultAppointmentService struct {
	Store    AppointmentStore
	Validate *validator.Validate
}

func NewAppointmentService(store AppointmentStore, validate *validator.Validate) *DefaultAppointmentService {
	return &DefaultAppointmentService{Store: store, Validate: validate}
}

func (a *DefaultAppointmentService) GetAppointments() []*AppointmentResponse {
	return toAppointmentResponses(a.Store.GetAll())
}

func (a *DefaultAppointmentService) GetDay(date string) ([]*AppointmentResponse, apierror.ErrorResponse) {
	if date == "" {
		return []*AppointmentResponse{}, nil
	}
	if _, err := timeline.ParseDate(date); err != nil {
		return nil, apierror.NewSimple(400, "Could not understand date format")
	}
	return toAppointmentResponses(timeline.ForDay(a.Store.GetAll(), date)), nil
}

func (a *DefaultAppointmentService) CreateAppointment(req *AppointmentRequest) (*AppointmentResponse, apierror.ErrorResponse) {
	draft, apierr := a.draftFromRequest(req)
	if apierr != nil {
		return nil, apierr
	}

	appointment := a.Store.Add(*draft)
	return toAppointmentResponse(appointment), nil
}

func (a *DefaultAppointmentService) UpdateAppointment(id int64, req *AppointmentRequest) (*AppointmentResponse, apierror.ErrorResponse) {
	draft, apierr := a.draftFromRequest(req)
	if apierr != nil {
		return nil, apierr
	}

	appointment := entity.Appointment{
		ID:          id,
		Date:        draft.Date,
		Start:       draft.Start,
		Duration:    draft.Duration,
		Title:       draft.Title,
		Description: draft.Description,
	}
	if !a.Store.Update(appointment) {
		return nil, apierror.NotFoundError
	}
	return toAppointmentResponse(appointment), nil
}

func (a *DefaultAppointmentService) DeleteAppointment(id int64) apierror.ErrorResponse {
	if !a.Store.Delete(id) {
		return apierror.NotFoundError
	}
	return nil
}

// RescheduleAppointment applies the drag-end policy: snap the raw
// offset to the quarter-hour grid, clamp against the appointment's own
// duration, keep everything else.
func (a *DefaultAppointmentService) RescheduleAppointment(id int64, req *RescheduleRequest) (*AppointmentResponse, apierror.ErrorResponse) {
	for _, appointment := range a.Store.GetAll() {
		if appointment.ID != id {
			continue
		}
		appointment.Start = timeline.SnapToGrid(req.Offset, appointment.Duration)
		if !a.Store.Update(appointment) {
			return nil, apierror.NotFoundError
		}
		return toAppointmentResponse(appointment), nil
	}
	return nil, apierror.NotFoundError
}

// draftFromRequest sanitizes and validates the payload and clamps the
// start into the visible day. The store trusts its callers to have
// clamped already, so this is the single place the bounds are enforced.
func (a *DefaultAppointmentService) draftFromRequest(req *AppointmentRequest) (*entity.Draft, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := a.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	duration := req.Duration
	if duration == 0 {
		duration = timeline.DefaultDuration
	}

	return &entity.Draft{
		Date:        req.Date,
		Start:       timeline.Clamp(req.Start, duration),
		Duration:    duration,
		Title:       req.Title,
		Description: req.Description,
	}, nil
}

func toAppointmentResponses(appointments []entity.Appointment) []*AppointmentResponse {
	responses := make([]*AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		responses[i] = toAppointmentResponse(appointment)
	}
	return responses
}

func toAppointmentResponse(a entity.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:          a.ID,
		Date:        a.Date,
		Start:       a.Start,
		Duration:    a.Duration,
		Title:       a.Title,
		Description: a.Description,
		Interval:    timeline.FormatInterval(a),
	}
}
