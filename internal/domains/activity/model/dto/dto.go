package dto

import (
	"campus/internal/domains/activity/model"
	"campus/shared"
	"campus/shared/constant"
	gDto "campus/shared/dto"
	gModel "campus/shared/model"
	"campus/shared/overlap"
	"campus/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type CreateActivityReservationRequest struct {
	ActivityName string `json:"activity_name" validate:"required,max=100"`
	ActivityDate string `json:"activity_date" validate:"required"`
	StartTime    string `json:"start_time"    validate:"required"`
	EndTime      string `json:"end_time"      validate:"required"`
	Description  string `json:"description"   validate:"omitempty,max=500"`
}

func (c *CreateActivityReservationRequest) ToModel(userID, userEmail string) (model.ActivityReservation, error) {
	activityDate, err := timezone.Parse(constant.DateOnlyFormat, c.ActivityDate)
	if err != nil {
		return model.ActivityReservation{}, err
	}

	if _, err := time.Parse(constant.TimeOnlyFormat, c.StartTime); err != nil {
		return model.ActivityReservation{}, err
	}

	if _, err := time.Parse(constant.TimeOnlyFormat, c.EndTime); err != nil {
		return model.ActivityReservation{}, err
	}

	now := timezone.Now()

	return model.ActivityReservation{
		ID:           uuid.NewString(),
		UserID:       userID,
		UserEmail:    userEmail,
		ActivityName: c.ActivityName,
		ActivityDate: activityDate,
		StartTime:    c.StartTime,
		EndTime:      c.EndTime,
		Description:  c.Description,
		Status:       constant.StatusPending,
		RequestDate:  now,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}, nil
}

type UpdateActivityReservationRequest struct {
	ActivityName string `json:"activity_name" validate:"omitempty,max=100"`
	ActivityDate string `json:"activity_date" validate:"omitempty"`
	StartTime    string `json:"start_time"    validate:"omitempty"`
	EndTime      string `json:"end_time"      validate:"omitempty"`
	Description  string `json:"description"   validate:"omitempty,max=500"`
}

// Apply merges the request onto an existing record. Owner, status and request
// date always come from the stored record.
func (u *UpdateActivityReservationRequest) Apply(existing model.ActivityReservation) (model.ActivityReservation, error) {
	merged := existing

	if u.ActivityName != "" {
		merged.ActivityName = u.ActivityName
	}

	if u.ActivityDate != "" {
		activityDate, err := timezone.Parse(constant.DateOnlyFormat, u.ActivityDate)
		if err != nil {
			return model.ActivityReservation{}, err
		}

		merged.ActivityDate = activityDate
	}

	if u.StartTime != "" {
		if _, err := time.Parse(constant.TimeOnlyFormat, u.StartTime); err != nil {
			return model.ActivityReservation{}, err
		}

		merged.StartTime = u.StartTime
	}

	if u.EndTime != "" {
		if _, err := time.Parse(constant.TimeOnlyFormat, u.EndTime); err != nil {
			return model.ActivityReservation{}, err
		}

		merged.EndTime = u.EndTime
	}

	if u.Description != "" {
		merged.Description = u.Description
	}

	return merged, nil
}

// UpdatedFields holds the mutable columns written by an update.
type UpdatedFields struct {
	ActivityName string    `db:"activity_name"`
	ActivityDate time.Time `db:"activity_date"`
	StartTime    string    `db:"start_time"`
	EndTime      string    `db:"end_time"`
	Description  string    `db:"description"`
}

func (u *UpdateActivityReservationRequest) ToUpdatedFields(merged model.ActivityReservation, userID string) map[string]any {
	return shared.TransformFields(UpdatedFields{
		ActivityName: merged.ActivityName,
		ActivityDate: merged.ActivityDate,
		StartTime:    merged.StartTime,
		EndTime:      merged.EndTime,
		Description:  merged.Description,
	}, userID)
}

type ActivityReservationResponse struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	UserEmail    string `json:"user_email"`
	ActivityName string `json:"activity_name"`
	ActivityDate string `json:"activity_date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Description  string `json:"description"`
	Status       string `json:"status"`
	RequestDate  string `json:"request_date"`
	gDto.Metadata
}

func (r *ActivityReservationResponse) FromModel(mod model.ActivityReservation) {
	r.ID = mod.ID
	r.UserID = mod.UserID
	r.UserEmail = mod.UserEmail
	r.ActivityName = mod.ActivityName
	r.ActivityDate = timezone.Format(mod.ActivityDate, constant.DateOnlyFormat)
	r.StartTime = mod.StartTime
	r.EndTime = mod.EndTime
	r.Description = mod.Description
	r.Status = mod.Status
	r.RequestDate = timezone.Format(mod.RequestDate, constant.DateFormat)
	r.Metadata.FromModel(mod.Metadata)
}

// Window projects the reservation's clock range onto its activity date. Clock
// values are validated on the way in, so parse failures collapse to the zero
// range which never conflicts.
func Window(mod model.ActivityReservation) overlap.TimeRange {
	start, err := time.Parse(constant.TimeOnlyFormat, mod.StartTime)
	if err != nil {
		return overlap.TimeRange{}
	}

	end, err := time.Parse(constant.TimeOnlyFormat, mod.EndTime)
	if err != nil {
		return overlap.TimeRange{}
	}

	day := mod.ActivityDate

	return overlap.TimeRange{
		Start: time.Date(day.Year(), day.Month(), day.Day(), start.Hour(), start.Minute(), 0, 0, day.Location()),
		End:   time.Date(day.Year(), day.Month(), day.Day(), end.Hour(), end.Minute(), 0, 0, day.Location()),
	}
}

type GetActivityReservationsResponse struct {
	Reservations []ActivityReservationResponse `json:"reservations"`
	TotalPage    int                           `json:"total_page"`
	TotalData    int                           `json:"total_data"`
}

func (r *GetActivityReservationsResponse) FromModels(models []model.ActivityReservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ActivityReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}
