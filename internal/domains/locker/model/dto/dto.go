package dto

import (
	"campus/internal/domains/locker/model"
	"campus/shared"
	"campus/shared/constant"
	gDto "campus/shared/dto"
	gModel "campus/shared/model"
	"campus/shared/overlap"
	"campus/shared/personalinfo"
	"campus/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type CreateLockerReservationRequest struct {
	LockerNumber  string `json:"locker_number"  validate:"required,max=20"`
	StartDate     string `json:"start_date"     validate:"required"`
	EndDate       string `json:"end_date"       validate:"required"`
	Purpose       string `json:"purpose"        validate:"omitempty,max=500"`
	FirstName     string `json:"first_name"     validate:"required,max=50"`
	LastName      string `json:"last_name"      validate:"omitempty,max=50"`
	ContactNumber string `json:"contact_number" validate:"required,max=20"`
	Semester      string `json:"semester"       validate:"required,max=50"`
}

func (c *CreateLockerReservationRequest) ToModel(userID, userEmail string) (model.LockerReservation, error) {
	startDate, err := timezone.Parse(constant.DateOnlyFormat, c.StartDate)
	if err != nil {
		return model.LockerReservation{}, err
	}

	endDate, err := timezone.Parse(constant.DateOnlyFormat, c.EndDate)
	if err != nil {
		return model.LockerReservation{}, err
	}

	purpose := personalinfo.Encode(c.Purpose, personalinfo.Details{
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		ContactNumber: c.ContactNumber,
		Semester:      c.Semester,
	})

	now := timezone.Now()

	return model.LockerReservation{
		ID:           uuid.NewString(),
		UserID:       userID,
		UserEmail:    userEmail,
		LockerNumber: c.LockerNumber,
		StartDate:    startDate,
		EndDate:      endDate,
		Purpose:      purpose,
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

type UpdateLockerReservationRequest struct {
	LockerNumber  string `json:"locker_number"  validate:"omitempty,max=20"`
	StartDate     string `json:"start_date"     validate:"omitempty"`
	EndDate       string `json:"end_date"       validate:"omitempty"`
	Purpose       string `json:"purpose"        validate:"omitempty,max=500"`
	FirstName     string `json:"first_name"     validate:"omitempty,max=50"`
	LastName      string `json:"last_name"      validate:"omitempty,max=50"`
	ContactNumber string `json:"contact_number" validate:"omitempty,max=20"`
	Semester      string `json:"semester"       validate:"omitempty,max=50"`
}

// Apply merges the request onto an existing record. Owner and request date are
// never merged, they always come from the stored record. The personal info
// block inside the purpose field is re-encoded from the merged details.
func (u *UpdateLockerReservationRequest) Apply(existing model.LockerReservation) (model.LockerReservation, error) {
	merged := existing

	if u.LockerNumber != "" {
		merged.LockerNumber = u.LockerNumber
	}

	if u.StartDate != "" {
		startDate, err := timezone.Parse(constant.DateOnlyFormat, u.StartDate)
		if err != nil {
			return model.LockerReservation{}, err
		}

		merged.StartDate = startDate
	}

	if u.EndDate != "" {
		endDate, err := timezone.Parse(constant.DateOnlyFormat, u.EndDate)
		if err != nil {
			return model.LockerReservation{}, err
		}

		merged.EndDate = endDate
	}

	details := personalinfo.Decode(existing.Purpose)
	originalPurpose := personalinfo.ExtractOriginal(existing.Purpose)

	if u.Purpose != "" {
		originalPurpose = u.Purpose
	}

	if u.FirstName != "" {
		details.FirstName = u.FirstName
	}

	if u.LastName != "" {
		details.LastName = u.LastName
	}

	if u.ContactNumber != "" {
		details.ContactNumber = u.ContactNumber
	}

	if u.Semester != "" {
		details.Semester = u.Semester
	}

	merged.Purpose = personalinfo.Encode(originalPurpose, details)

	return merged, nil
}

// UpdatedFields holds the mutable columns written by an update.
type UpdatedFields struct {
	LockerNumber string    `db:"locker_number"`
	StartDate    time.Time `db:"start_date"`
	EndDate      time.Time `db:"end_date"`
	Purpose      string    `db:"purpose"`
}

func (u *UpdateLockerReservationRequest) ToUpdatedFields(merged model.LockerReservation, userID string) map[string]any {
	return shared.TransformFields(UpdatedFields{
		LockerNumber: merged.LockerNumber,
		StartDate:    merged.StartDate,
		EndDate:      merged.EndDate,
		Purpose:      merged.Purpose,
	}, userID)
}

type LockerReservationResponse struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id"`
	UserEmail     string `json:"user_email"`
	LockerNumber  string `json:"locker_number"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Purpose       string `json:"purpose"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	ContactNumber string `json:"contact_number"`
	Semester      string `json:"semester"`
	Status        string `json:"status"`
	RequestDate   string `json:"request_date"`
	gDto.Metadata
}

func (r *LockerReservationResponse) FromModel(mod model.LockerReservation) {
	details := personalinfo.Decode(mod.Purpose)

	r.ID = mod.ID
	r.UserID = mod.UserID
	r.UserEmail = mod.UserEmail
	r.LockerNumber = mod.LockerNumber
	r.StartDate = timezone.Format(mod.StartDate, constant.DateOnlyFormat)
	r.EndDate = timezone.Format(mod.EndDate, constant.DateOnlyFormat)
	r.Purpose = personalinfo.ExtractOriginal(mod.Purpose)
	r.FirstName = details.FirstName
	r.LastName = details.LastName
	r.ContactNumber = details.ContactNumber
	r.Semester = details.Semester
	r.Status = mod.Status
	r.RequestDate = timezone.Format(mod.RequestDate, constant.DateFormat)
	r.Metadata.FromModel(mod.Metadata)
}

// Window returns the reservation's inclusive date range.
func Window(mod model.LockerReservation) overlap.DateRange {
	return overlap.DateRange{Start: mod.StartDate, End: mod.EndDate}
}

type GetLockerReservationsResponse struct {
	Reservations []LockerReservationResponse `json:"reservations"`
	TotalPage    int                         `json:"total_page"`
	TotalData    int                         `json:"total_data"`
}

func (r *GetLockerReservationsResponse) FromModels(models []model.LockerReservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]LockerReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}
