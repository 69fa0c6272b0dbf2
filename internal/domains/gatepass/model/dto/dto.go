package dto

import (
	"campus/internal/domains/gatepass/model"
	"campus/shared"
	"campus/shared/constant"
	gDto "campus/shared/dto"
	gModel "campus/shared/model"
	"campus/shared/timezone"
	"errors"
	"time"

	"github.com/google/uuid"
)

var errReturnPair = errors.New("return_date and return_time must be provided together")

type CreateGatePassRequest struct {
	Destination string `json:"destination" validate:"required,max=100"`
	ExitDate    string `json:"exit_date"   validate:"required"`
	ExitTime    string `json:"exit_time"   validate:"required"`
	ReturnDate  string `json:"return_date" validate:"omitempty"`
	ReturnTime  string `json:"return_time" validate:"omitempty"`
	Reason      string `json:"reason"      validate:"omitempty,max=500"`
}

func (c *CreateGatePassRequest) ToModel(userID, userEmail string) (model.GatePass, error) {
	exitDate, err := timezone.Parse(constant.DateOnlyFormat, c.ExitDate)
	if err != nil {
		return model.GatePass{}, err
	}

	if _, err := time.Parse(constant.TimeOnlyFormat, c.ExitTime); err != nil {
		return model.GatePass{}, err
	}

	returnDate, returnTime, err := parseReturnPair(c.ReturnDate, c.ReturnTime)
	if err != nil {
		return model.GatePass{}, err
	}

	now := timezone.Now()

	return model.GatePass{
		ID:          uuid.NewString(),
		UserID:      userID,
		UserEmail:   userEmail,
		Destination: c.Destination,
		ExitDate:    exitDate,
		ExitTime:    c.ExitTime,
		ReturnDate:  returnDate,
		ReturnTime:  returnTime,
		Reason:      c.Reason,
		Status:      constant.StatusPending,
		RequestDate: now,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}, nil
}

func parseReturnPair(dateValue, timeValue string) (*time.Time, *string, error) {
	if dateValue == "" && timeValue == "" {
		return nil, nil, nil
	}

	if dateValue == "" || timeValue == "" {
		return nil, nil, errReturnPair
	}

	returnDate, err := timezone.Parse(constant.DateOnlyFormat, dateValue)
	if err != nil {
		return nil, nil, err
	}

	if _, err := time.Parse(constant.TimeOnlyFormat, timeValue); err != nil {
		return nil, nil, err
	}

	return &returnDate, &timeValue, nil
}

type UpdateGatePassRequest struct {
	Destination string `json:"destination" validate:"omitempty,max=100"`
	ExitDate    string `json:"exit_date"   validate:"omitempty"`
	ExitTime    string `json:"exit_time"   validate:"omitempty"`
	ReturnDate  string `json:"return_date" validate:"omitempty"`
	ReturnTime  string `json:"return_time" validate:"omitempty"`
	Reason      string `json:"reason"      validate:"omitempty,max=500"`
}

// Apply merges the request onto an existing record. The return pair is
// replaced as a unit, supplying one half alone is rejected.
func (u *UpdateGatePassRequest) Apply(existing model.GatePass) (model.GatePass, error) {
	merged := existing

	if u.Destination != "" {
		merged.Destination = u.Destination
	}

	if u.ExitDate != "" {
		exitDate, err := timezone.Parse(constant.DateOnlyFormat, u.ExitDate)
		if err != nil {
			return model.GatePass{}, err
		}

		merged.ExitDate = exitDate
	}

	if u.ExitTime != "" {
		if _, err := time.Parse(constant.TimeOnlyFormat, u.ExitTime); err != nil {
			return model.GatePass{}, err
		}

		merged.ExitTime = u.ExitTime
	}

	if u.ReturnDate != "" || u.ReturnTime != "" {
		returnDate, returnTime, err := parseReturnPair(u.ReturnDate, u.ReturnTime)
		if err != nil {
			return model.GatePass{}, err
		}

		merged.ReturnDate = returnDate
		merged.ReturnTime = returnTime
	}

	if u.Reason != "" {
		merged.Reason = u.Reason
	}

	return merged, nil
}

// UpdatedFields holds the mutable columns written by an update.
type UpdatedFields struct {
	Destination string     `db:"destination"`
	ExitDate    time.Time  `db:"exit_date"`
	ExitTime    string     `db:"exit_time"`
	ReturnDate  *time.Time `db:"return_date"`
	ReturnTime  *string    `db:"return_time"`
	Reason      string     `db:"reason"`
}

func (u *UpdateGatePassRequest) ToUpdatedFields(merged model.GatePass, userID string) map[string]any {
	return shared.TransformFields(UpdatedFields{
		Destination: merged.Destination,
		ExitDate:    merged.ExitDate,
		ExitTime:    merged.ExitTime,
		ReturnDate:  merged.ReturnDate,
		ReturnTime:  merged.ReturnTime,
		Reason:      merged.Reason,
	}, userID)
}

type GatePassResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	UserEmail   string `json:"user_email"`
	Destination string `json:"destination"`
	ExitDate    string `json:"exit_date"`
	ExitTime    string `json:"exit_time"`
	ReturnDate  string `json:"return_date,omitempty"`
	ReturnTime  string `json:"return_time,omitempty"`
	Reason      string `json:"reason"`
	Status      string `json:"status"`
	RequestDate string `json:"request_date"`
	gDto.Metadata
}

func (r *GatePassResponse) FromModel(mod model.GatePass) {
	r.ID = mod.ID
	r.UserID = mod.UserID
	r.UserEmail = mod.UserEmail
	r.Destination = mod.Destination
	r.ExitDate = timezone.Format(mod.ExitDate, constant.DateOnlyFormat)
	r.ExitTime = mod.ExitTime
	r.Reason = mod.Reason
	r.Status = mod.Status
	r.RequestDate = timezone.Format(mod.RequestDate, constant.DateFormat)
	r.Metadata.FromModel(mod.Metadata)

	if mod.ReturnDate != nil {
		r.ReturnDate = timezone.Format(*mod.ReturnDate, constant.DateOnlyFormat)
	}

	if mod.ReturnTime != nil {
		r.ReturnTime = *mod.ReturnTime
	}
}

type GetGatePassesResponse struct {
	GatePasses []GatePassResponse `json:"gate_passes"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (r *GetGatePassesResponse) FromModels(models []model.GatePass, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.GatePasses = make([]GatePassResponse, len(models))
	for i, mod := range models {
		r.GatePasses[i].FromModel(mod)
	}
}
