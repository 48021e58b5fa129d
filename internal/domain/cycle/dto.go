package cycle

import "time"

type UploadStateResponse struct {
	Uploaded   bool    `json:"uploaded"`
	UploadedAt *string `json:"uploaded_at,omitempty"`
}

type Response struct {
	ID                 string              `json:"id"`
	SiteID             string              `json:"site_id"`
	Month              string              `json:"month"`
	Swipe              UploadStateResponse `json:"swipe"`
	WFH                UploadStateResponse `json:"wfh"`
	Leave              UploadStateResponse `json:"leave"`
	AllDataUploaded    bool                `json:"all_data_uploaded"`
	MismatchProcessed  bool                `json:"mismatch_processed"`
	TimesheetStatus    string              `json:"timesheet_status"`
	UploadsLocked      bool                `json:"uploads_locked"`
	ResolutionDeadline string              `json:"resolution_deadline"`
}

func stateResponse(s UploadState) UploadStateResponse {
	resp := UploadStateResponse{Uploaded: s.Uploaded}
	if s.UploadedAt != nil {
		at := s.UploadedAt.Format(time.RFC3339)
		resp.UploadedAt = &at
	}
	return resp
}

// ToResponse converts a Cycle entity to Response
func (c *Cycle) ToResponse() Response {
	return Response{
		ID:                 c.ID,
		SiteID:             c.SiteID,
		Month:              c.Month,
		Swipe:              stateResponse(c.Swipe),
		WFH:                stateResponse(c.WFH),
		Leave:              stateResponse(c.Leave),
		AllDataUploaded:    c.AllDataUploaded(),
		MismatchProcessed:  c.MismatchProcessed,
		TimesheetStatus:    string(c.TimesheetStatus),
		UploadsLocked:      c.UploadsLocked,
		ResolutionDeadline: c.ResolutionDeadline.Format(time.RFC3339),
	}
}
