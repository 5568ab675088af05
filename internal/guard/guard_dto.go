package guard

type CreateGuardRequest struct {
	Name       string  `json:"name" binding:"required"`
	LocationID string  `json:"location_id" binding:"required,uuid"`
	ShiftType  string  `json:"shift_type" binding:"required,oneof=day night"`
	Role       string  `json:"role" binding:"omitempty,oneof=guard supervisor driver"`
	Notes      *string `json:"notes"`
}

type DeactivateGuardRequest struct {
	ResignedDate string `json:"resigned_date" binding:"omitempty,datetime=2006-01-02"`
}

type GuardResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	LocationID   string  `json:"location_id"`
	LocationName string  `json:"location_name,omitempty"`
	CompanyName  string  `json:"company_name,omitempty"`
	ShiftType    string  `json:"shift_type"`
	Role         string  `json:"role"`
	IsActive     bool    `json:"is_active"`
	ResignedDate *string `json:"resigned_date,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

func mapToResponse(g Guard) GuardResponse {
	resp := GuardResponse{
		ID:         g.ID.String(),
		Name:       g.Name,
		LocationID: g.LocationID.String(),
		ShiftType:  g.ShiftType,
		Role:       g.Role,
		IsActive:   g.IsActive,
		Notes:      g.Notes,
	}
	if g.Location != nil {
		resp.LocationName = g.Location.Name
		if g.Location.Company != nil {
			resp.CompanyName = g.Location.Company.Name
		}
	}
	if g.ResignedDate != nil {
		v := g.ResignedDate.Format("2006-01-02")
		resp.ResignedDate = &v
	}
	return resp
}
