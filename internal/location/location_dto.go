package location

type LocationResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Company      string `json:"company"`
	IsAccessible bool   `json:"is_accessible"`
}

func mapToResponse(l Location) LocationResponse {
	resp := LocationResponse{
		ID:           l.ID.String(),
		Name:         l.Name,
		IsAccessible: l.IsAccessible,
	}
	if l.Company != nil {
		resp.Company = l.Company.Name
	}
	return resp
}
