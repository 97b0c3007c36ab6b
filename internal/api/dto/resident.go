package dto

type CreateResidentRequest struct {
	Name      string `json:"name"`
	Apartment string `json:"apartment"`
	Phone     string `json:"phone"`
}

type ResidentResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Apartment string `json:"apartment"`
	Phone     string `json:"phone"`
}

type ListResidentsResponse struct {
	Residents []ResidentResponse `json:"residents"`
}
