package dto

type FaqRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FaqResponse struct {
	ID        string `json:"id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type StatusResponse struct {
	Status string `json:"status"`
}
