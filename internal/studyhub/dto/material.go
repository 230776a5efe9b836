package dto

type CreateMaterialRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Subject     string `json:"subject" binding:"required"`
	Semester    string `json:"semester"`
	FileURL     string `json:"file_url" binding:"required"`
	FileName    string `json:"file_name" binding:"required"`
	FileSize    int64  `json:"file_size" binding:"required,gt=0"`
}

type UpdateMaterialRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Subject     string `json:"subject" binding:"required"`
	Semester    string `json:"semester"`
}

type VoteRequest struct {
	Direction string `json:"direction" binding:"required,oneof=up down"`
}
