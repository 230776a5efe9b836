package dto

type CreateQuestionRequest struct {
	Title string   `json:"title" binding:"required"`
	Body  string   `json:"body" binding:"required"`
	Tags  []string `json:"tags"`
}

type UpdateQuestionRequest struct {
	Title string   `json:"title" binding:"required"`
	Body  string   `json:"body" binding:"required"`
	Tags  []string `json:"tags"`
}

type QuestionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=open closed"`
}

type CreateAnswerRequest struct {
	Body string `json:"body" binding:"required"`
}

type UpdateAnswerRequest struct {
	Body string `json:"body" binding:"required"`
}

type VoteRequest struct {
	Direction string `json:"direction" binding:"required,oneof=up down"`
}
