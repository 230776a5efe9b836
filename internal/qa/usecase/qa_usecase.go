package usecase

import (
	"context"

	authdomain "campusbuddy-backend/internal/auth/domain"
	qadomain "campusbuddy-backend/internal/qa/domain"
	qadto "campusbuddy-backend/internal/qa/dto"
	"campusbuddy-backend/internal/qa/repository"
	"campusbuddy-backend/pkg/paging"
	"campusbuddy-backend/pkg/votes"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

// QAUsecase owns questions, their answers, and voting on both.
type QAUsecase interface {
	ListQuestions(ctx context.Context, filter qadomain.Filter, page paging.Params) ([]*qadomain.Question, int64, error)
	GetQuestion(ctx context.Context, id string) (*qadomain.Question, []*qadomain.Answer, error)
	CreateQuestion(ctx context.Context, user *authdomain.User, req *qadto.CreateQuestionRequest) (*qadomain.Question, error)
	UpdateQuestion(ctx context.Context, user *authdomain.User, id string, req *qadto.UpdateQuestionRequest) (*qadomain.Question, error)
	SetQuestionStatus(ctx context.Context, user *authdomain.User, id, status string) (*qadomain.Question, error)
	DeleteQuestion(ctx context.Context, user *authdomain.User, id string) error
	VoteQuestion(ctx context.Context, user *authdomain.User, id, direction string) (*qadomain.Question, error)

	ListAnswers(ctx context.Context, questionID string) ([]*qadomain.Answer, error)
	CreateAnswer(ctx context.Context, user *authdomain.User, questionID string, req *qadto.CreateAnswerRequest) (*qadomain.Answer, error)
	UpdateAnswer(ctx context.Context, user *authdomain.User, id string, req *qadto.UpdateAnswerRequest) (*qadomain.Answer, error)
	DeleteAnswer(ctx context.Context, user *authdomain.User, id string) error
	AcceptAnswer(ctx context.Context, user *authdomain.User, id string) (*qadomain.Answer, error)
	VoteAnswer(ctx context.Context, user *authdomain.User, id, direction string) (*qadomain.Answer, error)
}

type qaUsecase struct {
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	log          *logrus.Logger
}

func NewQAUsecase(questionRepo repository.QuestionRepository, answerRepo repository.AnswerRepository, log *logrus.Logger) QAUsecase {
	return &qaUsecase{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		log:          log,
	}
}

func (u *qaUsecase) ListQuestions(ctx context.Context, filter qadomain.Filter, page paging.Params) ([]*qadomain.Question, int64, error) {
	return u.questionRepo.List(ctx, filter, page.Skip(), int64(page.Limit))
}

func (u *qaUsecase) GetQuestion(ctx context.Context, id string) (*qadomain.Question, []*qadomain.Answer, error) {
	question, err := u.questionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	answers, err := u.answerRepo.ListByQuestion(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return question, answers, nil
}

func (u *qaUsecase) CreateQuestion(ctx context.Context, user *authdomain.User, req *qadto.CreateQuestionRequest) (*qadomain.Question, error) {
	question := &qadomain.Question{
		Title:  req.Title,
		Body:   req.Body,
		Tags:   req.Tags,
		Author: user.Snapshot(),
	}

	if err := u.questionRepo.Create(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

func (u *qaUsecase) UpdateQuestion(ctx context.Context, user *authdomain.User, id string, req *qadto.UpdateQuestionRequest) (*qadomain.Question, error) {
	question, err := u.questionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.CanModify(question.Author) {
		return nil, qadomain.ErrQuestionNotFound
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	return u.questionRepo.Update(ctx, id, bson.M{
		"title": req.Title,
		"body":  req.Body,
		"tags":  tags,
	})
}

// SetQuestionStatus closes or reopens a question. The answered status is
// never set directly; it flows from answer activity.
func (u *qaUsecase) SetQuestionStatus(ctx context.Context, user *authdomain.User, id, status string) (*qadomain.Question, error) {
	if status != qadomain.StatusOpen && status != qadomain.StatusClosed {
		return nil, qadomain.ErrBadStatus
	}

	question, err := u.questionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.CanModify(question.Author) {
		return nil, qadomain.ErrQuestionNotFound
	}

	// Reopening a question that already has answers lands it back on
	// answered, not open.
	if status == qadomain.StatusOpen && question.AnswerCount > 0 {
		status = qadomain.StatusAnswered
	}
	return u.questionRepo.Update(ctx, id, bson.M{"status": status})
}

// DeleteQuestion removes the question and every answer under it.
func (u *qaUsecase) DeleteQuestion(ctx context.Context, user *authdomain.User, id string) error {
	question, err := u.questionRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !user.CanModify(question.Author) {
		return qadomain.ErrQuestionNotFound
	}

	if err := u.questionRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := u.answerRepo.DeleteByQuestion(ctx, id); err != nil {
		u.log.WithError(err).WithField("question_id", id).Warn("failed to clean up answers")
	}
	return nil
}

func (u *qaUsecase) VoteQuestion(ctx context.Context, user *authdomain.User, id, direction string) (*qadomain.Question, error) {
	dir, err := parseDirection(direction)
	if err != nil {
		return nil, err
	}
	return u.questionRepo.ApplyVote(ctx, id, user.ID.Hex(), dir)
}

func (u *qaUsecase) ListAnswers(ctx context.Context, questionID string) ([]*qadomain.Answer, error) {
	if _, err := u.questionRepo.FindByID(ctx, questionID); err != nil {
		return nil, err
	}
	return u.answerRepo.ListByQuestion(ctx, questionID)
}

func (u *qaUsecase) CreateAnswer(ctx context.Context, user *authdomain.User, questionID string, req *qadto.CreateAnswerRequest) (*qadomain.Answer, error) {
	question, err := u.questionRepo.FindByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	answer := &qadomain.Answer{
		QuestionID: question.ID,
		Body:       req.Body,
		Author:     user.Snapshot(),
	}

	if err := u.answerRepo.Create(ctx, answer); err != nil {
		return nil, err
	}

	if err := u.questionRepo.NoteAnswerAdded(ctx, questionID); err != nil {
		u.log.WithError(err).WithField("question_id", questionID).Warn("failed to note new answer")
	}
	return answer, nil
}

func (u *qaUsecase) UpdateAnswer(ctx context.Context, user *authdomain.User, id string, req *qadto.UpdateAnswerRequest) (*qadomain.Answer, error) {
	answer, err := u.answerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.CanModify(answer.Author) {
		return nil, qadomain.ErrAnswerNotFound
	}

	return u.answerRepo.Update(ctx, id, bson.M{"body": req.Body})
}

func (u *qaUsecase) DeleteAnswer(ctx context.Context, user *authdomain.User, id string) error {
	answer, err := u.answerRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !user.CanModify(answer.Author) {
		return qadomain.ErrAnswerNotFound
	}

	if err := u.answerRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := u.questionRepo.NoteAnswerRemoved(ctx, answer.QuestionID.Hex()); err != nil {
		u.log.WithError(err).WithField("question_id", answer.QuestionID.Hex()).Warn("failed to note removed answer")
	}
	return nil
}

// AcceptAnswer marks an answer as the solution. Only the question's
// author or an admin may accept; any previously accepted answer on the
// same question loses the mark.
func (u *qaUsecase) AcceptAnswer(ctx context.Context, user *authdomain.User, id string) (*qadomain.Answer, error) {
	answer, err := u.answerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	question, err := u.questionRepo.FindByID(ctx, answer.QuestionID.Hex())
	if err != nil {
		return nil, err
	}
	if !user.CanModify(question.Author) {
		return nil, qadomain.ErrAnswerNotFound
	}

	siblings, err := u.answerRepo.ListByQuestion(ctx, question.ID.Hex())
	if err != nil {
		return nil, err
	}
	for _, sibling := range siblings {
		if sibling.IsAccepted && sibling.ID != answer.ID {
			if _, err := u.answerRepo.SetAccepted(ctx, sibling.ID.Hex(), false); err != nil {
				return nil, err
			}
		}
	}

	accepted, err := u.answerRepo.SetAccepted(ctx, id, true)
	if err != nil {
		return nil, err
	}

	if err := u.questionRepo.MarkAnswered(ctx, question.ID.Hex()); err != nil {
		u.log.WithError(err).WithField("question_id", question.ID.Hex()).Warn("failed to mark question answered")
	}
	return accepted, nil
}

func (u *qaUsecase) VoteAnswer(ctx context.Context, user *authdomain.User, id, direction string) (*qadomain.Answer, error) {
	dir, err := parseDirection(direction)
	if err != nil {
		return nil, err
	}
	return u.answerRepo.ApplyVote(ctx, id, user.ID.Hex(), dir)
}

func parseDirection(direction string) (int, error) {
	switch direction {
	case "up":
		return votes.Up, nil
	case "down":
		return votes.Down, nil
	default:
		return 0, qadomain.ErrBadVoteDirection
	}
}
