package response

import (
	"time"

	"github.com/google/uuid"

	"todos/internal/core/domain"
)

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Login string    `json:"login"`
	Name  string    `json:"name"`
}

type TodoResponse struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Completed  bool      `json:"completed"`
	TargetDate time.Time `json:"targetDate"`
	UserID     uuid.UUID `json:"userId"`
	CreatedAt  time.Time `json:"createdAt"`
}

func NewUserResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Login: user.Login,
		Name:  user.Name,
	}
}

func NewTodoResponse(todo domain.Todo) TodoResponse {
	return TodoResponse{
		ID:         todo.ID,
		Title:      todo.Title,
		Completed:  todo.Completed,
		TargetDate: todo.TargetDate.UTC(),
		UserID:     todo.UserID,
		CreatedAt:  todo.CreatedAt.UTC(),
	}
}

func NewTodoListResponse(todos []domain.Todo) []TodoResponse {
	list := make([]TodoResponse, 0, len(todos))
	for _, todo := range todos {
		list = append(list, NewTodoResponse(todo))
	}

	return list
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ResponseError struct {
	Code    string            `json:"code"`
	Message string            `json:"message,omitempty"`
	Errors  []ValidationError `json:"errors"`
	Details any               `json:"details,omitempty"`
}

type SuccessResponse struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error ResponseError `json:"error"`
}
