package request

type RegisterRequest struct {
	Login    string `json:"login" validate:"min=5"`
	Name     string `json:"name" validate:"min=1"`
	Password string `json:"password" validate:"min=5"`
}

type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpsertTodoRequest creates a todo when TodoID is empty and overwrites the
// caller's todo otherwise. Completed stays untyped so a non-boolean value is
// reported next to the other field errors instead of failing the decode.
type UpsertTodoRequest struct {
	TodoID     string `json:"todoId"`
	Title      string `json:"title" validate:"min=3"`
	Completed  any    `json:"completed" validate:"strictbool"`
	TargetDate string `json:"targetDate" validate:"required,isodate"`
}
