package dto

// CreateTaskRequest is the body of POST /api/tasks.
type CreateTaskRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Category    string  `json:"category" binding:"required,max=100"`
	Day         string  `json:"day" binding:"required,weekday"`
	WorkspaceID *uint64 `json:"workspace_id"`
}

// SuggestTasksRequest is the body of POST /api/tasks/suggest.
type SuggestTasksRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}

type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Color string `json:"color" binding:"required,hexcolor"`
}

type CreateWorkspaceRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Emoji string `json:"emoji" binding:"max=16"`
	Color string `json:"color" binding:"omitempty,hexcolor"`
}

type CreateEventRequest struct {
	Date     string  `json:"date" binding:"required,civildate"`
	Time     *string `json:"time" binding:"omitempty,clock"`
	Title    string  `json:"title" binding:"required,max=255"`
	Category string  `json:"category" binding:"max=100"`
}

// CalendarRangeQuery binds ?from=&to= on GET /api/calendar.
type CalendarRangeQuery struct {
	From string `form:"from" binding:"required,civildate"`
	To   string `form:"to" binding:"required,civildate"`
}
