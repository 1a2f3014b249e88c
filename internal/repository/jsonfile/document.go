package jsonfile

// record is one task as stored on disk. due_date is an ISO 8601 timestamp
// without zone, or null.
type record struct {
	ID          string  `json:"id,omitempty"`
	Text        string  `json:"text"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date"`
	Course      string  `json:"course"`
	Completed   bool    `json:"completed"`
}

// document accepts every layout the file has been written in. Entries under
// "tasks" are dated tasks. Unknown keys are ignored.
type document struct {
	Tasks      []record `json:"tasks"`
	DailyTasks []record `json:"daily_tasks"`
	DatedTasks []record `json:"dated_tasks"`
}

type singleDocument struct {
	Tasks      []record `json:"tasks"`
	DailyTasks []record `json:"daily_tasks,omitempty"`
}

type splitDocument struct {
	DailyTasks []record `json:"daily_tasks"`
	DatedTasks []record `json:"dated_tasks"`
}
