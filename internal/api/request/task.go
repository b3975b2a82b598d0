package request

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/studyplanner/planner/internal/domain"
	"github.com/studyplanner/planner/internal/query"
	"github.com/studyplanner/planner/internal/render"
)

// TaskRequest is the body of create and update requests. Update is a full
// overwrite of the editable fields, like submitting the task form.
type TaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        *string `json:"date,omitempty"`
	Time        *string `json:"time,omitempty"`
	Priority    string  `json:"priority,omitempty"`
	Remind      bool    `json:"remind"`
}

// Draft converts the request into a normalized draft.
func (r *TaskRequest) Draft() domain.Draft {
	d := domain.Draft{
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		Time:        r.Time,
		Priority:    domain.Priority(r.Priority),
		Remind:      r.Remind,
	}
	d.Normalize()
	return d
}

// Validate validates the task request.
func (r *TaskRequest) Validate() []string {
	d := r.Draft()
	return d.Validate()
}

// DecodeJSON decodes JSON from request body into the given value.
func DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// ParseViewState extracts the list view state from the status, q and sort
// query parameters. Unknown values fall back to the defaults.
func ParseViewState(r *http.Request) render.ViewState {
	q := r.URL.Query()
	return render.ViewState{
		Status: query.ParseStatus(q.Get("status")),
		Search: q.Get("q"),
		Sort:   query.ParseSort(q.Get("sort")),
	}
}

// ParseConfirm reports whether the request carries confirm=true.
func ParseConfirm(r *http.Request) (bool, error) {
	v := r.URL.Query().Get("confirm")
	if v == "" {
		return false, nil
	}
	ok, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("confirm must be true or false")
	}
	return ok, nil
}
