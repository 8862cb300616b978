package structs

const (
	queryLimitDefault = 1000
	queryLimitMax     = 10000
)

type Query struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`

	// Filters
	JobIDs   []string `json:"job_ids,omitempty"`
	Statuses []Status `json:"statuses,omitempty"`
}

func (q *Query) Sanitize() {
	if q.Limit <= 0 {
		q.Limit = queryLimitDefault
	}
	if q.Limit > queryLimitMax {
		q.Limit = queryLimitMax
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if len(q.JobIDs) == 0 {
		q.JobIDs = nil
	}
	if len(q.Statuses) == 0 {
		q.Statuses = nil
	}
}

// Matches reports whether the job passes the query's filters
// (limit & offset are not considered).
func (q *Query) Matches(j *Job) bool {
	if q.JobIDs != nil && !contains(q.JobIDs, j.ID) {
		return false
	}
	if q.Statuses != nil {
		for _, s := range q.Statuses {
			if s == j.Status {
				return true
			}
		}
		return false
	}
	return true
}

func contains(in []string, s string) bool {
	for _, v := range in {
		if v == s {
			return true
		}
	}
	return false
}
