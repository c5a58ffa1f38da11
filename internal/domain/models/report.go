package models

// SubjectDuration is one row of a daily/weekly report.
type SubjectDuration struct {
	SubjectID   int64  `json:"subject_id"`
	SubjectName string `json:"subject_name"`
	DurationMin int    `json:"duration_min"`
}

type DailyReport struct {
	Date             string            `json:"date"`
	TotalDurationMin int               `json:"total_duration_min"`
	BySubject        []SubjectDuration `json:"by_subject"`
}

type WeeklyReport struct {
	WeekStart        string            `json:"week_start"`
	WeekEnd          string            `json:"week_end"`
	TotalDurationMin int               `json:"total_duration_min"`
	BySubject        []SubjectDuration `json:"by_subject"`
}

type RecommendedSubject struct {
	SubjectID      int64   `json:"subject_id"`
	SubjectName    string  `json:"subject_name"`
	Weight         float64 `json:"weight"`
	RecommendedMin int     `json:"recommended_min"`
}

type TodayRecommendation struct {
	Today       string               `json:"today"`
	Recommended []RecommendedSubject `json:"recommended"`
}
