package dto

// DashboardStats is the aggregate summary shown on the admin dashboard.
// AttendanceRate is a rounded percentage string such as "75%"; it is "0%"
// when no attendance has been recorded.
type DashboardStats struct {
	TotalGroups    int    `json:"totalGroups"`
	TotalStudents  int    `json:"totalStudents"`
	MedalsAwarded  int    `json:"medalsAwarded"`
	AttendanceRate string `json:"attendanceRate"`
}

// DashboardCounts are the raw tallies a storage backend reports; the service
// derives the client-facing stats from them.
type DashboardCounts struct {
	Groups          int `db:"groups"`
	Students        int `db:"students"`
	Medals          int `db:"medals"`
	Attendance      int `db:"attendance"`
	PresentSessions int `db:"present_sessions"`
}
