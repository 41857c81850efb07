package dto

// IssueStatsResponse aggregates the issues visible to the caller. The
// per-college breakdown appears only for academic registrars.
type IssueStatsResponse struct {
	Total     int            `json:"total" example:"42"`
	ByStatus  map[string]int `json:"byStatus"`
	ByCollege map[string]int `json:"byCollege,omitempty"`
}

// DashboardResponse is the role-shaped landing payload. Unassigned
// issues and the college breakdown appear only for academic registrars.
type DashboardResponse struct {
	Role                string          `json:"role" example:"STUDENT"`
	TotalIssues         int             `json:"totalIssues"`
	ByStatus            map[string]int  `json:"byStatus"`
	RecentIssues        []IssueResponse `json:"recentIssues"`
	UnassignedIssues    []IssueResponse `json:"unassignedIssues,omitempty"`
	ByCollege           map[string]int  `json:"byCollege,omitempty"`
	UnreadNotifications int             `json:"unreadNotifications"`
}
