package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent           RoleType = "STUDENT"
	RoleLecturer          RoleType = "LECTURER"
	RoleAcademicRegistrar RoleType = "ACADEMIC_REGISTRAR"
	RoleAdmin             RoleType = "ADMIN"
)

// Valid reports whether the role is one of the four known roles
func (r RoleType) Valid() bool {
	switch r {
	case RoleStudent, RoleLecturer, RoleAcademicRegistrar, RoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the role may be assigned issues
func (r RoleType) IsStaff() bool {
	switch r {
	case RoleLecturer, RoleAcademicRegistrar, RoleAdmin:
		return true
	}
	return false
}

// IssueStatus defines the lifecycle state of an issue
type IssueStatus string

const (
	StatusPending    IssueStatus = "PENDING"
	StatusInProgress IssueStatus = "IN_PROGRESS"
	StatusResolved   IssueStatus = "RESOLVED"
	StatusClosed     IssueStatus = "CLOSED"
)

// Valid reports whether the status is one of the four known states
func (s IssueStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// Display returns the human-readable status name used in notification messages
func (s IssueStatus) Display() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusResolved:
		return "Resolved"
	case StatusClosed:
		return "Closed"
	}
	return string(s)
}

// IssuePriority defines the priority of an issue
type IssuePriority string

const (
	PriorityLow    IssuePriority = "LOW"
	PriorityMedium IssuePriority = "MEDIUM"
	PriorityHigh   IssuePriority = "HIGH"
)

// Valid reports whether the priority is one of the known levels
func (p IssuePriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// NotificationType classifies a notification record
type NotificationType string

const (
	NotificationIssueCreated  NotificationType = "ISSUE_CREATED"
	NotificationStatusChanged NotificationType = "STATUS_CHANGED"
	NotificationAssigned      NotificationType = "ASSIGNED"
	NotificationIssueUpdated  NotificationType = "ISSUE_UPDATED"
	NotificationCommentAdded  NotificationType = "COMMENT_ADDED"
)
