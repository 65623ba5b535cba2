package ui

import (
	"github.com/google/uuid"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
)

// Page identifies the single active screen.
type Page int

const (
	PageLanding Page = iota
	PageLogin
	PageStudentDashboard
	PageEducatorDashboard
	PageLearningPathDetail
	PageContentViewer
)

func (p Page) String() string {
	switch p {
	case PageLanding:
		return "landing"
	case PageLogin:
		return "login"
	case PageStudentDashboard:
		return "student-dashboard"
	case PageEducatorDashboard:
		return "educator-dashboard"
	case PageLearningPathDetail:
		return "learning-path-detail"
	case PageContentViewer:
		return "content-viewer"
	default:
		return "unknown"
	}
}

// Session is the logged-in identity carried by the navigation controller.
// Cleared on logout.
type Session struct {
	UserID    uuid.UUID
	Email     string
	FirstName string
	LastName  string
	UserType  string
	ProfileID uuid.UUID
}

// Navigator owns the current page and the parameters the next page needs.
// Transitions are pure state updates; pages that require a parameter or a
// role are guarded here, not trusted to the page itself.
type Navigator struct {
	page Page

	selectedUserType string
	session          *Session

	selectedPathID    *uuid.UUID
	selectedContentID *uuid.UUID
	progressID        *uuid.UUID
}

func NewNavigator() *Navigator {
	return &Navigator{page: PageLanding}
}

func (n *Navigator) Page() Page         { return n.page }
func (n *Navigator) Session() *Session  { return n.session }
func (n *Navigator) PendingRole() string { return n.selectedUserType }

func (n *Navigator) SelectedPathID() *uuid.UUID    { return n.selectedPathID }
func (n *Navigator) SelectedContentID() *uuid.UUID { return n.selectedContentID }
func (n *Navigator) ProgressID() *uuid.UUID        { return n.progressID }

// SelectRole records the role being logged into and moves to Login.
func (n *Navigator) SelectRole(role string) {
	n.selectedUserType = role
	n.page = PageLogin
}

// LoginSuccess stores the session and routes to the dashboard matching the
// user's type. A user type that does not match the selected role is rejected
// and navigation stays on Login.
func (n *Navigator) LoginSuccess(resp *models.LoginResponse) bool {
	if n.selectedUserType != "" && resp.UserType != n.selectedUserType {
		return false
	}

	n.session = &Session{
		UserID:    resp.UserID,
		Email:     resp.Email,
		FirstName: resp.FirstName,
		LastName:  resp.LastName,
		UserType:  resp.UserType,
		ProfileID: resp.ProfileID,
	}

	switch resp.UserType {
	case models.UserTypeStudent:
		n.page = PageStudentDashboard
	case models.UserTypeEducator:
		n.page = PageEducatorDashboard
	default:
		n.session = nil
		return false
	}
	return true
}

// Logout clears the session, role, and every navigation parameter, returning
// to Landing.
func (n *Navigator) Logout() {
	n.session = nil
	n.selectedUserType = ""
	n.selectedPathID = nil
	n.selectedContentID = nil
	n.progressID = nil
	n.page = PageLanding
}

// OpenLearningPath routes to the path detail page. Requires a session.
func (n *Navigator) OpenLearningPath(pathID uuid.UUID) bool {
	if n.session == nil {
		return false
	}
	n.selectedPathID = &pathID
	n.page = PageLearningPathDetail
	return true
}

// OpenContent routes to the content viewer. progressID may be nil when no
// progress record links the content; the viewer disables its toggle then.
func (n *Navigator) OpenContent(contentID, pathID uuid.UUID, progressID *uuid.UUID) bool {
	if n.session == nil {
		return false
	}
	n.selectedContentID = &contentID
	n.selectedPathID = &pathID
	n.progressID = progressID
	n.page = PageContentViewer
	return true
}

// BackToLearningPath leaves the content viewer, dropping the content
// parameters but keeping the selected path.
func (n *Navigator) BackToLearningPath() bool {
	if n.session == nil || n.selectedPathID == nil {
		return false
	}
	n.selectedContentID = nil
	n.progressID = nil
	n.page = PageLearningPathDetail
	return true
}

// BackToDashboard drops all navigation parameters and returns to the
// dashboard matching the session's user type.
func (n *Navigator) BackToDashboard() bool {
	if n.session == nil {
		return false
	}
	n.selectedPathID = nil
	n.selectedContentID = nil
	n.progressID = nil
	if n.session.UserType == models.UserTypeEducator {
		n.page = PageEducatorDashboard
	} else {
		n.page = PageStudentDashboard
	}
	return true
}

// CanRender reports whether the guard for page holds: every parameter the
// page needs is present and the session's role is allowed to view it.
func (n *Navigator) CanRender(page Page) bool {
	switch page {
	case PageLanding:
		return true
	case PageLogin:
		return n.selectedUserType != ""
	case PageStudentDashboard:
		return n.session != nil && n.session.UserType == models.UserTypeStudent
	case PageEducatorDashboard:
		return n.session != nil && n.session.UserType == models.UserTypeEducator
	case PageLearningPathDetail:
		return n.session != nil && n.selectedPathID != nil
	case PageContentViewer:
		return n.session != nil && n.selectedContentID != nil && n.selectedPathID != nil
	default:
		return false
	}
}
