package ui

import (
	"testing"

	"github.com/google/uuid"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
)

func loginAs(t *testing.T, n *Navigator, userType string) *models.LoginResponse {
	t.Helper()
	resp := &models.LoginResponse{
		UserID:    uuid.New(),
		Email:     "user@lxp.com",
		FirstName: "Test",
		LastName:  "User",
		UserType:  userType,
		ProfileID: uuid.New(),
	}
	n.SelectRole(userType)
	if !n.LoginSuccess(resp) {
		t.Fatalf("login as %s should succeed", userType)
	}
	return resp
}

func TestNavigator_RoleRoutesToMatchingDashboard(t *testing.T) {
	cases := []struct {
		role string
		want Page
	}{
		{models.UserTypeStudent, PageStudentDashboard},
		{models.UserTypeEducator, PageEducatorDashboard},
	}

	for _, tc := range cases {
		n := NewNavigator()
		loginAs(t, n, tc.role)
		if n.Page() != tc.want {
			t.Errorf("role %s: expected page %s, got %s", tc.role, tc.want, n.Page())
		}
		if !n.CanRender(tc.want) {
			t.Errorf("role %s: guard should allow %s", tc.role, tc.want)
		}
	}
}

func TestNavigator_MismatchedUserTypeRejected(t *testing.T) {
	n := NewNavigator()
	n.SelectRole(models.UserTypeStudent)

	resp := &models.LoginResponse{
		UserID:    uuid.New(),
		UserType:  models.UserTypeEducator,
		ProfileID: uuid.New(),
	}
	if n.LoginSuccess(resp) {
		t.Fatal("educator logging in under student role should be rejected")
	}
	if n.Page() != PageLogin {
		t.Fatalf("expected to stay on login, got %s", n.Page())
	}
	if n.CanRender(PageStudentDashboard) || n.CanRender(PageEducatorDashboard) {
		t.Fatal("no dashboard should be renderable without a session")
	}
}

func TestNavigator_LogoutClearsEverything(t *testing.T) {
	n := NewNavigator()
	loginAs(t, n, models.UserTypeStudent)

	pathID := uuid.New()
	contentID := uuid.New()
	progressID := uuid.New()
	n.OpenLearningPath(pathID)
	n.OpenContent(contentID, pathID, &progressID)

	n.Logout()

	if n.Page() != PageLanding {
		t.Fatalf("expected landing after logout, got %s", n.Page())
	}
	if n.Session() != nil || n.PendingRole() != "" {
		t.Fatal("session and role must be cleared on logout")
	}
	if n.SelectedPathID() != nil || n.SelectedContentID() != nil || n.ProgressID() != nil {
		t.Fatal("navigation parameters must be cleared on logout")
	}
	if n.BackToDashboard() || n.BackToLearningPath() {
		t.Fatal("back-navigation must not work after logout")
	}
}

func TestNavigator_ParameterGuards(t *testing.T) {
	n := NewNavigator()
	loginAs(t, n, models.UserTypeStudent)

	if n.CanRender(PageLearningPathDetail) {
		t.Fatal("detail page requires a selected path")
	}
	if n.CanRender(PageContentViewer) {
		t.Fatal("content viewer requires content and path ids")
	}

	pathID := uuid.New()
	n.OpenLearningPath(pathID)
	if !n.CanRender(PageLearningPathDetail) {
		t.Fatal("detail page should render once a path is selected")
	}

	contentID := uuid.New()
	n.OpenContent(contentID, pathID, nil)
	if !n.CanRender(PageContentViewer) {
		t.Fatal("content viewer should render with content and path set")
	}

	n.BackToLearningPath()
	if n.SelectedContentID() != nil || n.ProgressID() != nil {
		t.Fatal("leaving the viewer must drop the content parameters")
	}
	if n.SelectedPathID() == nil {
		t.Fatal("leaving the viewer must keep the selected path")
	}
}

func TestNavigator_OpenRequiresSession(t *testing.T) {
	n := NewNavigator()
	if n.OpenLearningPath(uuid.New()) {
		t.Fatal("opening a path without a session must fail")
	}
	if n.OpenContent(uuid.New(), uuid.New(), nil) {
		t.Fatal("opening content without a session must fail")
	}
}
