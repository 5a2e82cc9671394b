package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type StoreTestSuite struct {
	suite.Suite
	db    *DB
	alice *User
	bob   *User
}

func (s *StoreTestSuite) SetupTest() {
	db, err := NewInMemory()
	s.Require().NoError(err)
	s.db = db

	s.alice, err = db.CreateUser(context.Background(), "alice", "correct horse battery")
	s.Require().NoError(err)
	s.bob, err = db.CreateUser(context.Background(), "bob", "hunter2hunter2")
	s.Require().NoError(err)
}

func (s *StoreTestSuite) TearDownTest() {
	s.Require().NoError(s.db.Close())
}

func (s *StoreTestSuite) TestCreateUserDuplicateUsername() {
	_, err := s.db.CreateUser(context.Background(), "alice", "another password")
	s.Equal(ErrUsernameTaken, err)
}

func (s *StoreTestSuite) TestPasswordHashing() {
	s.NotEqual("correct horse battery", s.alice.PasswordHash)
	s.True(s.alice.CheckPassword("correct horse battery"))
	s.False(s.alice.CheckPassword("wrong"))
}

func (s *StoreTestSuite) TestGetUserByUsername() {
	user, err := s.db.GetUserByUsername(context.Background(), "alice")
	s.Require().NoError(err)
	s.Equal(s.alice.ID, user.ID)

	_, err = s.db.GetUserByUsername(context.Background(), "nobody")
	s.Equal(gorm.ErrRecordNotFound, err)
}

func (s *StoreTestSuite) TestGetOrCreatePreferenceDefaults() {
	ctx := context.Background()

	pref, err := s.db.GetOrCreatePreference(ctx, s.alice.ID)
	s.Require().NoError(err)
	s.Equal(`"light"`, string(pref.Theme))
	s.Equal(`null`, string(pref.LastProjectID))
	s.Equal(`{}`, string(pref.WindowBounds))

	// A second access returns the same row instead of creating another.
	again, err := s.db.GetOrCreatePreference(ctx, s.alice.ID)
	s.Require().NoError(err)
	s.Equal(pref.ID, again.ID)

	var count int64
	s.Require().NoError(s.db.db.Model(&Preference{}).Where("user_id = ?", s.alice.ID).Count(&count).Error)
	s.EqualValues(1, count)
}

func (s *StoreTestSuite) TestUpdatePreferencePartial() {
	ctx := context.Background()

	before, err := s.db.GetOrCreatePreference(ctx, s.alice.ID)
	s.Require().NoError(err)

	time.Sleep(5 * time.Millisecond)
	updated, err := s.db.UpdatePreference(ctx, s.alice.ID, PreferencePatch{
		Theme: JSONValue(`"dark"`),
	})
	s.Require().NoError(err)
	s.Equal(`"dark"`, string(updated.Theme))
	s.Equal(`null`, string(updated.LastProjectID))
	s.Equal(`{}`, string(updated.WindowBounds))
	s.True(updated.UpdatedAt.After(before.UpdatedAt))
}

func (s *StoreTestSuite) TestUpdatePreferenceStoresValuesVerbatim() {
	ctx := context.Background()

	_, err := s.db.UpdatePreference(ctx, s.alice.ID, PreferencePatch{
		Theme:         JSONValue(`5`),
		LastProjectID: JSONValue(`42`),
		WindowBounds:  JSONValue(`{"x":10,"y":20,"width":1200,"height":800}`),
	})
	s.Require().NoError(err)

	pref, err := s.db.GetOrCreatePreference(ctx, s.alice.ID)
	s.Require().NoError(err)
	s.Equal(`5`, string(pref.Theme))
	s.Equal(`42`, string(pref.LastProjectID))
	s.Equal(`{"x":10,"y":20,"width":1200,"height":800}`, string(pref.WindowBounds))

	// Non-string themes fall back to "light" for page rendering.
	s.Equal("light", pref.ThemeString())
}

func (s *StoreTestSuite) TestUpdatePreferenceSeparatePerUser() {
	ctx := context.Background()

	_, err := s.db.UpdatePreference(ctx, s.alice.ID, PreferencePatch{Theme: JSONValue(`"dark"`)})
	s.Require().NoError(err)

	bobPref, err := s.db.GetOrCreatePreference(ctx, s.bob.ID)
	s.Require().NoError(err)
	s.Equal(`"light"`, string(bobPref.Theme))
}

func (s *StoreTestSuite) TestCreateProjectDefaults() {
	ctx := context.Background()

	project, err := s.db.CreateProject(ctx, s.alice.ID, "My project", "", nil)
	s.Require().NoError(err)
	s.NotZero(project.ID)
	s.Equal(s.alice.ID, project.UserID)
	s.Equal("", project.Description)
	s.Equal(`{}`, string(project.Data))
}

func (s *StoreTestSuite) TestProjectOwnershipScoping() {
	ctx := context.Background()

	project, err := s.db.CreateProject(ctx, s.alice.ID, "Alice's project", "", nil)
	s.Require().NoError(err)

	// A foreign project looks exactly like a missing one.
	_, err = s.db.GetProject(ctx, s.bob.ID, project.ID)
	s.Equal(gorm.ErrRecordNotFound, err)
	_, err = s.db.GetProject(ctx, s.bob.ID, 9999)
	s.Equal(gorm.ErrRecordNotFound, err)

	title := "stolen"
	_, err = s.db.UpdateProject(ctx, s.bob.ID, project.ID, ProjectPatch{Title: &title})
	s.Equal(gorm.ErrRecordNotFound, err)

	s.Equal(gorm.ErrRecordNotFound, s.db.DeleteProject(ctx, s.bob.ID, project.ID))

	// Still intact for the owner.
	got, err := s.db.GetProject(ctx, s.alice.ID, project.ID)
	s.Require().NoError(err)
	s.Equal("Alice's project", got.Title)
}

func (s *StoreTestSuite) TestUpdateProjectPartial() {
	ctx := context.Background()

	project, err := s.db.CreateProject(ctx, s.alice.ID, "My project", "old", JSONValue(`{"a":1}`))
	s.Require().NoError(err)

	time.Sleep(5 * time.Millisecond)
	description := "new"
	updated, err := s.db.UpdateProject(ctx, s.alice.ID, project.ID, ProjectPatch{Description: &description})
	s.Require().NoError(err)
	s.Equal("My project", updated.Title)
	s.Equal("new", updated.Description)
	s.Equal(`{"a":1}`, string(updated.Data))
	s.True(updated.UpdatedAt.After(project.CreatedAt))
}

func (s *StoreTestSuite) TestListProjectsOrdering() {
	ctx := context.Background()

	p1, err := s.db.CreateProject(ctx, s.alice.ID, "P1", "", nil)
	s.Require().NoError(err)
	time.Sleep(5 * time.Millisecond)
	p2, err := s.db.CreateProject(ctx, s.alice.ID, "P2", "", nil)
	s.Require().NoError(err)
	time.Sleep(5 * time.Millisecond)
	p3, err := s.db.CreateProject(ctx, s.alice.ID, "P3", "", nil)
	s.Require().NoError(err)

	time.Sleep(5 * time.Millisecond)
	title := "P1 touched"
	_, err = s.db.UpdateProject(ctx, s.alice.ID, p1.ID, ProjectPatch{Title: &title})
	s.Require().NoError(err)

	projects, err := s.db.ListProjects(ctx, s.alice.ID)
	s.Require().NoError(err)
	s.Require().Len(projects, 3)
	s.Equal(p1.ID, projects[0].ID)
	s.Equal(p3.ID, projects[1].ID)
	s.Equal(p2.ID, projects[2].ID)
}

func (s *StoreTestSuite) TestListProjectsOnlyOwn() {
	ctx := context.Background()

	_, err := s.db.CreateProject(ctx, s.alice.ID, "Alice's", "", nil)
	s.Require().NoError(err)

	projects, err := s.db.ListProjects(ctx, s.bob.ID)
	s.Require().NoError(err)
	s.Empty(projects)
}

func (s *StoreTestSuite) TestDeleteProjectTwice() {
	ctx := context.Background()

	project, err := s.db.CreateProject(ctx, s.alice.ID, "Doomed", "", nil)
	s.Require().NoError(err)

	s.Require().NoError(s.db.DeleteProject(ctx, s.alice.ID, project.ID))
	s.Equal(gorm.ErrRecordNotFound, s.db.DeleteProject(ctx, s.alice.ID, project.ID))
}

func (s *StoreTestSuite) TestReset() {
	ctx := context.Background()

	_, err := s.db.CreateProject(ctx, s.alice.ID, "Gone soon", "", nil)
	s.Require().NoError(err)

	s.Require().NoError(s.db.Reset())

	var users, projects int64
	s.Require().NoError(s.db.db.Model(&User{}).Count(&users).Error)
	s.Require().NoError(s.db.db.Model(&Project{}).Count(&projects).Error)
	s.Zero(users)
	s.Zero(projects)
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}
