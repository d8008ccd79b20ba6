package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/collabsphere/collabsphere-backend/apperr"
	"github.com/collabsphere/collabsphere-backend/models"
)

func TestOpportunityLifecycle(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOpportunityService(db, NewNotificationService(db))

	faculty := Actor{ID: 3, Role: models.RoleFaculty}

	opp, err := svc.Create(faculty, "Research Assistant", "Summer lab position", nil)
	assert.NoError(t, err)
	assert.Equal(t, models.OpportunityStatusDraft, opp.Status)

	// drafts are not listed as active
	active, err := svc.ListActive()
	assert.NoError(t, err)
	assert.Len(t, active, 0)

	published, err := svc.Publish(opp.ID, faculty)
	assert.NoError(t, err)
	assert.Equal(t, models.OpportunityStatusActive, published.Status)

	// publishing twice conflicts
	_, err = svc.Publish(opp.ID, faculty)
	assert.True(t, apperr.Is(err, apperr.CodeConflict))

	active, err = svc.ListActive()
	assert.NoError(t, err)
	assert.Len(t, active, 1)

	closed, err := svc.Close(opp.ID, faculty)
	assert.NoError(t, err)
	assert.Equal(t, models.OpportunityStatusClosed, closed.Status)
}

func TestOpportunityCreateRequiresFaculty(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOpportunityService(db, NewNotificationService(db))

	_, err := svc.Create(Actor{ID: 2, Role: models.RoleStudent}, "Nope", "", nil)
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))
}

func TestOpportunityManageIsPosterOrAdmin(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOpportunityService(db, NewNotificationService(db))

	opp, err := svc.Create(Actor{ID: 3, Role: models.RoleFaculty}, "RA position", "", nil)
	assert.NoError(t, err)

	other := models.User{Name: "Other Prof", Email: "other@uni.edu", Password: "x", Role: models.RoleFaculty}
	assert.NoError(t, db.Create(&other).Error)

	_, err = svc.Publish(opp.ID, Actor{ID: other.ID, Role: models.RoleFaculty})
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))

	_, err = svc.Publish(opp.ID, Actor{ID: 4, Role: models.RoleAdmin})
	assert.NoError(t, err)
}

func TestApplyToOpportunityRules(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewOpportunityService(db, NewNotificationService(db))

	faculty := Actor{ID: 3, Role: models.RoleFaculty}
	student := Actor{ID: 2, Role: models.RoleStudent}

	opp, err := svc.Create(faculty, "RA position", "", nil)
	assert.NoError(t, err)

	// draft opportunities do not accept applications
	_, err = svc.Apply(student, opp.ID, "interested")
	assert.True(t, apperr.Is(err, apperr.CodeConflict))

	_, err = svc.Publish(opp.ID, faculty)
	assert.NoError(t, err)

	app, err := svc.Apply(student, opp.ID, "interested")
	assert.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, app.Status)

	// one pending application per pair
	_, err = svc.Apply(student, opp.ID, "again")
	assert.True(t, apperr.Is(err, apperr.CodeConflict))

	// faculty cannot apply
	_, err = svc.Apply(faculty, opp.ID, "me too")
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))
}

func TestDecideApplicationNotifiesStudent(t *testing.T) {
	db := setupServiceDB(t)
	notifier := NewNotificationService(db)
	svc := NewOpportunityService(db, notifier)

	faculty := Actor{ID: 3, Role: models.RoleFaculty}
	student := Actor{ID: 2, Role: models.RoleStudent}

	opp, err := svc.Create(faculty, "RA position", "", nil)
	assert.NoError(t, err)
	_, err = svc.Publish(opp.ID, faculty)
	assert.NoError(t, err)

	app, err := svc.Apply(student, opp.ID, "interested")
	assert.NoError(t, err)

	decided, err := svc.DecideApplication(app.ID, faculty, models.RequestStatusAccepted)
	assert.NoError(t, err)
	assert.Equal(t, models.RequestStatusAccepted, decided.Status)

	notifs, err := notifier.ListForUser(student.ID)
	assert.NoError(t, err)
	assert.Len(t, notifs, 1)
	assert.Equal(t, models.NotifOpportunityDecided, notifs[0].Type)

	// decision is final
	_, err = svc.DecideApplication(app.ID, faculty, models.RequestStatusRejected)
	assert.True(t, apperr.Is(err, apperr.CodeConflict))

	// the decided application releases the pair for a new one
	_, err = svc.Apply(student, opp.ID, "still interested")
	assert.NoError(t, err)
}
