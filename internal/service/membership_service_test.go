package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/membership-service/internal/auth"
	"github.com/spec-kit/membership-service/internal/domain"
	"github.com/spec-kit/membership-service/internal/events"
	"github.com/spec-kit/membership-service/internal/repository"
	apperrors "github.com/spec-kit/membership-service/pkg/util"
)

// --- mock form repo ---

type mockFormRepo struct {
	mu       sync.Mutex
	forms    map[string]*domain.JoinForm
	listOrg  *string
	listSeen bool
}

func newMockFormRepo(forms ...*domain.JoinForm) *mockFormRepo {
	m := &mockFormRepo{forms: make(map[string]*domain.JoinForm)}
	for _, f := range forms {
		m.forms[f.ID] = f
	}
	return m
}

func (m *mockFormRepo) List(_ context.Context, organization *string) ([]domain.JoinForm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listOrg = organization
	m.listSeen = true

	out := make([]domain.JoinForm, 0)
	for _, f := range m.forms {
		if organization != nil && f.OrganizationToJoin != *organization {
			continue
		}
		out = append(out, *f)
	}
	return out, nil
}

func (m *mockFormRepo) GetByID(_ context.Context, id string) (*domain.JoinForm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.forms[id]; ok {
		copied := *f
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

// Approve mirrors the transactional one-way semantics: the lock serializes
// callers and only the first flips the form.
func (m *mockFormRepo) Approve(_ context.Context, id string) (*domain.Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	form, ok := m.forms[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if form.Approved {
		return nil, repository.ErrAlreadyApproved
	}

	now := time.Now()
	person := &domain.Person{
		ID:                     "person-" + id,
		FirstName:              form.FirstName,
		LastName:               form.LastName,
		Email:                  form.Email,
		Phone:                  form.Phone,
		AffiliatedOrganization: form.OrganizationToJoin,
		JoinDate:               now,
	}
	form.Approved = true
	form.ApprovedAt = &now
	form.PersonID = &person.ID
	return person, nil
}

type mockPersonRepo struct {
	byOrg map[string][]domain.Person
}

func (m *mockPersonRepo) ListByOrganization(_ context.Context, org string) ([]domain.Person, error) {
	return m.byOrg[org], nil
}

func pendingForm(id, org string) *domain.JoinForm {
	return &domain.JoinForm{
		ID:                 id,
		FirstName:          "Asha",
		LastName:           "Karki",
		Email:              "asha@example.com",
		Phone:              "9800000000",
		OrganizationToJoin: org,
		Department:         "Nursing",
		Position:           "Staff Nurse",
		CreatedAt:          time.Now(),
	}
}

func newMembership(forms *mockFormRepo, persons *mockPersonRepo, dispatcher events.Dispatcher) *MembershipService {
	if persons == nil {
		persons = &mockPersonRepo{byOrg: map[string][]domain.Person{}}
	}
	if dispatcher == nil {
		dispatcher = events.NewInMemoryDispatcher()
	}
	return NewMembershipService(forms, persons, dispatcher, zap.NewNop())
}

func TestListFormsOrgAdminFilterPushedIntoQuery(t *testing.T) {
	repo := newMockFormRepo(pendingForm("f1", "Cardiology"), pendingForm("f2", "Dermatology"))
	svc := newMembership(repo, nil, nil)

	org := "Cardiology"
	principal := &auth.Principal{ID: "u1", Role: domain.RoleOrgAdmin, Organization: &org}

	forms, err := svc.ListForms(context.Background(), principal)
	require.NoError(t, err)
	require.Len(t, forms, 1)
	assert.Equal(t, "Cardiology", forms[0].OrganizationToJoin)

	// The predicate reaches the store; filtering does not happen post-hoc.
	require.NotNil(t, repo.listOrg)
	assert.Equal(t, "Cardiology", *repo.listOrg)
}

func TestListFormsSuperAdminSeesAll(t *testing.T) {
	repo := newMockFormRepo(pendingForm("f1", "Cardiology"), pendingForm("f2", "Dermatology"))
	svc := newMembership(repo, nil, nil)

	forms, err := svc.ListForms(context.Background(), &auth.Principal{ID: "u1", Role: domain.RoleSuperAdmin})
	require.NoError(t, err)
	assert.Len(t, forms, 2)
	assert.Nil(t, repo.listOrg)
}

func TestApproveFormPublishesEvent(t *testing.T) {
	repo := newMockFormRepo(pendingForm("f1", "Cardiology"))
	dispatcher := events.NewInMemoryDispatcher()

	var received events.Event
	dispatcher.Subscribe(events.EventFormApproved, func(_ context.Context, e events.Event) error {
		received = e
		return nil
	})

	svc := newMembership(repo, nil, dispatcher)
	result, err := svc.ApproveForm(context.Background(), "f1")
	require.NoError(t, err)
	assert.NotEmpty(t, result.PersonID)
	assert.True(t, result.EmailSent)

	payload, ok := received.Payload.(events.FormApprovedPayload)
	require.True(t, ok)
	assert.Equal(t, result.PersonID, payload.PersonID)
	assert.Equal(t, "Asha Karki", payload.Name)
	assert.Equal(t, "asha@example.com", payload.Email)
	assert.Equal(t, "Cardiology", payload.Organization)
}

func TestApproveFormNotificationFailureIsNonFatal(t *testing.T) {
	repo := newMockFormRepo(pendingForm("f1", "Cardiology"))
	dispatcher := events.NewInMemoryDispatcher()
	dispatcher.Subscribe(events.EventFormApproved, func(context.Context, events.Event) error {
		return errors.New("brevo unreachable")
	})

	svc := newMembership(repo, nil, dispatcher)
	result, err := svc.ApproveForm(context.Background(), "f1")
	require.NoError(t, err, "approval must stand when notification fails")
	assert.False(t, result.EmailSent)

	// The form is still approved.
	form, err := repo.GetByID(context.Background(), "f1")
	require.NoError(t, err)
	assert.True(t, form.Approved)
}

func TestApproveFormTwiceFailsSecondTime(t *testing.T) {
	repo := newMockFormRepo(pendingForm("f1", "Cardiology"))
	svc := newMembership(repo, nil, nil)

	first, err := svc.ApproveForm(context.Background(), "f1")
	require.NoError(t, err)

	_, err = svc.ApproveForm(context.Background(), "f1")
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "FORM_ALREADY_APPROVED", de.Code)
	assert.Equal(t, 400, de.HTTPStatus)

	form, err := repo.GetByID(context.Background(), "f1")
	require.NoError(t, err)
	require.NotNil(t, form.PersonID)
	assert.Equal(t, first.PersonID, *form.PersonID, "no duplicate person may be created")
}

func TestApproveFormNotFound(t *testing.T) {
	svc := newMembership(newMockFormRepo(), nil, nil)

	_, err := svc.ApproveForm(context.Background(), "missing")
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 404, de.HTTPStatus)
}

func TestApproveFormConcurrentCallsExactlyOneWins(t *testing.T) {
	repo := newMockFormRepo(pendingForm("f1", "Cardiology"))
	svc := newMembership(repo, nil, nil)

	const callers = 16
	results := make(chan error, callers)

	var start sync.WaitGroup
	start.Add(1)
	for i := 0; i < callers; i++ {
		go func() {
			start.Wait()
			_, err := svc.ApproveForm(context.Background(), "f1")
			results <- err
		}()
	}
	start.Done()

	var successes, alreadyApproved int
	for i := 0; i < callers; i++ {
		err := <-results
		if err == nil {
			successes++
			continue
		}
		var de *apperrors.DomainError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "FORM_ALREADY_APPROVED", de.Code)
		alreadyApproved++
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, callers-1, alreadyApproved)
}

func TestListMembers(t *testing.T) {
	persons := &mockPersonRepo{byOrg: map[string][]domain.Person{
		"Cardiology": {{ID: "p1", FirstName: "Asha", AffiliatedOrganization: "Cardiology"}},
	}}
	svc := newMembership(newMockFormRepo(), persons, nil)

	members, err := svc.ListMembers(context.Background(), "Cardiology")
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "p1", members[0].ID)

	empty, err := svc.ListMembers(context.Background(), "Dermatology")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
