package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/tripplanner/internal/db"
	"github.com/terraincognita07/tripplanner/internal/models"
	"github.com/terraincognita07/tripplanner/internal/security"
)

const tokenAttempts = 5

type InvitePlanRepository interface {
	FindByID(planID uint) (models.Plan, error)
}

type InviteAccessRepository interface {
	ExistsForEmail(planID uint, email string) (bool, error)
	ListByPlan(planID uint) ([]models.Access, error)
}

type InviteRepository interface {
	Create(invite *models.Invite) error
	FindByID(inviteID uint) (models.Invite, error)
	FindByToken(token string) (models.Invite, error)
	FindPendingForEmail(planID uint, email string) (models.Invite, bool, error)
	ListByPlan(planID uint) ([]models.Invite, error)
	Accept(inviteID uint, access models.Access, now time.Time) (models.Access, error)
	Reject(inviteID uint, now time.Time) error
	Expire(inviteID uint) error
	Reissue(inviteID uint, token string, expiresAt time.Time) error
}

// Actor is the verified caller supplied by the authentication layer.
type Actor struct {
	UserID uint
	Email  string
}

// InviteService drives the invite state machine:
// pending -> accepted | rejected | expired, with resend returning a pending or
// expired invite to pending under a new token. Every transition is a
// conditional update so concurrent callers cannot both win.
type InviteService struct {
	plans    InvitePlanRepository
	accesses InviteAccessRepository
	invites  InviteRepository
	ttl      time.Duration
	now      func() time.Time
	newToken func() (string, error)
}

func NewInviteService(plans InvitePlanRepository, accesses InviteAccessRepository, invites InviteRepository, ttl time.Duration) *InviteService {
	if ttl <= 0 {
		ttl = models.DefaultInviteTTL
	}
	return &InviteService{
		plans:    plans,
		accesses: accesses,
		invites:  invites,
		ttl:      ttl,
		now:      func() time.Time { return time.Now().UTC() },
		newToken: security.InviteToken,
	}
}

func (service *InviteService) CreateInvite(planID uint, email string, actor Actor) (models.Invite, error) {
	if _, err := service.ownedPlan(planID, actor.UserID); err != nil {
		return models.Invite{}, err
	}

	normalizedEmail := NormalizeAuthEmail(email)
	if normalizedEmail == "" {
		return models.Invite{}, fmt.Errorf("%w: a valid email is required", ErrValidation)
	}
	if normalizedEmail == NormalizeAuthEmail(actor.Email) {
		return models.Invite{}, fmt.Errorf("%w: the owner already has access", ErrConflict)
	}

	hasAccess, err := service.accesses.ExistsForEmail(planID, normalizedEmail)
	if err != nil {
		return models.Invite{}, fmt.Errorf("%w: check access: %v", ErrStorage, err)
	}
	if hasAccess {
		return models.Invite{}, fmt.Errorf("%w: %s already has access to this plan", ErrConflict, normalizedEmail)
	}

	now := service.now()
	if err := service.ensureNoLivePendingInvite(planID, normalizedEmail, now); err != nil {
		return models.Invite{}, err
	}

	invite := models.Invite{
		PlanID:    planID,
		Email:     normalizedEmail,
		InvitedBy: actor.UserID,
		Status:    models.InviteStatusPending,
		ExpiresAt: now.Add(service.ttl),
	}
	err = service.withFreshToken(planID, normalizedEmail, 0, func(token string) error {
		invite.ID = 0
		invite.Token = token
		return service.invites.Create(&invite)
	})
	if err != nil {
		return models.Invite{}, err
	}
	return invite, nil
}

// ensureNoLivePendingInvite fails with Conflict while a pending invite for the
// pair is still within its deadline, and retires a stale one so a new invite can
// take its place.
func (service *InviteService) ensureNoLivePendingInvite(planID uint, email string, now time.Time) error {
	existing, found, err := service.invites.FindPendingForEmail(planID, email)
	if err != nil {
		return fmt.Errorf("%w: check pending invites: %v", ErrStorage, err)
	}
	if !found {
		return nil
	}
	if existing.IsActionable(now) {
		return fmt.Errorf("%w: a pending invite already exists for %s", ErrConflict, email)
	}
	if err := service.invites.Expire(existing.ID); err != nil && !errors.Is(err, db.ErrInviteStateChanged) {
		return fmt.Errorf("%w: retire stale invite: %v", ErrStorage, err)
	}
	return nil
}

// withFreshToken runs write with a new token, retrying when the token collides
// with an existing one. A unique violation caused by a competing pending invite
// for the same pair is reported as Conflict.
func (service *InviteService) withFreshToken(planID uint, email string, selfID uint, write func(token string) error) error {
	var lastErr error
	for attempt := 0; attempt < tokenAttempts; attempt++ {
		token, err := service.newToken()
		if err != nil {
			return fmt.Errorf("%w: generate invite token: %v", ErrStorage, err)
		}

		err = write(token)
		if err == nil {
			return nil
		}
		if errors.Is(err, db.ErrInviteStateChanged) {
			return err
		}
		if !db.IsUniqueViolation(err) {
			return fmt.Errorf("%w: store invite: %v", ErrStorage, err)
		}

		pending, pairTaken, lookupErr := service.invites.FindPendingForEmail(planID, email)
		if lookupErr == nil && pairTaken && pending.ID != selfID {
			return fmt.Errorf("%w: a pending invite already exists for %s", ErrConflict, email)
		}
		lastErr = err
	}
	return fmt.Errorf("%w: could not allocate a unique invite token: %v", ErrStorage, lastErr)
}

func (service *InviteService) AcceptInvite(token string, actor Actor) (models.Access, error) {
	invite, err := service.liveInviteByToken(token)
	if err != nil {
		return models.Access{}, err
	}
	if invite.Status != models.InviteStatusPending {
		return models.Access{}, fmt.Errorf("%w: invite is %s", ErrInvalidOrExpired, invite.Status)
	}
	if NormalizeAuthEmail(actor.Email) != NormalizeAuthEmail(invite.Email) {
		return models.Access{}, fmt.Errorf("%w: this invite was sent to a different email address", ErrEmailMismatch)
	}

	access, err := service.invites.Accept(invite.ID, models.Access{
		PlanID:    invite.PlanID,
		UserID:    actor.UserID,
		Role:      models.AccessRoleViewer,
		GrantedBy: invite.InvitedBy,
	}, service.now())
	if err != nil {
		if errors.Is(err, db.ErrInviteStateChanged) {
			return models.Access{}, fmt.Errorf("%w: invite is no longer pending", ErrInvalidOrExpired)
		}
		return models.Access{}, fmt.Errorf("%w: accept invite: %v", ErrStorage, err)
	}
	return access, nil
}

func (service *InviteService) RejectInvite(token string) error {
	invite, err := service.liveInviteByToken(token)
	if err != nil {
		return err
	}
	if invite.Status != models.InviteStatusPending {
		return fmt.Errorf("%w: invite is already %s", ErrInviteNotActionable, invite.Status)
	}

	if err := service.invites.Reject(invite.ID, service.now()); err != nil {
		if errors.Is(err, db.ErrInviteStateChanged) {
			return service.explainLostTransition(invite.ID)
		}
		return fmt.Errorf("%w: reject invite: %v", ErrStorage, err)
	}
	return nil
}

func (service *InviteService) CancelInvite(inviteID uint, actor Actor) error {
	invite, err := service.ownedInvite(inviteID, actor.UserID)
	if err != nil {
		return err
	}
	if status := invite.EffectiveStatus(service.now()); status != models.InviteStatusPending {
		return fmt.Errorf("%w: cannot cancel an invite that is %s", ErrInviteNotActionable, status)
	}

	if err := service.invites.Expire(invite.ID); err != nil {
		if errors.Is(err, db.ErrInviteStateChanged) {
			return fmt.Errorf("%w: invite is no longer pending", ErrInviteNotActionable)
		}
		return fmt.Errorf("%w: cancel invite: %v", ErrStorage, err)
	}
	return nil
}

func (service *InviteService) ResendInvite(inviteID uint, actor Actor) (models.Invite, error) {
	invite, err := service.ownedInvite(inviteID, actor.UserID)
	if err != nil {
		return models.Invite{}, err
	}
	if invite.Status != models.InviteStatusPending && invite.Status != models.InviteStatusExpired {
		return models.Invite{}, fmt.Errorf("%w: cannot resend an invite that is %s", ErrInviteNotActionable, invite.Status)
	}

	expiresAt := service.now().Add(service.ttl)
	var issuedToken string
	err = service.withFreshToken(invite.PlanID, invite.Email, invite.ID, func(token string) error {
		issuedToken = token
		return service.invites.Reissue(invite.ID, token, expiresAt)
	})
	if err != nil {
		if errors.Is(err, db.ErrInviteStateChanged) {
			return models.Invite{}, fmt.Errorf("%w: invite was answered before it could be resent", ErrInviteNotActionable)
		}
		return models.Invite{}, err
	}

	invite.Status = models.InviteStatusPending
	invite.Token = issuedToken
	invite.ExpiresAt = expiresAt
	invite.AcceptedBy = nil
	invite.RespondedAt = nil
	return invite, nil
}

// ListInvites returns the plan's invites with lazily expired ones reported as expired.
func (service *InviteService) ListInvites(planID uint, actorID uint) ([]models.Invite, error) {
	if _, err := service.ownedPlan(planID, actorID); err != nil {
		return nil, err
	}
	invites, err := service.invites.ListByPlan(planID)
	if err != nil {
		return nil, fmt.Errorf("%w: list invites: %v", ErrStorage, err)
	}
	now := service.now()
	for index := range invites {
		invites[index].Status = invites[index].EffectiveStatus(now)
	}
	return invites, nil
}

func (service *InviteService) ListAccess(planID uint, actorID uint) ([]models.Access, error) {
	if _, err := service.ownedPlan(planID, actorID); err != nil {
		return nil, err
	}
	accesses, err := service.accesses.ListByPlan(planID)
	if err != nil {
		return nil, fmt.Errorf("%w: list access: %v", ErrStorage, err)
	}
	return accesses, nil
}

// liveInviteByToken loads the invite for token and treats a pending invite past
// its deadline as expired even if no process rewrote its status.
func (service *InviteService) liveInviteByToken(token string) (models.Invite, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.Invite{}, fmt.Errorf("%w: invite token is required", ErrInvalidOrExpired)
	}
	invite, err := service.invites.FindByToken(token)
	if err != nil {
		if db.IsNotFound(err) {
			return models.Invite{}, fmt.Errorf("%w: unknown invite", ErrInvalidOrExpired)
		}
		return models.Invite{}, fmt.Errorf("%w: load invite: %v", ErrStorage, err)
	}
	if invite.EffectiveStatus(service.now()) == models.InviteStatusExpired {
		return models.Invite{}, fmt.Errorf("%w: invite has expired", ErrInvalidOrExpired)
	}
	return invite, nil
}

func (service *InviteService) explainLostTransition(inviteID uint) error {
	current, err := service.invites.FindByID(inviteID)
	if err != nil {
		return fmt.Errorf("%w: invite is no longer pending", ErrInvalidOrExpired)
	}
	if current.EffectiveStatus(service.now()) == models.InviteStatusExpired {
		return fmt.Errorf("%w: invite has expired", ErrInvalidOrExpired)
	}
	return fmt.Errorf("%w: invite is already %s", ErrInviteNotActionable, current.Status)
}

func (service *InviteService) ownedInvite(inviteID uint, actorID uint) (models.Invite, error) {
	invite, err := service.invites.FindByID(inviteID)
	if err != nil {
		if db.IsNotFound(err) {
			return models.Invite{}, fmt.Errorf("%w: invite", ErrNotFound)
		}
		return models.Invite{}, fmt.Errorf("%w: load invite: %v", ErrStorage, err)
	}
	if _, err := service.ownedPlan(invite.PlanID, actorID); err != nil {
		return models.Invite{}, err
	}
	return invite, nil
}

func (service *InviteService) ownedPlan(planID uint, actorID uint) (models.Plan, error) {
	plan, err := service.plans.FindByID(planID)
	if err != nil {
		if db.IsNotFound(err) {
			return models.Plan{}, fmt.Errorf("%w: plan", ErrNotFound)
		}
		return models.Plan{}, fmt.Errorf("%w: load plan: %v", ErrStorage, err)
	}
	if plan.OwnerID != actorID {
		return models.Plan{}, fmt.Errorf("%w: only the plan owner can manage invites", ErrForbidden)
	}
	return plan, nil
}
